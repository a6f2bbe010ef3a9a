package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var inputValidator = validator.New(validator.WithRequiredStructEnabled())

// firstFailedRule returns the field and tag of the first failed rule, or empty
// strings when value is valid.
func firstFailedRule(value any) (field string, tag string, err error) {
	err = inputValidator.Struct(value)
	if err == nil {
		return "", "", nil
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) || len(failures) == 0 {
		return "", "", err
	}
	return failures[0].Field(), failures[0].Tag(), nil
}
