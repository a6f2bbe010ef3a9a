package services

import (
	"errors"
	"unicode/utf8"
)

const MinPasswordLength = 8

var ErrWeakPassword = errors.New("weak password")

func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
