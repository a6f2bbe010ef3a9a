package services

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrAuthCredentialsInvalid = errors.New("invalid credentials")
	ErrRegisterInputMissing   = errors.New("email and password are required")
	ErrRegisterEmailInvalid   = errors.New("invalid email")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Name     string `validate:"max=100"`
}

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

// NormalizeRegisterInput trims the payload and maps the first failed rule to
// a registration error.
func NormalizeRegisterInput(input RegisterInput) (RegisterInput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Password = strings.TrimSpace(input.Password)
	input.Name = strings.TrimSpace(input.Name)

	field, tag, err := firstFailedRule(input)
	if err != nil {
		return input, err
	}
	switch {
	case field == "":
	case tag == "required":
		return input, ErrRegisterInputMissing
	case field == "Email":
		return input, ErrRegisterEmailInvalid
	case field == "Password":
		return input, ErrWeakPassword
	default:
		input.Name = string([]rune(input.Name)[:100])
	}

	if NormalizeAuthEmail(input.Email) == "" {
		return input, ErrRegisterEmailInvalid
	}
	return input, nil
}
