package services

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeAuthEmail(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "normalizes case and spaces", raw: " USER@EXAMPLE.COM ", want: "user@example.com"},
		{name: "invalid email returns empty", raw: "not-email", want: ""},
		{name: "empty returns empty", raw: "   ", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := NormalizeAuthEmail(testCase.raw); got != testCase.want {
				t.Fatalf("NormalizeAuthEmail(%q) = %q, want %q", testCase.raw, got, testCase.want)
			}
		})
	}
}

func TestNormalizeCredentialsInput(t *testing.T) {
	email, password, err := NormalizeCredentialsInput(" USER@EXAMPLE.COM ", "  Crossover1  ")
	if err != nil {
		t.Fatalf("expected valid credentials input, got %v", err)
	}
	if email != "user@example.com" {
		t.Fatalf("expected normalized email, got %q", email)
	}
	if password != "Crossover1" {
		t.Fatalf("expected trimmed password, got %q", password)
	}

	_, _, err = NormalizeCredentialsInput("not-email", "Crossover1")
	if !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for invalid email, got %v", err)
	}
}

func TestNormalizeRegisterInput(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{name: "missing email", input: RegisterInput{Password: "Crossover1"}, want: ErrRegisterInputMissing},
		{name: "missing password", input: RegisterInput{Email: "a@example.com"}, want: ErrRegisterInputMissing},
		{name: "malformed email", input: RegisterInput{Email: "not-email", Password: "Crossover1"}, want: ErrRegisterEmailInvalid},
		{name: "short password", input: RegisterInput{Email: "a@example.com", Password: "short"}, want: ErrWeakPassword},
		{name: "valid", input: RegisterInput{Email: " A@Example.com ", Password: "Crossover1", Name: " Kobe "}, want: nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			normalized, err := NormalizeRegisterInput(testCase.input)
			if !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
			if testCase.want == nil && (normalized.Email != "a@example.com" || normalized.Name != "Kobe") {
				t.Fatalf("unexpected normalized input %+v", normalized)
			}
		})
	}
}

func TestNormalizeRegisterInputTruncatesLongName(t *testing.T) {
	normalized, err := NormalizeRegisterInput(RegisterInput{
		Email:    "long@example.com",
		Password: "Crossover1",
		Name:     strings.Repeat("n", 140),
	})
	if err != nil {
		t.Fatalf("expected long name to be accepted, got %v", err)
	}
	if len(normalized.Name) != 100 {
		t.Fatalf("expected name truncated to 100 runes, got %d", len(normalized.Name))
	}
}
