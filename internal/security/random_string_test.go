package security

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  bool
	}{
		{name: "negative length", length: -1, alphabet: "abc", wantErr: true},
		{name: "empty alphabet", length: 1, alphabet: "", wantErr: true},
		{name: "zero length", length: 0, alphabet: "abc"},
		{name: "single alphabet character", length: 8, alphabet: "X"},
		{name: "readable alphabet", length: 64, alphabet: TemporaryPasswordAlphabet},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := RandomString(test.length, test.alphabet)
			if test.wantErr {
				if err == nil {
					t.Fatalf("RandomString(%d, %q) expected error, got nil", test.length, test.alphabet)
				}
				return
			}
			if err != nil {
				t.Fatalf("RandomString(%d, %q) returned error: %v", test.length, test.alphabet, err)
			}
			if len(got) != test.length {
				t.Fatalf("RandomString(%d, %q) len = %d, want %d", test.length, test.alphabet, len(got), test.length)
			}
			for _, char := range got {
				if !strings.ContainsRune(test.alphabet, char) {
					t.Fatalf("RandomString(%d, %q) produced char %q outside alphabet", test.length, test.alphabet, char)
				}
			}
		})
	}
}

func TestTemporaryPasswordRaisesShortLengths(t *testing.T) {
	t.Parallel()

	password, err := TemporaryPassword(4)
	if err != nil {
		t.Fatalf("TemporaryPassword returned error: %v", err)
	}
	if len(password) != minTemporaryPasswordLength {
		t.Fatalf("TemporaryPassword(4) len = %d, want %d", len(password), minTemporaryPasswordLength)
	}

	password, err = TemporaryPassword(20)
	if err != nil {
		t.Fatalf("TemporaryPassword returned error: %v", err)
	}
	if len(password) != 20 {
		t.Fatalf("TemporaryPassword(20) len = %d, want 20", len(password))
	}
	for _, char := range "0O1lI" {
		if strings.ContainsRune(password, char) {
			t.Fatalf("TemporaryPassword produced ambiguous char %q", char)
		}
	}
}
