package api

import (
	"errors"
	"strings"
	"testing"
)

func TestSecureCookieCodecRoundTrip(t *testing.T) {
	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("newSecureCookieCodec() unexpected error: %v", err)
	}

	sealed, err := codec.seal("session", []byte("token-value"))
	if err != nil {
		t.Fatalf("seal() unexpected error: %v", err)
	}
	if !strings.HasPrefix(sealed, secureCookieVersion+".") {
		t.Fatalf("expected versioned value, got %q", sealed)
	}
	if strings.Contains(sealed, "token-value") {
		t.Fatal("sealed value leaks plaintext")
	}

	opened, err := codec.open("session", sealed)
	if err != nil {
		t.Fatalf("open() unexpected error: %v", err)
	}
	if string(opened) != "token-value" {
		t.Fatalf("expected token-value, got %q", opened)
	}

	again, err := codec.seal("session", []byte("token-value"))
	if err != nil {
		t.Fatalf("seal() unexpected error: %v", err)
	}
	if again == sealed {
		t.Fatal("expected a fresh nonce per seal")
	}
}

func TestSecureCookieCodecRejectsForeignValues(t *testing.T) {
	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("newSecureCookieCodec() unexpected error: %v", err)
	}
	otherCodec, err := newSecureCookieCodec([]byte("another-secret-key-for-courtlog"))
	if err != nil {
		t.Fatalf("newSecureCookieCodec() unexpected error: %v", err)
	}

	sealed, err := codec.seal("session", []byte("token-value"))
	if err != nil {
		t.Fatalf("seal() unexpected error: %v", err)
	}

	cases := map[string]func() ([]byte, error){
		"purpose mismatch": func() ([]byte, error) { return codec.open("language", sealed) },
		"other secret":     func() ([]byte, error) { return otherCodec.open("session", sealed) },
		"tampered payload": func() ([]byte, error) { return codec.open("session", flipCookieChar(sealed)) },
		"missing version":  func() ([]byte, error) { return codec.open("session", strings.TrimPrefix(sealed, secureCookieVersion+".")) },
		"plain text":       func() ([]byte, error) { return codec.open("session", "token-value") },
	}
	for name, open := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := open(); !errors.Is(err, errInvalidSecureCookieValue) {
				t.Fatalf("expected errInvalidSecureCookieValue, got %v", err)
			}
		})
	}
}

func TestSecureCookieCodecRequiresSecretAndPurpose(t *testing.T) {
	if _, err := newSecureCookieCodec(nil); err == nil {
		t.Fatal("expected an error for an empty secret")
	}

	codec, err := newSecureCookieCodec([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("newSecureCookieCodec() unexpected error: %v", err)
	}
	if _, err := codec.seal("  ", []byte("x")); err == nil {
		t.Fatal("expected an error for a blank purpose")
	}
}

func flipCookieChar(value string) string {
	raw := []byte(value)
	index := len(raw) - 3
	if raw[index] == 'A' {
		raw[index] = 'B'
	} else {
		raw[index] = 'A'
	}
	return string(raw)
}
