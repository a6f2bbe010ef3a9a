package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errPasswordMismatch = errors.New("passwords do not match")

// PromptNewPassword reads a password twice from the terminal without echo.
func PromptNewPassword(stdin *os.File, out io.Writer) (string, error) {
	return promptNewPassword(func() (string, error) {
		return readSecretNoEcho(stdin)
	}, out)
}

func promptNewPassword(readSecret func() (string, error), out io.Writer) (string, error) {
	fmt.Fprint(out, "New password: ")
	first, err := readSecret()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := readSecret()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if first != second {
		return "", errPasswordMismatch
	}
	if strings.TrimSpace(first) == "" {
		return "", errors.New("password must not be empty")
	}
	return first, nil
}

// readSecretLine reads up to a newline one byte at a time so a following
// prompt still finds its own line on a piped stdin.
func readSecretLine(reader io.Reader) (string, error) {
	var line []byte
	buffer := make([]byte, 1)
	for {
		n, err := reader.Read(buffer)
		if n > 0 {
			if buffer[0] == '\n' {
				break
			}
			line = append(line, buffer[0])
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 {
				return "", io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(string(line), "\r"), nil
}
