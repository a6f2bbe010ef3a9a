package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/terraincognita07/courtlog/internal/models"
	"github.com/terraincognita07/courtlog/internal/security"
	"github.com/terraincognita07/courtlog/internal/services"
)

const temporaryPasswordLength = 16

type PasswordResetter interface {
	ResetPassword(email string, newPassword string) (models.User, error)
}

// RunResetPassword sets a new password for the account registered under
// email. When password is empty a temporary one is generated and printed.
func RunResetPassword(out io.Writer, resetter PasswordResetter, email string, password string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}

	generated := password == ""
	if generated {
		temporary, err := security.TemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
		password = temporary
	}

	user, err := resetter.ResetPassword(email, password)
	switch {
	case errors.Is(err, services.ErrAuthUserNotFound):
		return fmt.Errorf("no account registered for %s", strings.TrimSpace(email))
	case errors.Is(err, services.ErrRegisterEmailInvalid):
		return fmt.Errorf("invalid email address %q", email)
	case errors.Is(err, services.ErrWeakPassword):
		return fmt.Errorf("password must be at least %d characters", services.MinPasswordLength)
	case err != nil:
		return fmt.Errorf("reset password: %w", err)
	}

	color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ Password reset for %s\n", user.Email)
	if generated {
		color.New(color.FgYellow).Fprintf(out, "Temporary password: %s\n", password)
		fmt.Fprintln(out, "Share it privately and ask the player to change it after signing in.")
	}
	return nil
}
