package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/courtlog/internal/cli"
	"github.com/terraincognita07/courtlog/internal/config"
	"github.com/terraincognita07/courtlog/internal/db"
	"github.com/terraincognita07/courtlog/internal/services"
)

func newResetPasswordCommand(configFile *string) *cobra.Command {
	var (
		email    string
		password string
		prompt   bool
	)

	command := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an account",
		Long: `Set a new password for the account registered under --email.

Without --password or --prompt a temporary password is generated and printed.

EXAMPLES:

  courtlog reset-password --email me@example.com
  courtlog reset-password --email me@example.com --prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if prompt {
				entered, err := cli.PromptNewPassword(os.Stdin, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				password = entered
			}

			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			database, err := db.OpenSQLite(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("database init failed: %w", err)
			}
			if sqlDB, err := database.DB(); err == nil {
				defer sqlDB.Close()
			}

			authService := services.NewAuthService(db.NewUserRepository(database))
			return cli.RunResetPassword(cmd.OutOrStdout(), authService, email, password)
		},
	}

	command.Flags().StringVar(&email, "email", "", "email of the account to reset")
	command.Flags().StringVar(&password, "password", "", "new password (generated when empty)")
	command.Flags().BoolVar(&prompt, "prompt", false, "read the new password from the terminal")
	_ = command.MarkFlagRequired("email")
	command.MarkFlagsMutuallyExclusive("password", "prompt")
	return command
}
