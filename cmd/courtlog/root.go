package main

import "github.com/spf13/cobra"

var version = "dev"

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "courtlog",
		Short: "Basketball training tracker",
		Long: `courtlog keeps a personal library of basketball training actions and a
dated diary of practice sessions, served as a small web application.

Running courtlog without a subcommand starts the web server.

EXAMPLES:

  courtlog                                   # serve with config.yaml / env
  courtlog serve --config /etc/courtlog.yaml
  courtlog reset-password --email me@example.com`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configFile)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")

	root.AddCommand(
		newServeCommand(&configFile),
		newResetPasswordCommand(&configFile),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the courtlog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("courtlog %s\n", version)
		},
	}
}
