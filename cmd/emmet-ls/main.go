// Summary: emmet-ls entrypoint; parses flags and delegates to internal/emmetls.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emmetls/internal"
	"emmetls/internal/appconfig"
	"emmetls/internal/emmetls"
)

func main() {
	var (
		logPath    string
		configOpts appconfig.Options
	)
	root := &cobra.Command{
		Use:           "emmet-ls",
		Short:         "Language server expanding Emmet abbreviations",
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emmetls.Run(logPath, configOpts, os.Stdin, os.Stdout, os.Stderr)
		},
	}
	root.Flags().StringVar(&logPath, "log", "/tmp/emmet-ls.log", "path to log file (empty logs to stderr)")
	root.Flags().StringVar(&configOpts.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/emmet-ls/config.*)")
	root.Flags().StringVar(&configOpts.EnvFile, "env-file", "", "dotenv file with EMMET_LS_* overrides")
	// editors pass --stdio; stdio is the only transport
	root.Flags().Bool("stdio", true, "communicate over stdin/stdout")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "emmet-ls: %v\n", err)
		os.Exit(1)
	}
}
