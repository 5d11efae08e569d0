// Summary: emmet CLI entrypoint; parses flags and delegates to internal/emmetcli.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"emmetls/internal"
	"emmetls/internal/emmetcli"
)

func main() {
	var opts emmetcli.Options
	root := &cobra.Command{
		Use:           "emmet [abbreviation...]",
		Short:         "Expand Emmet abbreviations from arguments or stdin",
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emmetcli.Run(args, opts, os.Stdin, os.Stdout, os.Stderr)
		},
	}
	root.Flags().StringVarP(&opts.Language, "lang", "l", "html", "document language id selecting the profile")
	root.Flags().BoolVarP(&opts.Snippet, "snippet", "s", false, "keep ${N} tab stops in the output")
	root.Flags().StringVar(&opts.Config.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/emmet-ls/config.*)")
	root.Flags().StringVar(&opts.Config.EnvFile, "env-file", "", "dotenv file with EMMET_LS_* overrides")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
