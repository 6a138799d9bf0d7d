package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

type rootOptions struct {
	configPath string
	verbose    bool
}

func main() {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:          "organizeme",
		Short:        "OrganizeMe - tasks, categories and a calendar in your terminal",
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd(opts))
	rootCmd.AddCommand(listCmd(opts))
	rootCmd.AddCommand(calendarCmd(opts))
	rootCmd.AddCommand(addCmd(opts))
	rootCmd.AddCommand(suggestCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
