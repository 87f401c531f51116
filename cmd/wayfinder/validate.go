package main

import (
	"fmt"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every path configuration source loads",
	Long:  `Loads each source given with --config and reports unreadable or malformed documents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commonOptions(cmd)
		if len(opts.Sources) == 0 {
			return cli.ErrNoSources
		}

		cfg, err := cli.NewConfiguration(cmd.Context(), opts, cli.CreateLogger(opts.Debug))
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Path configuration is valid: %d rules, %d settings\n", len(cfg.Rules()), len(cfg.Settings()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
