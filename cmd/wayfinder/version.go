package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wayfinder",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wayfinder version %s\n", strings.TrimSpace(wayfinder.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
