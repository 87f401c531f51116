package main

import (
	"fmt"
	"os"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wayfinder",
	Short: "Wayfinder explains how a hybrid app navigates its URLs",
	Long: `Wayfinder resolves path configuration rules and route decisions for a hybrid
web/native app, and serves them over HTTP and MCP for tooling and agents.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringSliceP("config", "c", nil, "Path configuration files or http(s) URLs, applied in order")
	rootCmd.PersistentFlags().String("start", "https://localhost/", "Start location of the app")
	rootCmd.PersistentFlags().String("name", "", "Navigator name (defaults to the start host)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for caching remote path configurations")
	rootCmd.PersistentFlags().String("cache-key", os.Getenv("WAYFINDER_CACHE_KEY"), "Base64 AES-256 key encrypting cached remote configurations")
	rootCmd.PersistentFlags().Bool("match-query-strings", true, "Include query strings when matching path patterns")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// commonOptions reads the persistent flags.
func commonOptions(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	sources, _ := flags.GetStringSlice("config")
	start, _ := flags.GetString("start")
	name, _ := flags.GetString("name")
	redis, _ := flags.GetString("redis")
	cacheKey, _ := flags.GetString("cache-key")
	matchQuery, _ := flags.GetBool("match-query-strings")
	debug, _ := flags.GetBool("debug")
	asJSON, _ := flags.GetBool("json")

	return cli.Options{
		Sources:           sources,
		Start:             start,
		Name:              name,
		Redis:             redis,
		CacheKey:          cacheKey,
		MatchQueryStrings: matchQuery,
		Debug:             debug,
		JSON:              asJSON,
	}
}
