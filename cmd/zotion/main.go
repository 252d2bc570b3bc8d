// Command zotion mirrors a Zotero library into a Notion database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/zotion/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "zotion",
	Short: "Sync a Zotero library into a Notion database",
	Long: `zotion copies the top-level items of a Zotero library into a Notion database.

New items become new pages, changed items update their page, and pages whose
item was removed from Zotero are tagged and marked with an icon (never deleted).

Configuration is read from zotion.toml (see 'zotion init') and ZOTION_*
environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "sync", Title: "Sync:"},
		&cobra.Group{ID: "setup", Title: "Setup:"},
	)

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./zotion.toml or ~/.config/zotion/zotion.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every API request")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file (rotated)")
}

// loadConfig reads the config and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbose, _ = cmd.Flags().GetBool("verbose")
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File, _ = cmd.Flags().GetString("log-file")
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
