package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/steveyegge/zotion/internal/config"
	"github.com/steveyegge/zotion/internal/logging"
	"github.com/steveyegge/zotion/internal/notion"
	"github.com/steveyegge/zotion/internal/report"
	"github.com/steveyegge/zotion/internal/sync"
	"github.com/steveyegge/zotion/internal/zotero"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	GroupID: "sync",
	Short:   "Run one Zotero → Notion sync pass",
	Long: `Run one full sync pass.

This performs:
  1. Fetch every top-level Zotero item (newest first)
  2. Fetch every page of the Notion database
  3. Create pages for new items, update pages whose Zotero version changed
  4. Tag and mark pages whose item no longer exists in Zotero

Pages are never deleted. Flagged pages are listed at the end of the run.

Examples:
  zotion sync
  zotion sync --dry-run
  zotion sync --output json > result.json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSync(cmd, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	syncCmd.Flags().Bool("dry-run", false, "Show what would change without writing to Notion")
	syncCmd.Flags().StringP("output", "o", report.FormatText, "Output format: "+strings.Join(report.Formats, ", "))
	syncCmd.Flags().Bool("no-color", false, "Disable colored output")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, out io.Writer) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	format, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")

	if !slices.Contains(report.Formats, format) {
		return fmt.Errorf("--output must be one of %s", strings.Join(report.Formats, ", "))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	loggers := logging.New(cfg.Log)
	defer loggers.Close()

	syncer, err := newSyncer(cfg, loggers, dryRun)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := syncer.Run(ctx)
	if err != nil {
		return err
	}

	return report.Write(out, result, report.Options{Format: format, NoColor: noColor})
}

// newSyncer wires both API clients into a Syncer.
func newSyncer(cfg *config.Config, loggers *logging.Loggers, dryRun bool) (*sync.Syncer, error) {
	source, err := zotero.New(zotero.Config{
		LibraryID:   cfg.Zotero.LibraryID,
		LibraryType: cfg.Zotero.LibraryType,
		APIKey:      cfg.Zotero.APIKey,
		BaseURL:     cfg.Zotero.BaseURL,
		PageSize:    cfg.Zotero.PageSize,
		Timeout:     cfg.Sync.Timeout,
		Logger:      loggers.Named("zotero"),
		Verbose:     loggers.Verbose(),
	})
	if err != nil {
		return nil, err
	}

	mirror := notion.New(notion.Config{
		Token:    cfg.Notion.Token,
		BaseURL:  cfg.Notion.BaseURL,
		PageSize: cfg.Notion.PageSize,
		Timeout:  cfg.Sync.Timeout,
		Logger:   loggers.Named("notion"),
		Verbose:  loggers.Verbose(),
	})

	return sync.New(source, mirror, &sync.Config{
		DatabaseID:  cfg.Notion.DatabaseID,
		DeletedTag:  cfg.Sync.DeletedTag,
		DeletedIcon: cfg.Sync.DeletedIcon,
		StrictDates: cfg.Sync.StrictDates,
		DryRun:      dryRun,
		Logger:      loggers.Named("sync"),
	})
}
