package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/steveyegge/zotion/internal/config"
	"github.com/steveyegge/zotion/internal/zotero"
)

var initCmd = &cobra.Command{
	Use:     "init",
	GroupID: "setup",
	Short:   "Create a zotion.toml interactively",
	Long: `Ask for the Zotero and Notion credentials and write them to a config file.

The Zotero API key needs read access to the library. The Notion token belongs
to an integration that has been shared with the target database.

Examples:
  zotion init
  zotion init --path ~/.config/zotion/zotion.toml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")

		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintf(os.Stderr, "Error: init needs an interactive terminal; write %s by hand instead\n", config.FileName)
			os.Exit(1)
		}
		if _, err := os.Stat(path); err == nil && !force {
			fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", path)
			os.Exit(1)
		}

		file := newInitFile()
		if err := promptInitFile(file); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(os.Stderr, "Aborted.")
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := saveInitFile(path, file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Wrote %s\n", path)
		fmt.Println("  Run 'zotion sync --dry-run' to check the setup.")
	},
}

func init() {
	initCmd.Flags().String("path", config.FileName, "Where to write the config file")
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

// initFile is the subset of the configuration written by init. Everything
// else keeps its default.
type initFile struct {
	Zotero config.Zotero `toml:"zotero"`
	Notion config.Notion `toml:"notion"`
	Sync   initSync      `toml:"sync"`
}

type initSync struct {
	DeletedTag  string `toml:"deleted_tag"`
	DeletedIcon string `toml:"deleted_icon"`
}

func newInitFile() *initFile {
	def := config.Default()
	return &initFile{
		Zotero: config.Zotero{LibraryType: def.Zotero.LibraryType},
		Sync: initSync{
			DeletedTag:  def.Sync.DeletedTag,
			DeletedIcon: def.Sync.DeletedIcon,
		},
	}
}

func promptInitFile(f *initFile) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Zotero library type").
				Options(huh.NewOptions(zotero.LibraryUser, zotero.LibraryGroup)...).
				Value(&f.Zotero.LibraryType),
			huh.NewInput().
				Title("Zotero library ID").
				Description("Your user ID from zotero.org/settings/keys, or the group ID").
				Value(&f.Zotero.LibraryID).
				Validate(required("library ID")),
			huh.NewInput().
				Title("Zotero API key").
				EchoMode(huh.EchoModePassword).
				Value(&f.Zotero.APIKey).
				Validate(required("API key")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Notion integration token").
				EchoMode(huh.EchoModePassword).
				Value(&f.Notion.Token).
				Validate(required("token")),
			huh.NewInput().
				Title("Notion database ID").
				Value(&f.Notion.DatabaseID).
				Validate(required("database ID")),
			huh.NewInput().
				Title("Tag for pages deleted from Zotero").
				Value(&f.Sync.DeletedTag),
		),
	)
	return form.Run()
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func saveInitFile(path string, f *initFile) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if err := writeInitFile(out, f); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func writeInitFile(w io.Writer, f *initFile) error {
	if _, err := fmt.Fprintln(w, "# zotion configuration. Environment variables ZOTION_<SECTION>_<KEY> override these values."); err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
