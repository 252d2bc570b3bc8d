// Package report renders the result of a sync run for the terminal or for
// machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/steveyegge/zotion/internal/sync"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Options control rendering.
type Options struct {
	Format  string
	NoColor bool
}

// Write renders result to w.
func Write(w io.Writer, result *sync.Result, opts Options) error {
	switch opts.Format {
	case "", FormatText:
		return writeText(w, result, opts.NoColor)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want one of %s)", opts.Format, strings.Join(Formats, ", "))
	}
}

// DeletedLine is the operator-facing list of flagged keys, or "" when there
// are none.
func DeletedLine(result *sync.Result) string {
	if len(result.Flagged) == 0 {
		return ""
	}
	return "Records to be manually deleted: " + strings.Join(result.Flagged, ", ")
}

type styles struct {
	pass lipgloss.Style
	warn lipgloss.Style
	fail lipgloss.Style
	dim  lipgloss.Style
	bold lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		pass: r.NewStyle().Foreground(lipgloss.Color("2")),
		warn: r.NewStyle().Foreground(lipgloss.Color("3")),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		dim:  r.NewStyle().Faint(true),
		bold: r.NewStyle().Bold(true),
	}
}

func writeText(w io.Writer, result *sync.Result, noColor bool) error {
	s := newStyles(w, noColor)
	var b strings.Builder

	title := "Sync complete"
	if result.DryRun {
		title = "Dry run complete (nothing written)"
	}
	fmt.Fprintf(&b, "%s %s in %v\n", s.pass.Render("✓"), s.bold.Render(title), result.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "   Created:   %d\n", len(result.Created))
	fmt.Fprintf(&b, "   Updated:   %d\n", len(result.Updated))
	fmt.Fprintf(&b, "   Unchanged: %d\n", result.Unchanged)
	fmt.Fprintf(&b, "   Flagged:   %d\n", len(result.Flagged))

	if len(result.Issues) > 0 {
		fmt.Fprintf(&b, "\n%s %d warning(s)\n", s.warn.Render("⚠"), len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(&b, "   %s %s\n", s.dim.Render(string(issue.Kind)), issue)
		}
	}

	if line := DeletedLine(result); line != "" {
		fmt.Fprintf(&b, "\n%s %s\n", s.fail.Render("✗"), line)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
