package sync

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/steveyegge/zotion/internal/notion"
	"github.com/steveyegge/zotion/internal/record"
)

// Config holds configuration for a Syncer.
type Config struct {
	// DatabaseID is the Notion database that mirrors the library.
	DatabaseID string

	// DeletedTag replaces the Tags of pages whose item left Zotero.
	DeletedTag string

	// DeletedIcon is the emoji set on those pages.
	DeletedIcon string

	// StrictDates aborts the run on an unparseable item date instead of
	// dropping the date with a warning.
	StrictDates bool

	// DryRun computes and reports every decision without writing.
	DryRun bool

	// Logger for sync activity
	Logger *log.Logger
}

// DefaultConfig returns the defaults for everything but DatabaseID.
func DefaultConfig() *Config {
	return &Config{
		DeletedTag:  "Deleted from Zotero",
		DeletedIcon: "⚠️",
		Logger:      log.New(os.Stderr, "[sync] ", log.LstdFlags),
	}
}

// Result summarizes one run.
type Result struct {
	Created   []string       `json:"created" yaml:"created"`
	Updated   []string       `json:"updated" yaml:"updated"`
	Unchanged int            `json:"unchanged" yaml:"unchanged"`
	Flagged   []string       `json:"flagged" yaml:"flagged"`
	Issues    []record.Issue `json:"issues" yaml:"issues"`
	DryRun    bool           `json:"dry_run" yaml:"dry_run"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
}

// Writes returns the number of create and update calls made (or planned).
func (r *Result) Writes() int {
	return len(r.Created) + len(r.Updated)
}

// Syncer runs the reconciliation.
type Syncer struct {
	source Source
	mirror Mirror
	config *Config
	logger *log.Logger
}

// New creates a Syncer. Empty fields of config take their DefaultConfig
// values; DatabaseID is required.
func New(source Source, mirror Mirror, config *Config) (*Syncer, error) {
	if source == nil {
		return nil, fmt.Errorf("source cannot be nil")
	}
	if mirror == nil {
		return nil, fmt.Errorf("mirror cannot be nil")
	}
	if config == nil || config.DatabaseID == "" {
		return nil, fmt.Errorf("database id cannot be empty")
	}

	cfg := *config
	defaults := DefaultConfig()
	if cfg.DeletedTag == "" {
		cfg.DeletedTag = defaults.DeletedTag
	}
	if cfg.DeletedIcon == "" {
		cfg.DeletedIcon = defaults.DeletedIcon
	}
	if cfg.Logger == nil {
		cfg.Logger = defaults.Logger
	}

	return &Syncer{
		source: source,
		mirror: mirror,
		config: &cfg,
		logger: cfg.Logger,
	}, nil
}

// Run performs one full pass: fetch both sides, create and update pages,
// then flag pages whose item is gone. Any remote error aborts the run; the
// partial Result is returned alongside it.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{DryRun: s.config.DryRun}

	s.logger.Printf("Fetching Zotero items...")
	items, err := s.source.TopItems(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to fetch Zotero items: %w", err)
	}

	s.logger.Printf("Querying Notion database %s...", s.config.DatabaseID)
	pages, err := s.mirror.QueryDatabase(ctx, s.config.DatabaseID)
	if err != nil {
		return result, fmt.Errorf("failed to query Notion database: %w", err)
	}

	index, err := BuildIndex(pages)
	if err != nil {
		return result, fmt.Errorf("failed to index Notion database: %w", err)
	}
	s.logger.Printf("Loaded %d items and %d pages", len(items), len(index))

	for _, d := range Plan(items, index) {
		if err := s.apply(ctx, d, result); err != nil {
			return result, err
		}
	}

	if err := s.flagOrphans(ctx, index, Orphans(items, index), result); err != nil {
		return result, err
	}

	result.Duration = time.Since(start)
	s.logger.Printf("Sync complete: created=%d updated=%d unchanged=%d flagged=%d warnings=%d",
		len(result.Created), len(result.Updated), result.Unchanged, len(result.Flagged), len(result.Issues))

	return result, nil
}

// apply executes one decision.
func (s *Syncer) apply(ctx context.Context, d Decision, result *Result) error {
	key := d.Item.Key
	if d.Action == ActionSkip {
		result.Unchanged++
		return nil
	}

	mapped, err := record.Map(d.Item, record.Options{StrictDates: s.config.StrictDates})
	if err != nil {
		return fmt.Errorf("failed to map item %s: %w", key, err)
	}
	for _, issue := range mapped.Issues {
		s.logger.Printf("WARNING: %s", issue)
	}
	result.Issues = append(result.Issues, mapped.Issues...)

	switch d.Action {
	case ActionCreate:
		if !s.config.DryRun {
			_, err := s.mirror.CreatePage(ctx, notion.CreatePageRequest{
				Parent:     notion.Parent{DatabaseID: s.config.DatabaseID},
				Properties: mapped.Record.Properties(),
				Children:   mapped.Record.Blocks,
			})
			if err != nil {
				return fmt.Errorf("failed to create page for %s: %w", key, err)
			}
		}
		s.logger.Printf("Created: %s (%s)", key, d.Item.Data.Title)
		result.Created = append(result.Created, key)

	case ActionUpdate:
		if !s.config.DryRun {
			_, err := s.mirror.UpdatePage(ctx, d.PageID, notion.UpdatePageRequest{
				Properties: mapped.Record.Properties(),
			})
			if err != nil {
				return fmt.Errorf("failed to update page for %s: %w", key, err)
			}
		}
		s.logger.Printf("Updated: %s (%s)", key, d.Item.Data.Title)
		result.Updated = append(result.Updated, key)

	default:
		return fmt.Errorf("unknown action %s for %s", d.Action, key)
	}
	return nil
}

// flagOrphans tags and marks the pages of items that left Zotero.
func (s *Syncer) flagOrphans(ctx context.Context, index Index, orphans []string, result *Result) error {
	if len(orphans) == 0 {
		return nil
	}

	req := notion.UpdatePageRequest{
		Properties: notion.Properties{
			record.PropTags: notion.MultiSelectProperty(s.config.DeletedTag),
		},
		Icon: notion.EmojiIcon(s.config.DeletedIcon),
	}
	for _, o := range orphans {
		entry := index[o]
		if !s.config.DryRun {
			if _, err := s.mirror.UpdatePage(ctx, entry.PageID, req); err != nil {
				return fmt.Errorf("failed to flag page for %s: %w", o, err)
			}
		}
		citation := entry.CitationKey
		if citation == "" {
			citation = "no citation key"
		}
		s.logger.Printf("Flagged: %s (%s)", o, citation)
		result.Flagged = append(result.Flagged, o)
	}
	s.logger.Printf("Flagged %d pages as deleted from Zotero", len(orphans))
	return nil
}
