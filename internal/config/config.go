// Package config loads zotion's settings.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see Default).
//  2. A TOML file: the path given with --config, otherwise zotion.toml in the
//     working directory or in $XDG_CONFIG_HOME/zotion (~/.config/zotion).
//  3. Environment variables ZOTION_<SECTION>_<KEY>, e.g. ZOTION_NOTION_TOKEN.
//
// Example file:
//
//	[zotero]
//	library_id = "1234567"
//	library_type = "user"
//	api_key = "..."
//
//	[notion]
//	token = "secret_..."
//	database_id = "0123456789abcdef0123456789abcdef"
//
//	[sync]
//	deleted_tag = "Deleted from Zotero"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file name looked up when no path is given.
const FileName = "zotion.toml"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete runtime configuration.
type Config struct {
	Zotero Zotero `mapstructure:"zotero" toml:"zotero" yaml:"zotero"`
	Notion Notion `mapstructure:"notion" toml:"notion" yaml:"notion"`
	Sync   Sync   `mapstructure:"sync" toml:"sync" yaml:"sync"`
	Log    Log    `mapstructure:"log" toml:"log" yaml:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" toml:"-" yaml:"-"`
}

// Zotero identifies the source library.
type Zotero struct {
	LibraryID   string `mapstructure:"library_id" toml:"library_id" yaml:"library_id"`
	LibraryType string `mapstructure:"library_type" toml:"library_type" yaml:"library_type"`
	APIKey      string `mapstructure:"api_key" toml:"api_key" yaml:"api_key"`
	BaseURL     string `mapstructure:"base_url" toml:"base_url,omitempty" yaml:"base_url,omitempty"`
	PageSize    int    `mapstructure:"page_size" toml:"page_size,omitempty" yaml:"page_size,omitempty"`
}

// Notion identifies the mirror database.
type Notion struct {
	Token      string `mapstructure:"token" toml:"token" yaml:"token"`
	DatabaseID string `mapstructure:"database_id" toml:"database_id" yaml:"database_id"`
	BaseURL    string `mapstructure:"base_url" toml:"base_url,omitempty" yaml:"base_url,omitempty"`
	PageSize   int    `mapstructure:"page_size" toml:"page_size,omitempty" yaml:"page_size,omitempty"`
}

// Sync tunes the reconciliation.
type Sync struct {
	StrictDates bool          `mapstructure:"strict_dates" toml:"strict_dates" yaml:"strict_dates"`
	DeletedTag  string        `mapstructure:"deleted_tag" toml:"deleted_tag" yaml:"deleted_tag"`
	DeletedIcon string        `mapstructure:"deleted_icon" toml:"deleted_icon" yaml:"deleted_icon"`
	Timeout     time.Duration `mapstructure:"timeout" toml:"timeout" yaml:"timeout"`
}

// Log configures logging. File is optional; when set, logs are also written
// there and rotated by size.
type Log struct {
	File       string `mapstructure:"file" toml:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" toml:"max_age_days" yaml:"max_age_days"`
	Verbose    bool   `mapstructure:"verbose" toml:"verbose" yaml:"verbose"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Zotero: Zotero{
			LibraryType: "user",
			BaseURL:     "https://api.zotero.org",
			PageSize:    100,
		},
		Notion: Notion{
			BaseURL:  "https://api.notion.com",
			PageSize: 100,
		},
		Sync: Sync{
			DeletedTag:  "Deleted from Zotero",
			DeletedIcon: "⚠️",
			Timeout:     30 * time.Second,
		},
		Log: Log{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// setDefaults registers every key with viper. Keys unknown to viper are not
// picked up from the environment by Unmarshal, so all of them are listed,
// including the ones without a useful default.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("zotero.library_id", d.Zotero.LibraryID)
	v.SetDefault("zotero.library_type", d.Zotero.LibraryType)
	v.SetDefault("zotero.api_key", d.Zotero.APIKey)
	v.SetDefault("zotero.base_url", d.Zotero.BaseURL)
	v.SetDefault("zotero.page_size", d.Zotero.PageSize)
	v.SetDefault("notion.token", d.Notion.Token)
	v.SetDefault("notion.database_id", d.Notion.DatabaseID)
	v.SetDefault("notion.base_url", d.Notion.BaseURL)
	v.SetDefault("notion.page_size", d.Notion.PageSize)
	v.SetDefault("sync.strict_dates", d.Sync.StrictDates)
	v.SetDefault("sync.deleted_tag", d.Sync.DeletedTag)
	v.SetDefault("sync.deleted_icon", d.Sync.DeletedIcon)
	v.SetDefault("sync.timeout", d.Sync.Timeout)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.verbose", d.Log.Verbose)
}

// Load reads the configuration. path may be empty, in which case the default
// locations are searched and a missing file is not an error. The result is
// not validated; call Validate before using it.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ZOTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("toml")
		for _, dir := range SearchPaths() {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// SearchPaths returns the directories searched for FileName, in order.
func SearchPaths() []string {
	paths := []string{"."}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, "zotion"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "zotion"))
	}
	return paths
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Zotero.LibraryID == "" {
		add("zotero.library_id is required")
	} else if strings.Trim(c.Zotero.LibraryID, "0123456789") != "" {
		add("zotero.library_id must be numeric (got %q)", c.Zotero.LibraryID)
	}
	if c.Zotero.LibraryType != "user" && c.Zotero.LibraryType != "group" {
		add("zotero.library_type must be user or group (got %q)", c.Zotero.LibraryType)
	}
	if c.Zotero.APIKey == "" {
		add("zotero.api_key is required")
	}
	if c.Zotero.PageSize < 1 || c.Zotero.PageSize > 100 {
		add("zotero.page_size must be between 1 and 100 (got %d)", c.Zotero.PageSize)
	}
	if c.Notion.Token == "" {
		add("notion.token is required")
	}
	if c.Notion.DatabaseID == "" {
		add("notion.database_id is required")
	}
	if c.Notion.PageSize < 1 || c.Notion.PageSize > 100 {
		add("notion.page_size must be between 1 and 100 (got %d)", c.Notion.PageSize)
	}
	if c.Sync.DeletedTag == "" {
		add("sync.deleted_tag cannot be empty")
	}
	if strings.Contains(c.Sync.DeletedTag, ",") {
		add("sync.deleted_tag cannot contain commas")
	}
	if c.Sync.Timeout <= 0 {
		add("sync.timeout must be positive (got %s)", c.Sync.Timeout)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w:\n%w", ErrInvalidConfig, errors.Join(errs...))
}

// Redacted returns a copy of c with secrets masked, for display.
func (c *Config) Redacted() *Config {
	out := *c
	out.Zotero.APIKey = mask(c.Zotero.APIKey)
	out.Notion.Token = mask(c.Notion.Token)
	return &out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + strings.Repeat("*", 8)
}
