package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/steveyegge/zotion/internal/config"
)

func TestInitFileLoads(t *testing.T) {
	f := newInitFile()
	f.Zotero.LibraryID = "1234567"
	f.Zotero.APIKey = "zotero-key"
	f.Notion.Token = "secret_abc"
	f.Notion.DatabaseID = "db1"

	path := filepath.Join(t.TempDir(), "conf", config.FileName)
	if err := saveInitFile(path, f); err != nil {
		t.Fatalf("saveInitFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("written config does not validate: %v", err)
	}
	if cfg.Zotero.LibraryID != "1234567" || cfg.Notion.DatabaseID != "db1" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Sync.DeletedTag != "Deleted from Zotero" {
		t.Errorf("DeletedTag = %q", cfg.Sync.DeletedTag)
	}
	if cfg.Zotero.BaseURL != "https://api.zotero.org" {
		t.Errorf("BaseURL default lost: %q", cfg.Zotero.BaseURL)
	}
}

func TestWriteInitFileIsTOML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeInitFile(&buf, newInitFile()); err != nil {
		t.Fatalf("writeInitFile failed: %v", err)
	}

	var decoded map[string]any
	if _, err := toml.Decode(buf.String(), &decoded); err != nil {
		t.Fatalf("output is not TOML: %v\n%s", err, buf.String())
	}
	for _, section := range []string{"zotero", "notion", "sync"} {
		if _, ok := decoded[section]; !ok {
			t.Errorf("missing [%s] section", section)
		}
	}
}

func TestRequired(t *testing.T) {
	check := required("token")
	if err := check("  "); err == nil || !strings.Contains(err.Error(), "token is required") {
		t.Errorf("blank value: got %v", err)
	}
	if err := check("x"); err != nil {
		t.Errorf("non-blank value: got %v", err)
	}
}

func TestWriteConfigMasksSecrets(t *testing.T) {
	cfg := config.Default()
	cfg.Zotero.APIKey = "abcdefghijklmnop"
	cfg.Notion.Token = "secret_0123456789"

	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeConfig(&buf, cfg.Redacted(), format); err != nil {
				t.Fatalf("writeConfig failed: %v", err)
			}
			out := buf.String()
			if strings.Contains(out, "abcdefghijklmnop") || strings.Contains(out, "secret_0123456789") {
				t.Errorf("secret leaked:\n%s", out)
			}
			if !strings.Contains(out, "deleted_tag") {
				t.Errorf("missing deleted_tag:\n%s", out)
			}
		})
	}

	var buf bytes.Buffer
	if err := writeConfig(&buf, cfg, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
