package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/l10n-tools/editkit/format"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if f.DB != DefaultDB {
		t.Fatalf("DB = %q, want %q", f.DB, DefaultDB)
	}
	if f.SourceLang != "en" {
		t.Fatalf("SourceLang = %q, want en", f.SourceLang)
	}
	if f.DefaultFormat != string(format.Fluent) {
		t.Fatalf("DefaultFormat = %q, want ftl", f.DefaultFormat)
	}
	if len(f.Locales) != 0 || len(f.Strings) != 0 {
		t.Fatalf("defaults carry content: %#v", f)
	}
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "db: state/history.db\n" +
		"locales: [de, ru]\n" +
		"default_format: plain\n" +
		"strings:\n" +
		"  - key: app-title\n" +
		"    format: ftl\n" +
		"  - key: motd\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if f.DB != "state/history.db" {
		t.Fatalf("DB = %q", f.DB)
	}
	if !reflect.DeepEqual(f.Locales, []string{"de", "ru"}) {
		t.Fatalf("Locales = %v, want [de ru]", f.Locales)
	}
	if got := f.FormatFor("app-title"); got != format.Fluent {
		t.Fatalf("FormatFor(app-title) = %q, want ftl", got)
	}
	// No per-key override: the default applies.
	if got := f.FormatFor("motd"); got != format.Plain {
		t.Fatalf("FormatFor(motd) = %q, want plain", got)
	}
	if got := f.FormatFor("unlisted"); got != format.Plain {
		t.Fatalf("FormatFor(unlisted) = %q, want plain", got)
	}
}

func TestLoadRejectsUnknownFormats(t *testing.T) {
	t.Run("default_format", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte("default_format: po\n"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := Load(dir)
		if err == nil {
			t.Fatal("expected error for unknown default_format")
		}
		if !strings.Contains(err.Error(), "unknown default_format") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("per-string format", func(t *testing.T) {
		dir := t.TempDir()
		yaml := "strings:\n  - key: app-title\n    format: po\n"
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := Load(dir)
		if err == nil {
			t.Fatal("expected error for unknown string format")
		}
		if !strings.Contains(err.Error(), "unknown format") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		dir := t.TempDir()
		yaml := "strings:\n  - format: ftl\n"
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := Load(dir)
		if err == nil {
			t.Fatal("expected error for strings entry without key")
		}
		if !strings.Contains(err.Error(), "has no key") {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestDBPath(t *testing.T) {
	f := &File{DB: "state/history.db"}
	if got := f.DBPath("/proj"); got != filepath.Join("/proj", "state/history.db") {
		t.Fatalf("relative DBPath = %q", got)
	}
	f = &File{DB: "/var/lib/editkit/history.db"}
	if got := f.DBPath("/proj"); got != "/var/lib/editkit/history.db" {
		t.Fatalf("absolute DBPath = %q", got)
	}
}
