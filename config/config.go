// Package config — .editkit.yaml project configuration.
//
// The file declares where the translation history database lives, which
// locales the project targets, and which localization format each source
// string uses. A missing file yields defaults; a present file is validated
// strictly.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/l10n-tools/editkit/format"
)

// FileName is the project configuration file name.
const FileName = ".editkit.yaml"

// DefaultDB is the history database path relative to the project root.
const DefaultDB = ".editkit/history.db"

// File is the top-level .editkit.yaml structure.
type File struct {
	// DB is the history database path relative to the project root.
	DB string `yaml:"db,omitempty"`
	// SourceLang is the source language code (default "en").
	SourceLang string `yaml:"source_lang,omitempty"`
	// Locales are the target locales.
	Locales []string `yaml:"locales,omitempty"`
	// DefaultFormat applies to strings without an explicit override
	// (default "ftl").
	DefaultFormat string `yaml:"default_format,omitempty"`
	// Strings declares per-key format overrides.
	Strings []StringConfig `yaml:"strings,omitempty"`
}

// StringConfig overrides settings for one source string.
type StringConfig struct {
	// Key is the source string identifier.
	Key string `yaml:"key"`
	// Format is the string's localization syntax ("plain" or "ftl").
	Format string `yaml:"format"`
}

// Load reads and validates .editkit.yaml from the given directory. A
// missing file is not an error: defaults are returned.
func Load(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			f := &File{}
			f.applyDefaults()
			return f, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.applyDefaults()

	if !format.Known(format.Format(f.DefaultFormat)) {
		return nil, fmt.Errorf("%s: unknown default_format %q (valid: plain, ftl)", path, f.DefaultFormat)
	}
	for i, sc := range f.Strings {
		if sc.Key == "" {
			return nil, fmt.Errorf("%s: strings entry #%d has no key", path, i+1)
		}
		if sc.Format != "" && !format.Known(format.Format(sc.Format)) {
			return nil, fmt.Errorf("%s: string %q has unknown format %q (valid: plain, ftl)", path, sc.Key, sc.Format)
		}
	}
	return &f, nil
}

func (f *File) applyDefaults() {
	if f.DB == "" {
		f.DB = DefaultDB
	}
	if f.SourceLang == "" {
		f.SourceLang = "en"
	}
	if f.DefaultFormat == "" {
		f.DefaultFormat = string(format.Fluent)
	}
}

// FormatFor returns the declared format for a source string key.
func (f *File) FormatFor(key string) format.Format {
	for _, sc := range f.Strings {
		if sc.Key == key && sc.Format != "" {
			return format.Format(sc.Format)
		}
	}
	return format.Format(f.DefaultFormat)
}

// DBPath resolves the history database path against the project root.
func (f *File) DBPath(rootDir string) string {
	if filepath.IsAbs(f.DB) {
		return f.DB
	}
	return filepath.Join(rootDir, f.DB)
}
