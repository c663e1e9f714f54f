// Package config loads memolist settings from an INI file.
//
// Values come from three layers, later ones winning: built-in defaults, the
// INI file, then command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/inovacc/memolist/internal/entries"
	"github.com/inovacc/memolist/internal/logging"
	"github.com/inovacc/memolist/internal/paging"
	"github.com/inovacc/memolist/internal/store"
)

type StorageSection struct {
	Backend string `ini:"backend"`
	Path    string `ini:"path"`
}

type PagingSection struct {
	PageSize int `ini:"page_size"`
}

type EntriesSection struct {
	IDs string `ini:"ids"`
}

type LogSection struct {
	Format string `ini:"format"`
	Level  string `ini:"level"`
}

// Config holds the application configuration
type Config struct {
	Storage StorageSection `ini:"storage"`
	Paging  PagingSection  `ini:"paging"`
	Entries EntriesSection `ini:"entries"`
	Log     LogSection     `ini:"log"`
}

// Default returns a Config with the built-in defaults. Storage.Path is left
// empty and resolved against the application directory by the caller.
func Default() Config {
	return Config{
		Storage: StorageSection{Backend: store.BackendBolt},
		Paging:  PagingSection{PageSize: paging.DefaultPageSize},
		Entries: EntriesSection{IDs: entries.IDsCounter},
		Log:     LogSection{Format: logging.FormatText, Level: "warn"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := file.MapTo(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Normalize()

	return cfg, cfg.Validate()
}

// Save writes cfg to path as INI, creating the directory if needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	file := ini.Empty()
	if err := file.ReflectFrom(&cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return file.SaveTo(path)
}

// InvalidValueError reports a config value outside its allowed set
type InvalidValueError struct {
	Field string
	Value any
	Err   error
}

func (e *InvalidValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
	}

	return fmt.Sprintf("invalid %s %v", e.Field, e.Value)
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// Normalize trims and lower-cases the name-valued fields so they compare
// the way store.Open and entries.NewIDSource read them.
func (c *Config) Normalize() {
	for _, v := range []*string{&c.Storage.Backend, &c.Entries.IDs, &c.Log.Format, &c.Log.Level} {
		*v = strings.ToLower(strings.TrimSpace(*v))
	}

	c.Storage.Path = strings.TrimSpace(c.Storage.Path)
}

// Validate checks every field against the values the packages accept.
func (c Config) Validate() error {
	if c.Paging.PageSize <= 0 {
		return &InvalidValueError{Field: "paging.page_size", Value: c.Paging.PageSize}
	}

	switch strings.ToLower(strings.TrimSpace(c.Storage.Backend)) {
	case store.BackendBolt, store.BackendSQLite, store.BackendMemory:
	default:
		return &InvalidValueError{
			Field: "storage.backend",
			Value: c.Storage.Backend,
			Err:   &store.UnknownBackendError{Backend: c.Storage.Backend},
		}
	}

	if _, err := entries.NewIDSource(c.Entries.IDs); err != nil {
		return &InvalidValueError{Field: "entries.ids", Value: c.Entries.IDs, Err: err}
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return &InvalidValueError{Field: "log.level", Value: c.Log.Level, Err: err}
	}

	if err := logging.CheckFormat(c.Log.Format); err != nil {
		return &InvalidValueError{Field: "log.format", Value: c.Log.Format, Err: err}
	}

	return nil
}
