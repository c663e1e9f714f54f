// Package persist synchronizes the entry collection with a single key-value slot.
//
// The slot holds a JSON array of {"id", "value"} objects and is overwritten in
// full on every Save. Load never lets a corrupt slot reach runtime state: the
// value is discarded, the slot is cleared and an empty collection is returned.
// A well-formed array with individual bad records (blank value, non-positive
// or repeated id) keeps the good records and is written back cleaned.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/inovacc/memolist/internal/logging"
	"github.com/inovacc/memolist/internal/model"
	"github.com/inovacc/memolist/internal/store"
)

// DefaultKey is the well-known slot holding the collection.
const DefaultKey = "entries"

// DecodeError describes a slot value that could not be turned into a valid collection
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding slot %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Adapter reads and writes one slot of a store.Store.
type Adapter struct {
	store  store.Store
	key    string
	logger *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(a *Adapter) { a.key = key }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// New returns an Adapter over st.
func New(st store.Store, opts ...Option) *Adapter {
	a := &Adapter{
		store:  st,
		key:    DefaultKey,
		logger: logging.Discard(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Key returns the slot name the adapter uses.
func (a *Adapter) Key() string {
	return a.key
}

// Save overwrites the slot with the whole collection.
func (a *Adapter) Save(entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}

	if err := a.store.Put(a.key, data); err != nil {
		return fmt.Errorf("writing slot %q: %w", a.key, err)
	}

	a.logger.Debug("saved entries", slog.String("key", a.key), slog.Int("count", len(entries)))

	return nil
}

// Load reads the collection. An absent or corrupt slot yields an empty
// collection; only storage failures are returned as errors.
func (a *Adapter) Load() ([]model.Entry, error) {
	data, err := a.store.Get(a.key)
	if errors.Is(err, store.ErrNotFound) {
		return []model.Entry{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", a.key, err)
	}

	entries, err := decode(data)
	if err != nil {
		derr := &DecodeError{Key: a.key, Err: err}
		a.logger.Warn("discarding corrupt entries slot", slog.Any("error", derr))

		if err := a.store.Delete(a.key); err != nil {
			a.logger.Error("failed to clear corrupt slot", slog.String("key", a.key), slog.Any("error", err))
		}

		return []model.Entry{}, nil
	}

	kept, dropped := salvage(entries)
	if dropped > 0 {
		a.logger.Warn("dropped invalid entries from slot",
			slog.String("key", a.key), slog.Int("dropped", dropped), slog.Int("kept", len(kept)))

		if err := a.Save(kept); err != nil {
			a.logger.Error("failed to rewrite entries slot", slog.String("key", a.key), slog.Any("error", err))
		}
	}

	a.logger.Debug("loaded entries", slog.String("key", a.key), slog.Int("count", len(kept)))

	return kept, nil
}

// decode fails only when data is not a JSON array of entries.
func decode(data []byte) ([]model.Entry, error) {
	var entries []model.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	// a literal null decodes without error
	if entries == nil {
		return nil, errors.New("slot holds null")
	}

	return entries, nil
}

// salvage keeps the first occurrence of each positive id with a non-blank
// value, in order, and reports how many records it dropped.
func salvage(entries []model.Entry) ([]model.Entry, int) {
	kept := make([]model.Entry, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))

	for _, e := range entries {
		if e.ID <= 0 || strings.TrimSpace(e.Value) == "" {
			continue
		}

		if _, dup := seen[e.ID]; dup {
			continue
		}

		seen[e.ID] = struct{}{}
		kept = append(kept, e)
	}

	return kept, len(entries) - len(kept)
}
