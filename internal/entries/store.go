package entries

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/inovacc/memolist/internal/logging"
	"github.com/inovacc/memolist/internal/model"
	"github.com/inovacc/memolist/internal/persist"
)

// Store is the live, ordered entry collection of one session.
type Store struct {
	mu      sync.Mutex
	state   []model.Entry
	adapter *persist.Adapter
	ids     IDSource
	logger  *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for mutation diagnostics.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads the persisted collection through adapter and seeds ids from it.
func Open(adapter *persist.Adapter, ids IDSource, opts ...StoreOption) (*Store, error) {
	if adapter == nil {
		panic("entries: Open called with nil adapter")
	}

	if ids == nil {
		ids = NewCounter()
	}

	loaded, err := adapter.Load()
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	ids.Seed(loaded)

	s := &Store{
		state:   loaded,
		adapter: adapter,
		ids:     ids,
		logger:  logging.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Add appends a new entry holding the trimmed content. Blank content is
// rejected with ok=false and nothing is written.
func (s *Store) Add(content string) (entry model.Entry, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.create(model.Entry{Value: content})
}

// Remove deletes the entry with id. Unknown ids report removed=false and
// nothing is written.
func (s *Store) Remove(id int64) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remove(id)
}

// Dispatch applies cmd. A Create with ID 0 is assigned the next id; an
// explicit id must be positive and not already present. Blank values and
// unknown Delete ids are no-ops.
func (s *Store) Dispatch(cmd Command) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch c := cmd.(type) {
	case Create:
		_, changed, err = s.create(c.Entry)
		return changed, err
	case Delete:
		return s.remove(c.ID)
	}

	return false, fmt.Errorf("unsupported command %T", cmd)
}

// create and remove expect s.mu to be held.
func (s *Store) create(e model.Entry) (model.Entry, bool, error) {
	e.Value = strings.TrimSpace(e.Value)
	if e.Value == "" {
		return model.Entry{}, false, nil
	}

	switch {
	case e.ID < 0:
		return model.Entry{}, false, fmt.Errorf("entry id %d must be positive", e.ID)
	case e.ID == 0:
		e.ID = s.ids.Next()
	case indexOf(s.state, e.ID) >= 0:
		return model.Entry{}, false, fmt.Errorf("entry id %d already exists", e.ID)
	}

	if err := s.commit(Create{Entry: e}); err != nil {
		return model.Entry{}, false, err
	}

	// explicit ids must not be handed out again
	s.ids.Seed([]model.Entry{e})

	return e, true, nil
}

func (s *Store) remove(id int64) (bool, error) {
	if indexOf(s.state, id) < 0 {
		return false, nil
	}

	if err := s.commit(Delete{ID: id}); err != nil {
		return false, err
	}

	return true, nil
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.state)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.state)
}

// commit persists the reduced state, then swaps it in. Callers hold s.mu.
func (s *Store) commit(cmd Command) error {
	next := Reduce(s.state, cmd)

	if err := s.adapter.Save(next); err != nil {
		return fmt.Errorf("persisting entries: %w", err)
	}

	s.state = next

	switch c := cmd.(type) {
	case Create:
		s.logger.Debug("entry added", slog.Int64("id", c.Entry.ID), slog.Int("count", len(next)))
	case Delete:
		s.logger.Debug("entry removed", slog.Int64("id", c.ID), slog.Int("count", len(next)))
	}

	return nil
}
