// Package session exposes the operations a front end needs: submit, delete,
// change page and read the current view.
//
// A Session is built once per process and passed explicitly to whatever
// renders it. It owns the current page and keeps it valid after every
// mutation; the entry collection itself lives in an entries.Store.
package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/inovacc/memolist/internal/entries"
	"github.com/inovacc/memolist/internal/logging"
	"github.com/inovacc/memolist/internal/model"
	"github.com/inovacc/memolist/internal/paging"
)

// View is the read model handed to renderers.
type View struct {
	Entries        []model.Entry
	CurrentPage    int
	PageCount      int
	ShowPagination bool
	Total          int
}

type Session struct {
	mu       sync.Mutex
	id       string
	store    *entries.Store
	pageSize int
	current  int
	memo     *paging.Memo
	logger   *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithPageSize sets the page size. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets the session logger. The session id is attached to it.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New wraps store. A nil store is a wiring bug and panics.
func New(store *entries.Store, opts ...Option) *Session {
	if store == nil {
		panic("session: New called without an entry store")
	}

	s := &Session{
		id:       uuid.NewString(),
		store:    store,
		pageSize: paging.DefaultPageSize,
		current:  1,
		memo:     paging.NewMemo(),
		logger:   logging.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(slog.String("session", s.id))

	return s
}

// ID returns the random identifier attached to this session's logs.
func (s *Session) ID() string {
	return s.id
}

// PageSize returns the fixed page size.
func (s *Session) PageSize() int {
	return s.pageSize
}

// SubmitNewEntry adds text as a new entry. Blank text returns ok=false.
// The current page is left where it is, even if the entry lands on a
// later page.
func (s *Session) SubmitNewEntry(text string) (model.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok, err := s.store.Add(text)
	if err != nil {
		s.logger.Error("add failed", slog.Any("error", err))
		return model.Entry{}, false, err
	}

	if ok {
		s.logger.Info("entry added", slog.Int64("id", e.ID))
	}

	return e, ok, nil
}

// DeleteEntry removes the entry with id and re-clamps the current page.
func (s *Session) DeleteEntry(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.store.Remove(id)
	if err != nil {
		s.logger.Error("delete failed", slog.Int64("id", id), slog.Any("error", err))
		return false, err
	}

	if !removed {
		return false, nil
	}

	prev := s.current
	s.current = paging.Reclamp(s.current, s.store.Len(), s.pageSize)

	s.logger.Info("entry removed", slog.Int64("id", id), slog.Int("page", s.current))

	if prev != s.current {
		s.logger.Debug("current page re-clamped", slog.Int("from", prev), slog.Int("to", s.current))
	}

	return true, nil
}

// ChangePage moves to page n, clamped to the valid range, and returns the
// page actually selected.
func (s *Session) ChangePage(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = paging.Clamp(n, paging.PageCount(s.store.Len(), s.pageSize))

	return s.current
}

// Dispatch applies an entries command. Deletes go through DeleteEntry so
// the current page is re-clamped.
func (s *Session) Dispatch(cmd entries.Command) (bool, error) {
	if c, ok := cmd.(entries.Delete); ok {
		return s.DeleteEntry(c.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.store.Dispatch(cmd)
	if err != nil {
		s.logger.Error("dispatch failed", slog.Any("error", err))
		return false, err
	}

	return changed, nil
}

// View returns the visible entries and pagination state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.store.List()
	w := s.memo.Locate(len(all), s.pageSize, s.current)

	return View{
		Entries:        all[w.Start:w.End:w.End],
		CurrentPage:    w.Page,
		PageCount:      w.Count,
		ShowPagination: paging.ShowControls(w.Count),
		Total:          w.Total,
	}
}
