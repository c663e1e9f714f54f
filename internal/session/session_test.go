package session

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/memolist/internal/entries"
	"github.com/inovacc/memolist/internal/model"
	"github.com/inovacc/memolist/internal/persist"
	"github.com/inovacc/memolist/internal/store"
)

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()

	st, err := entries.Open(persist.New(store.NewMemory()), entries.NewCounter())
	require.NoError(t, err)

	return New(st, opts...)
}

func add(t *testing.T, s *Session, values ...string) []model.Entry {
	t.Helper()

	out := make([]model.Entry, 0, len(values))

	for _, v := range values {
		e, ok, err := s.SubmitNewEntry(v)
		require.NoError(t, err)
		require.True(t, ok)

		out = append(out, e)
	}

	return out
}

func visible(v View) []string {
	out := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		out[i] = e.Value
	}

	return out
}

func TestNew_NilStorePanics(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func TestNew_Defaults(t *testing.T) {
	s := newSession(t, WithPageSize(0))

	assert.Equal(t, 5, s.PageSize())
	assert.NotEmpty(t, s.ID())

	v := s.View()
	assert.Equal(t, 1, v.CurrentPage)
	assert.Equal(t, 0, v.PageCount)
	assert.False(t, v.ShowPagination)
	assert.Empty(t, v.Entries)
}

func TestSession_ScenarioA(t *testing.T) {
	s := newSession(t)
	add(t, s, "a", "b", "c", "d", "e", "f")

	v := s.View()
	assert.Equal(t, 2, v.PageCount)
	assert.True(t, v.ShowPagination)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, visible(v))

	assert.Equal(t, 2, s.ChangePage(2))
	assert.Equal(t, []string{"f"}, visible(s.View()))
}

func TestSession_ScenarioB(t *testing.T) {
	s := newSession(t)
	added := add(t, s, "a", "b", "c", "d", "e", "f")
	s.ChangePage(2)

	removed, err := s.DeleteEntry(added[5].ID)
	require.NoError(t, err)
	require.True(t, removed)

	v := s.View()
	assert.Equal(t, 1, v.PageCount)
	assert.Equal(t, 1, v.CurrentPage)
	assert.False(t, v.ShowPagination)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, visible(v))
}

func TestSession_DeleteLastEntryResetsToFirstPage(t *testing.T) {
	s := newSession(t)
	added := add(t, s, "only")

	_, err := s.DeleteEntry(added[0].ID)
	require.NoError(t, err)

	v := s.View()
	assert.Equal(t, 1, v.CurrentPage)
	assert.Equal(t, 0, v.PageCount)
}

func TestSession_DeleteKeepsPageWhenStillValid(t *testing.T) {
	s := newSession(t)
	added := add(t, s, "a", "b", "c", "d", "e", "f", "g")
	s.ChangePage(2)

	_, err := s.DeleteEntry(added[0].ID)
	require.NoError(t, err)

	v := s.View()
	assert.Equal(t, 2, v.CurrentPage)
	assert.Equal(t, []string{"g"}, visible(v))
}

func TestSession_DeleteMissing(t *testing.T) {
	s := newSession(t)
	add(t, s, "a")

	removed, err := s.DeleteEntry(404)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, s.View().Total)
}

func TestSession_AddDoesNotAdvancePage(t *testing.T) {
	s := newSession(t)
	add(t, s, "a", "b", "c", "d", "e")

	add(t, s, "f")

	v := s.View()
	assert.Equal(t, 1, v.CurrentPage)
	assert.Equal(t, 2, v.PageCount)
	assert.NotContains(t, visible(v), "f")
}

func TestSession_SubmitBlank(t *testing.T) {
	s := newSession(t)

	_, ok, err := s.SubmitNewEntry("   ")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, s.View().Total)
}

func TestSession_ChangePageClamps(t *testing.T) {
	s := newSession(t, WithPageSize(2))
	add(t, s, "a", "b", "c", "d", "e")

	assert.Equal(t, 3, s.ChangePage(10))
	assert.Equal(t, 1, s.ChangePage(0))
	assert.Equal(t, 2, s.ChangePage(2))
	assert.Equal(t, []string{"c", "d"}, visible(s.View()))
}

func TestSession_Dispatch(t *testing.T) {
	s := newSession(t)

	ok, err := s.Dispatch(entries.Create{Entry: model.Entry{Value: "a"}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Dispatch(entries.Create{Entry: model.Entry{ID: 50, Value: "b"}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Dispatch(entries.Create{Entry: model.Entry{Value: "c"}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Dispatch(entries.Delete{ID: 50})
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, []string{"a", "c"}, visible(s.View()))

	ids := make([]int64, 0, 2)
	for _, e := range s.View().Entries {
		ids = append(ids, e.ID)
	}

	assert.Equal(t, []int64{1, 51}, ids)
}

func TestSession_LogsCarrySessionID(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := newSession(t, WithLogger(logger))
	add(t, s, "a")

	assert.Contains(t, buf.String(), "session="+s.ID())
	assert.Contains(t, buf.String(), "entry added")
}

func TestSession_ConcurrentSubmitAndDelete(t *testing.T) {
	s := newSession(t)

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			e, ok, err := s.SubmitNewEntry(fmt.Sprintf("entry %d", i))
			assert.NoError(t, err)
			assert.True(t, ok)

			if i%2 == 0 {
				_, err := s.DeleteEntry(e.ID)
				assert.NoError(t, err)
			}

			s.ChangePage(i % 4)
			_ = s.View()
		}()
	}

	wg.Wait()

	v := s.View()
	assert.Equal(t, 10, v.Total)
	assert.Equal(t, 2, v.PageCount)

	seen := make(map[int64]bool)
	for _, e := range s.store.List() {
		assert.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
	}
}
