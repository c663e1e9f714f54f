package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/memolist/internal/model"
	"github.com/inovacc/memolist/internal/store"
)

type failingStore struct {
	*store.Memory
	getErr error
	putErr error
}

func (f *failingStore) Get(key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	return f.Memory.Get(key)
}

func (f *failingStore) Put(key string, value []byte) error {
	if f.putErr != nil {
		return f.putErr
	}

	return f.Memory.Put(key, value)
}

func TestAdapter_LoadAbsent(t *testing.T) {
	a := New(store.NewMemory())

	entries, err := a.Load()
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestAdapter_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		entries []model.Entry
	}{
		{name: "empty", entries: []model.Entry{}},
		{name: "single", entries: []model.Entry{{ID: 1, Value: "a"}}},
		{
			name: "order kept with gaps in ids",
			entries: []model.Entry{
				{ID: 9, Value: "nine"},
				{ID: 2, Value: "two"},
				{ID: 1715000000000, Value: "clock id"},
				{ID: 4, Value: "ünïcode \"quoted\""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(store.NewMemory())

			require.NoError(t, a.Save(tt.entries))

			got, err := a.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.entries, got)
		})
	}
}

func TestAdapter_SaveNilWritesEmptyArray(t *testing.T) {
	mem := store.NewMemory()
	a := New(mem)

	require.NoError(t, a.Save(nil))

	raw, err := mem.Get(DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestAdapter_WireFormat(t *testing.T) {
	mem := store.NewMemory()
	a := New(mem, WithKey("myItems"))

	require.NoError(t, a.Save([]model.Entry{{ID: 1, Value: "a"}, {ID: 2, Value: "b"}}))

	raw, err := mem.Get("myItems")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"value":"a"},{"id":2,"value":"b"}]`, string(raw))
	assert.Equal(t, "myItems", a.Key())
}

func TestAdapter_LoadCorruptClearsSlot(t *testing.T) {
	payloads := map[string]string{
		"not json":      `{{{`,
		"wrong shape":   `{"id":1}`,
		"null":          `null`,
		"wrong types":   `[{"id":"one","value":"a"}]`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			mem := store.NewMemory()
			require.NoError(t, mem.Put(DefaultKey, []byte(payload)))

			var logs bytes.Buffer
			a := New(mem, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

			entries, err := a.Load()
			require.NoError(t, err)
			assert.Empty(t, entries)

			_, err = mem.Get(DefaultKey)
			assert.ErrorIs(t, err, store.ErrNotFound, "corrupt slot should be cleared")
			assert.Contains(t, logs.String(), "discarding corrupt entries slot")
		})
	}
}

func TestAdapter_LoadDropsInvalidRecords(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []model.Entry
	}{
		{
			name:    "duplicate id keeps first",
			payload: `[{"id":1,"value":"a"},{"id":2,"value":"b"},{"id":1,"value":"c"}]`,
			want:    []model.Entry{{ID: 1, Value: "a"}, {ID: 2, Value: "b"}},
		},
		{
			name:    "blank value",
			payload: `[{"id":1,"value":"   "},{"id":2,"value":"b"}]`,
			want:    []model.Entry{{ID: 2, Value: "b"}},
		},
		{
			name:    "non-positive ids",
			payload: `[{"id":0,"value":"zero"},{"id":-3,"value":"neg"},{"id":7,"value":"ok"}]`,
			want:    []model.Entry{{ID: 7, Value: "ok"}},
		},
		{
			name:    "nothing valid",
			payload: `[{"id":1,"value":""}]`,
			want:    []model.Entry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := store.NewMemory()
			require.NoError(t, mem.Put(DefaultKey, []byte(tt.payload)))

			var logs bytes.Buffer
			a := New(mem, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

			entries, err := a.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, entries)
			assert.Contains(t, logs.String(), "dropped invalid entries from slot")

			// the cleaned collection is written back
			raw, err := mem.Get(DefaultKey)
			require.NoError(t, err)

			want, err := json.Marshal(tt.want)
			require.NoError(t, err)
			assert.JSONEq(t, string(want), string(raw))
		})
	}
}

func TestAdapter_LoadValidSlotIsNotRewritten(t *testing.T) {
	backing := &failingStore{Memory: store.NewMemory()}
	require.NoError(t, backing.Memory.Put(DefaultKey, []byte(`[{"id":1,"value":"a"}]`)))

	backing.putErr = errors.New("unexpected write")
	a := New(backing)

	entries, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, []model.Entry{{ID: 1, Value: "a"}}, entries)
}

func TestAdapter_LoadStorageError(t *testing.T) {
	boom := errors.New("disk on fire")
	a := New(&failingStore{Memory: store.NewMemory(), getErr: boom})

	_, err := a.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestAdapter_SaveStorageError(t *testing.T) {
	boom := errors.New("read-only")
	a := New(&failingStore{Memory: store.NewMemory(), putErr: boom})

	err := a.Save([]model.Entry{{ID: 1, Value: "a"}})
	assert.ErrorIs(t, err, boom)
}

func TestDecodeError(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	err := &DecodeError{Key: "entries", Err: inner}

	assert.Equal(t, `decoding slot "entries": unexpected end of JSON input`, err.Error())
	assert.True(t, errors.Is(err, inner))
}
