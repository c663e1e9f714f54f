package store

import (
	"errors"

	"github.com/inovacc/memolist/internal/store/sqlite"
)

// SQLiteWrapper wraps the sqlite.Store to implement the Store interface.
type SQLiteWrapper struct {
	store *sqlite.Store
}

// NewSQLite opens a SQLite-backed store at path.
func NewSQLite(path string) (*SQLiteWrapper, error) {
	s, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteWrapper{store: s}, nil
}

func (w *SQLiteWrapper) Ping() error {
	return w.store.Ping()
}

func (w *SQLiteWrapper) Get(key string) ([]byte, error) {
	v, err := w.store.Get(key)
	if errors.Is(err, sqlite.ErrNoValue) {
		return nil, ErrNotFound
	}

	return v, err
}

func (w *SQLiteWrapper) Put(key string, value []byte) error {
	return w.store.Put(key, value)
}

func (w *SQLiteWrapper) Delete(key string) error {
	return w.store.Delete(key)
}

func (w *SQLiteWrapper) Close() error {
	return w.store.Close()
}
