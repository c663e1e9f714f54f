package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Backend names accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a durable key-value slot store. Values are opaque bytes.
type Store interface {
	Ping() error
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// UnknownBackendError indicates an unsupported backend name
type UnknownBackendError struct {
	Backend string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown storage backend %q (want %s, %s or %s)",
		e.Backend, BackendBolt, BackendSQLite, BackendMemory)
}

// Open opens the named backend at path. The memory backend ignores path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendBolt:
		b, err := NewBolt(path)
		if err != nil {
			return nil, err
		}

		return b, nil
	case BackendSQLite:
		s, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}

		return s, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, &UnknownBackendError{Backend: backend}
	}
}
