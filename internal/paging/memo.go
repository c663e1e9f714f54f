package paging

import lru "github.com/hashicorp/golang-lru/v2"

const memoSize = 64

type memoKey struct {
	total, size, requested int
}

// Memo caches Locate results. Locate is pure, so entries never go stale.
type Memo struct {
	cache *lru.Cache[memoKey, Window]
}

func NewMemo() *Memo {
	// lru.New only fails for non-positive sizes
	cache, err := lru.New[memoKey, Window](memoSize)
	if err != nil {
		panic(err)
	}

	return &Memo{cache: cache}
}

// Locate returns the memoized window for (total, size, requested).
func (m *Memo) Locate(total, size, requested int) Window {
	k := memoKey{total: total, size: size, requested: requested}

	if w, ok := m.cache.Get(k); ok {
		return w
	}

	w := Locate(total, size, requested)
	m.cache.Add(k, w)

	return w
}

// Len returns the number of cached windows.
func (m *Memo) Len() int {
	return m.cache.Len()
}
