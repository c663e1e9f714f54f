// Package paging computes page counts, page windows and current-page
// re-clamping for a fixed page size. Every function is pure.
package paging

// DefaultPageSize is the number of entries shown per page.
const DefaultPageSize = 5

// Page is the visible slice of a collection.
type Page[T any] struct {
	Items   []T
	Current int // effective 1-indexed page
	Count   int // total pages, 0 for an empty collection
}

// Window describes one page of a collection of Total items.
type Window struct {
	Page  int // effective 1-indexed page
	Count int // total pages
	Start int // inclusive index
	End   int // exclusive index, never past Total
	Total int
}

// PageCount returns ceil(total / size). Non-positive sizes yield 0.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}

	return (total + size - 1) / size
}

// Clamp bounds requested to [1, max(1, count)].
func Clamp(requested, count int) int {
	return min(max(requested, 1), max(count, 1))
}

// Locate computes the window for requested over total items.
func Locate(total, size, requested int) Window {
	count := PageCount(total, size)
	page := Clamp(requested, count)

	start := (page - 1) * max(size, 0)
	end := start + max(size, 0)

	return Window{
		Page:  page,
		Count: count,
		Start: min(start, max(total, 0)),
		End:   min(end, max(total, 0)),
		Total: total,
	}
}

// Slice returns the items visible on requested. Windows past the end
// yield fewer, possibly zero, items.
func Slice[T any](items []T, size, requested int) Page[T] {
	w := Locate(len(items), size, requested)

	return Page[T]{
		Items:   items[w.Start:w.End:w.End],
		Current: w.Page,
		Count:   w.Count,
	}
}

// Reclamp returns the current page to use after a deletion leaves
// remaining items. A page past the new last page moves to the last page;
// an empty collection resets to page 1.
func Reclamp(current, remaining, size int) int {
	count := PageCount(remaining, size)

	switch {
	case count == 0:
		return 1
	case current > count:
		return count
	default:
		return current
	}
}

// ShowControls reports whether page navigation should be displayed.
func ShowControls(count int) bool {
	return count > 1
}
