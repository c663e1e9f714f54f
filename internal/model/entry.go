package model

// Entry is a single user-submitted text item.
type Entry struct {
	// ID is unique within a collection and never reused while the entry exists
	ID int64 `json:"id"`

	// Value is the trimmed, non-empty text of the entry
	Value string `json:"value"`
}
