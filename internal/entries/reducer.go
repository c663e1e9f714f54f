package entries

import "github.com/inovacc/memolist/internal/model"

// Command is a state transition applied by Reduce.
type Command interface {
	isCommand()
}

// Create appends Entry to the collection.
type Create struct {
	Entry model.Entry
}

// Delete removes the entry with ID, if present.
type Delete struct {
	ID int64
}

func (Create) isCommand() {}
func (Delete) isCommand() {}

// Reduce returns the collection that results from applying cmd to state.
// Unknown commands return state unchanged.
func Reduce(state []model.Entry, cmd Command) []model.Entry {
	switch c := cmd.(type) {
	case Create:
		next := make([]model.Entry, len(state), len(state)+1)
		copy(next, state)

		return append(next, c.Entry)

	case Delete:
		next := make([]model.Entry, 0, len(state))

		for _, e := range state {
			if e.ID != c.ID {
				next = append(next, e)
			}
		}

		return next
	}

	return state
}

func indexOf(state []model.Entry, id int64) int {
	for i, e := range state {
		if e.ID == id {
			return i
		}
	}

	return -1
}
