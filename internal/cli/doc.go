// Package cli provides the terminal user interface for memolist.
//
// The package uses [Bubbletea] for the interactive view and [Lipgloss] for
// styling, following the Model-View-Update architecture. It holds no state
// rules of its own: every keypress that changes data calls the
// session.Session it was built with, then re-reads session.View.
//
// # Components
//
//   - EntryList: text input for new entries, the current page of entries,
//     and paginator dots shown only when there is more than one page
//
// Example:
//
//	m := cli.NewEntryList(sess)
//	if _, err := tea.NewProgram(m).Run(); err != nil {
//	    return err
//	}
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
