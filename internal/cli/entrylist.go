package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inovacc/memolist/internal/session"
)

var (
	docStyle          = lipgloss.NewStyle().Margin(1, 2)
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	idStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	emptyStyle        = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("240"))
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type EntryListModel struct {
	session  *session.Session
	view     session.View
	input    textinput.Model
	pager    paginator.Model
	help     help.Model
	keys     keyMap
	focus    focusArea
	cursor   int
	status   string
	err      error
	quitting bool
}

// NewEntryList builds the interactive view over s. A nil session is a
// wiring bug and panics.
func NewEntryList(s *session.Session) EntryListModel {
	if s == nil {
		panic("cli: NewEntryList called without a session")
	}

	ti := textinput.New()
	ti.Placeholder = "New entry"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = s.PageSize()
	p.ActiveDot = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "235", Dark: "252"}).Render("•")
	p.InactiveDot = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "238"}).Render("•")

	m := EntryListModel{
		session: s,
		input:   ti,
		pager:   p,
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
	m.refresh()

	return m
}

func (m EntryListModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m EntryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, _ := docStyle.GetFrameSize()
		m.input.Width = max(msg.Width-h-4, 10)
		m.help.Width = msg.Width - h

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true

			return m, tea.Quit

		case key.Matches(msg, m.keys.Focus):
			return m.toggleFocus()
		}

		if m.focus == focusInput {
			if key.Matches(msg, m.keys.Submit) {
				m.submit()

				return m, nil
			}

			break
		}

		m.handleListKey(msg)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *EntryListModel) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()

		return *m, nil
	}

	m.focus = focusInput

	return *m, m.input.Focus()
}

func (m *EntryListModel) submit() {
	e, ok, err := m.session.SubmitNewEntry(m.input.Value())
	if err != nil {
		m.err = err
		return
	}

	m.err = nil

	if !ok {
		m.status = "Nothing to add."
		return
	}

	m.input.Reset()
	m.status = fmt.Sprintf("Added #%d", e.ID)
	m.refresh()
}

func (m *EntryListModel) handleListKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Entries)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.PrevPage):
		m.session.ChangePage(m.view.CurrentPage - 1)
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keys.NextPage):
		m.session.ChangePage(m.view.CurrentPage + 1)
		m.cursor = 0
		m.refresh()

	case key.Matches(msg, m.keys.Delete):
		if len(m.view.Entries) == 0 {
			return
		}

		target := m.view.Entries[m.cursor]

		removed, err := m.session.DeleteEntry(target.ID)
		if err != nil {
			m.err = err
			return
		}

		m.err = nil

		if removed {
			m.status = fmt.Sprintf("Deleted #%d", target.ID)
		}

		m.refresh()
	}
}

// refresh re-reads the session view and keeps the cursor and paginator in range.
func (m *EntryListModel) refresh() {
	m.view = m.session.View()

	m.pager.TotalPages = m.view.PageCount
	m.pager.Page = m.view.CurrentPage - 1

	if m.cursor >= len(m.view.Entries) {
		m.cursor = max(len(m.view.Entries)-1, 0)
	}
}

func (m EntryListModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("memolist"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.view.Entries) == 0 {
		b.WriteString(emptyStyle.Render("No entries yet."))
		b.WriteString("\n")
	}

	for i, e := range m.view.Entries {
		line := fmt.Sprintf("%s %s", idStyle.Render(fmt.Sprintf("#%d", e.ID)), e.Value)

		if m.focus == focusList && i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}

		b.WriteString("\n")
	}

	if m.view.ShowPagination {
		b.WriteString("\n  ")
		b.WriteString(m.pager.View())
		b.WriteString(fmt.Sprintf("  page %d of %d", m.view.CurrentPage, m.view.PageCount))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}

// CurrentView returns the session view the model last rendered.
func (m EntryListModel) CurrentView() session.View {
	return m.view
}
