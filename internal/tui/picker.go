// Package tui holds the interactive configuration picker shown when `use`
// is invoked without a name and no default pointer is set.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aiswitch/config/models"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

type item struct {
	entry models.Entry
}

func (i item) Title() string { return i.entry.Name }

func (i item) Description() string {
	desc := fmt.Sprintf("%s / %s", i.entry.Provider, i.entry.Model)
	if i.entry.Group != "" {
		desc = i.entry.Group + " · " + desc
	}
	return desc
}

func (i item) FilterValue() string { return i.entry.Name }

type pickerModel struct {
	list      list.Model
	choice    string
	cancelled bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		// Let the list's filter input consume keys while filtering.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.choice = it.entry.Name
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View()
}

// PickEntry shows an interactive list of configuration entries and returns
// the chosen name. current pre-selects the cursor. Returns "" when the user
// cancels.
func PickEntry(entries []models.Entry, current string) (string, error) {
	if !IsInteractive() {
		return "", fmt.Errorf("interactive selection requires a terminal")
	}

	items := make([]list.Item, 0, len(entries))
	selected := 0
	for i, e := range entries {
		items = append(items, item{entry: e})
		if e.Name == current {
			selected = i
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select a configuration"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.Select(selected)

	p := tea.NewProgram(pickerModel{list: l}, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m := final.(pickerModel)
	if m.cancelled {
		return "", nil
	}
	return m.choice, nil
}

// IsInteractive checks if stdin is a terminal.
func IsInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
