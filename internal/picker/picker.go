// Package picker shows an interactive terminal selector for scraped job
// postings before they are imported as leads.
package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"leadscout/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 0, 0, 2)

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Padding(1, 0, 0, 2)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	None   key.Binding
	Accept key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.All, k.None, k.Accept, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	All:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
	None:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "none")),
	Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "import")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type pickerModel struct {
	jobs     []model.JobRecord
	selected map[int]bool
	cursor   int
	help     help.Model
	accepted bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.jobs)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			m.selected[m.cursor] = !m.selected[m.cursor]
		case key.Matches(msg, keys.All):
			for i := range m.jobs {
				m.selected[i] = true
			}
		case key.Matches(msg, keys.None):
			m.selected = make(map[int]bool)
		case key.Matches(msg, keys.Accept):
			m.accepted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := titleStyle.Render(fmt.Sprintf("Select jobs to import (%d found)", len(m.jobs)))
	s += "\n"

	for i, job := range m.jobs {
		mark := "[ ]"
		if m.selected[i] {
			mark = checkedStyle.Render("[x]")
		}
		label := fmt.Sprintf("%s %s", mark, job.Title)
		if job.Company != "" || job.Location != "" {
			label += " " + metaStyle.Render(fmt.Sprintf("(%s, %s)", orDash(job.Company), orDash(job.Location)))
		}
		if i == m.cursor {
			s += cursorStyle.Render("> "+label) + "\n"
		} else {
			s += itemStyle.Render(label) + "\n"
		}
	}

	s += helpStyle.Render(m.help.View(keys))
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Run shows the interactive selector and returns the jobs the user chose.
// Returns (nil, nil) when the user quit without confirming.
func Run(jobs []model.JobRecord) ([]model.JobRecord, error) {
	m := pickerModel{
		jobs:     jobs,
		selected: make(map[int]bool),
		help:     help.New(),
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run job picker: %w", err)
	}

	final := result.(pickerModel)
	if !final.accepted {
		return nil, nil
	}

	var chosen []model.JobRecord
	for i, job := range final.jobs {
		if final.selected[i] {
			chosen = append(chosen, job)
		}
	}
	return chosen, nil
}
