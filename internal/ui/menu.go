package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	logoStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	itemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("12")).Bold(true)
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const logo = `
 _            _
| |_ __ _ ___| | _____ _ __
| __/ _` + "`" + ` / __| |/ / _ \ '__|
| || (_| \__ \   <  __/ |
 \__\__,_|___/_|\_\___|_|
`

// MenuModel picks a command when tasker runs without arguments.
type MenuModel struct {
	choices  []menuItem
	cursor   int
	selected string
	quitting bool
}

type menuItem struct {
	command string
	help    string
}

func NewMenuModel() MenuModel {
	return MenuModel{
		choices: []menuItem{
			{command: "list", help: "show all tasks"},
			{command: "demo", help: "list tasks and add two sample tasks"},
			{command: "web", help: "serve the JSON API"},
			{command: "mcp", help: "serve MCP tools on stdio"},
		},
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}

		case "enter":
			m.selected = m.choices[m.cursor].command
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(logoStyle.Render(logo))
	s.WriteString("\n\n")

	for i, choice := range m.choices {
		line := fmt.Sprintf("%-6s %s", choice.command, helpStyle.Render(choice.help))
		if m.cursor == i {
			s.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			s.WriteString(itemStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n(use arrow keys or j/k to navigate, enter to select, q to quit)\n")

	return s.String()
}

func (m MenuModel) Selected() string {
	return m.selected
}

// RunMenu shows the menu and returns the chosen command, or "" if the user quit.
func RunMenu() (string, error) {
	m := NewMenuModel()
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	return finalModel.(MenuModel).Selected(), nil
}
