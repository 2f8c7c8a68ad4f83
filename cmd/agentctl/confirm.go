package main

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const confirmFieldKey = "confirm_result"

var errConfirmAborted = errors.New("confirmation aborted")

func agentctlHuhTheme() *huh.Theme {
	t := *huh.ThemeCharm()
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(lipgloss.Color("#7D56F4"))
	t.Focused.Next = t.Focused.FocusedButton
	return &t
}

func newConfirmForm(title string, description string, result *bool) *huh.Form {
	confirm := huh.NewConfirm().
		Key(confirmFieldKey).
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(result)

	return huh.NewForm(huh.NewGroup(confirm)).
		WithTheme(agentctlHuhTheme()).
		WithShowHelp(false)
}

// confirmModel hosts the form and quits as soon as it is submitted or
// aborted.
type confirmModel struct {
	form *huh.Form
}

func (m confirmModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyCtrlC {
		m.form.State = huh.StateAborted
		return m, tea.Quit
	}
	next, cmd := m.form.Update(msg)
	if form, ok := next.(*huh.Form); ok {
		m.form = form
	}
	if m.form.State != huh.StateNormal {
		return m, tea.Quit
	}
	return m, cmd
}

func (m confirmModel) View() string {
	if m.form.State != huh.StateNormal {
		return ""
	}
	return m.form.View()
}

// runConfirm asks a yes/no question on the terminal. Declining returns
// false; Ctrl+C returns errConfirmAborted.
func runConfirm(title string, description string) (bool, error) {
	var result bool
	model := confirmModel{form: newConfirmForm(title, description, &result)}
	final, err := tea.NewProgram(model, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(confirmModel); ok && m.form.State == huh.StateAborted {
		return false, errConfirmAborted
	}
	return result, nil
}
