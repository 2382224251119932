package main

import (
	"fmt"
	"strings"

	"github.com/YggTools/snaprel/internal/config"
	"github.com/YggTools/snaprel/internal/ui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// --- inputModel: bubbletea model for text input with validation ---

type inputModel struct {
	textInput textinput.Model
	title     string
	validate  func(string) error
	errMsg    string
	done      bool
	aborted   bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			val := m.textInput.Value()
			if m.validate != nil {
				if err := m.validate(val); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render(m.title) + "\n")
	b.WriteString(m.textInput.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(ui.ErrStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// --- confirmModel: bubbletea model for yes/no confirmation ---

type confirmModel struct {
	title   string
	value   bool
	done    bool
	aborted bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		case "y", "Y":
			m.value = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.value = false
			m.done = true
			return m, tea.Quit
		case "left", "right", "tab", "h", "l":
			m.value = !m.value
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yes := " Yes "
	no := " No "
	if m.value {
		yes = ui.SelectedStyle.Render(" Yes ")
	} else {
		no = ui.SelectedStyle.Render(" No ")
	}
	return fmt.Sprintf("%s %s / %s\n", ui.TitleStyle.Render(m.title), yes, no)
}

// --- prompt helpers ---

func promptInput(title, placeholder string, validate func(string) error) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	m := inputModel{
		textInput: ti,
		title:     title,
		validate:  validate,
	}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}
	rm := result.(inputModel)
	if rm.aborted {
		return "", fmt.Errorf("user aborted")
	}
	return rm.textInput.Value(), nil
}

func promptConfirm(title string) (bool, error) {
	m := confirmModel{
		title: title,
	}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return false, err
	}
	rm := result.(confirmModel)
	if rm.aborted {
		return false, fmt.Errorf("user aborted")
	}
	return rm.value, nil
}

// promptConfig fills f from interactive prompts, keeping defaults when
// the user answers with an empty string.
func promptConfig(f *config.File) error {
	scope, err := promptInput(
		"npm scope to release (empty releases every public package)",
		"@acme",
		func(s string) error { return config.ValidateScope(strings.TrimSpace(s)) },
	)
	if err != nil {
		return err
	}
	f.Scope = strings.TrimSpace(scope)

	publish, err := promptInput(
		fmt.Sprintf("Dist-tag for snapshot publishes [%s]", f.PublishTag),
		f.PublishTag,
		optionalTagValidator,
	)
	if err != nil {
		return err
	}
	f.PublishTag = valueOrDefault(publish, f.PublishTag)

	promote, err := promptInput(
		fmt.Sprintf("Rolling dist-tag for promotions [%s]", f.PromoteTag),
		f.PromoteTag,
		optionalTagValidator,
	)
	if err != nil {
		return err
	}
	f.PromoteTag = valueOrDefault(promote, f.PromoteTag)

	ok, err := promptConfirm("Write " + config.FileName + "?")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user aborted")
	}
	return nil
}

// optionalTagValidator accepts an empty answer (keep the default) and
// otherwise applies the dist-tag rules.
func optionalTagValidator(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return config.ValidateTag(s)
}

func valueOrDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
