package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// conditionInput is the result of the interactive loading-condition prompt.
type conditionInput struct {
	draft float64
	load  float64
}

// promptCondition interactively asks for the draft and cargo load. The
// second return value is false when the user aborted.
func promptCondition(unit string) (conditionInput, bool, error) {
	model := newPromptModel(unit)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return conditionInput{}, false, fmt.Errorf("prompt: %w", err)
	}
	m, ok := final.(promptModel)
	if !ok || m.aborted {
		return conditionInput{}, false, nil
	}
	return m.result, true, nil
}

// =============================================================================
// promptModel - Interactive loading condition entry
// =============================================================================

// promptField is one numeric entry field.
type promptField struct {
	label string
	value string
}

// promptModel is the bubbletea model for the loading condition prompt.
type promptModel struct {
	fields  []promptField
	active  int
	errMsg  string
	aborted bool
	done    bool
	result  conditionInput
}

func newPromptModel(unit string) promptModel {
	return promptModel{
		fields: []promptField{
			{label: fmt.Sprintf("Draft (%s)", unit)},
			{label: "Cargo load (kg)", value: "0"},
		},
	}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		if m.active < len(m.fields)-1 {
			m.active++
			return m, nil
		}
		result, err := m.parse()
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.result = result
		m.done = true
		return m, tea.Quit
	case "tab", "down":
		m.active = (m.active + 1) % len(m.fields)
	case "shift+tab", "up":
		m.active = (m.active + len(m.fields) - 1) % len(m.fields)
	case "backspace":
		f := &m.fields[m.active]
		if len(f.value) > 0 {
			f.value = f.value[:len(f.value)-1]
		}
	default:
		if key.Type == tea.KeyRunes {
			m.fields[m.active].value += string(key.Runes)
			m.errMsg = ""
		}
	}
	return m, nil
}

func (m promptModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Loading Condition"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("⏎ confirm  ⇥ next field  esc quit"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		cursor := "  "
		if i == m.active {
			cursor = "▸ "
		}
		label := StyleDim.Render(f.label + ":")
		value := StyleValue.Render(f.value)
		if i == m.active {
			value += StyleHighlight.Render("█")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, label, value))
	}

	if m.errMsg != "" {
		b.WriteString("\n" + StyleWarning.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// parse converts the field values into a loading condition.
func (m promptModel) parse() (conditionInput, error) {
	draft, err := strconv.ParseFloat(strings.TrimSpace(m.fields[0].value), 64)
	if err != nil {
		return conditionInput{}, fmt.Errorf("draft must be a number")
	}
	loadStr := strings.TrimSpace(m.fields[1].value)
	if loadStr == "" {
		loadStr = "0"
	}
	load, err := strconv.ParseFloat(loadStr, 64)
	if err != nil {
		return conditionInput{}, fmt.Errorf("cargo load must be a number")
	}
	return conditionInput{draft: draft, load: load}, nil
}
