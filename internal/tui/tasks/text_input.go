package tasks

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"listo/internal/tui/theme"
)

// Input fields that report through TextInputResultMsg.
const (
	FieldNewTask = "new-task"
	FieldSearch  = "search"
)

// TextInputModel wraps bubbles/textinput for the one-line inputs of the
// task view. Enter and esc are reported as a TextInputResultMsg.
type TextInputModel struct {
	Input textinput.Model
	Field string
}

// TextInputResultMsg is sent when input is confirmed or cancelled
type TextInputResultMsg struct {
	Field     string
	Value     string
	Cancelled bool
}

// NewTextInput creates a blurred input; call Focus to start typing.
func NewTextInput(field, prompt, placeholder string) *TextInputModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = theme.Prompt
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	return &TextInputModel{Input: ti, Field: field}
}

func (m *TextInputModel) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			value := m.Input.Value()
			return func() tea.Msg {
				return TextInputResultMsg{Field: m.Field, Value: value}
			}
		case "esc":
			return func() tea.Msg {
				return TextInputResultMsg{Field: m.Field, Cancelled: true}
			}
		}
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return cmd
}

func (m *TextInputModel) View() string {
	return m.Input.View()
}

func (m *TextInputModel) Value() string {
	return m.Input.Value()
}

func (m *TextInputModel) SetValue(v string) {
	m.Input.SetValue(v)
}

func (m *TextInputModel) Reset() {
	m.Input.Reset()
}

func (m *TextInputModel) Focus() tea.Cmd {
	return m.Input.Focus()
}

func (m *TextInputModel) Blur() {
	m.Input.Blur()
}

func (m *TextInputModel) Focused() bool {
	return m.Input.Focused()
}

// SetWidth sets the visible width of the typed text.
func (m *TextInputModel) SetWidth(w int) {
	m.Input.Width = max(w-len(m.Input.Prompt)-1, 1)
}
