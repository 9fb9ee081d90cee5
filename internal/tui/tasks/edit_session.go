package tasks

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"listo/internal/tasks/data"
)

// EditSession is the one inline edit in progress.
type EditSession struct {
	TaskID string
	Input  textinput.Model
}

func newEditSession(t data.Task) *EditSession {
	ti := textinput.New()
	ti.Prompt = ""
	// No limit: SetValue would cut stored text to fit.
	ti.CharLimit = 0
	ti.SetValue(t.Text)
	ti.CursorEnd()
	ti.Focus()
	return &EditSession{TaskID: t.ID, Input: ti}
}

// Text is the working text as typed.
func (e *EditSession) Text() string {
	return e.Input.Value()
}

// Trimmed is the text a commit would write.
func (e *EditSession) Trimmed() string {
	return strings.TrimSpace(e.Input.Value())
}

func (e *EditSession) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.Input, cmd = e.Input.Update(msg)
	return cmd
}
