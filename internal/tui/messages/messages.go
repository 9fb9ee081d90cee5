package messages

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// ClipboardMsg reports the outcome of a clipboard write.
type ClipboardMsg struct {
	Text string
	Err  error
}

// ReloadMsg asks the task view to re-read the store.
type ReloadMsg struct{}

// CopyToClipboard writes text off the update loop.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{Text: text, Err: clipboard.WriteAll(text)}
	}
}

func Reload() tea.Cmd {
	return func() tea.Msg {
		return ReloadMsg{}
	}
}
