package tasks

import "listo/internal/surface"

// Announcement texts.
const (
	MsgAdded      = "Task added"
	MsgDeleted    = "Task deleted"
	MsgEdited     = "Task edited"
	MsgReordered  = "Tasks reordered"
	MsgComplete   = "Marked complete"
	MsgOpen       = "Marked open"
	MsgCleared    = "Cleared completed"
	MsgCopied     = "Copied to clipboard"
	MsgCopyFailed = "Could not copy"
	MsgSaveFailed = "Could not save"
	MsgReloaded   = "Reloaded"
)

// Announcer receives one status message at a time.
type Announcer interface {
	Announce(msg string)
}

// LiveRegion is a single-slot announcer backed by a display element; each
// message replaces the last.
type LiveRegion struct {
	el *surface.Element
}

func NewLiveRegion(el *surface.Element) *LiveRegion {
	return &LiveRegion{el: el}
}

func (l *LiveRegion) Announce(msg string) {
	l.el.Text = msg
}

func (l *LiveRegion) Text() string {
	return l.el.Text
}
