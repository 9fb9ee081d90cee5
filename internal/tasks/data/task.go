package data

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Task is a single list item.
type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// NewTask builds an open task with a fresh ID. It reports false when the
// trimmed text is empty.
func NewTask(text string) (Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}
	return Task{ID: NewID(), Text: text}, true
}

// NewID returns an opaque unique task identifier.
func NewID() string {
	return uuid.NewString()
}

func (t Task) String() string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	return fmt.Sprintf("%s %s", box, t.Text)
}
