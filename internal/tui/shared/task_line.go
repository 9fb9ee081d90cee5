package shared

import (
	"strings"

	"listo/internal/tasks/data"
	"listo/internal/tui/theme"
)

// ShortID is the prefix of a task ID shown in plain listings.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// StyledTaskLine renders a task in a simple, readable format.
// Format: [x] text  (id)
func StyledTaskLine(t data.Task) string {
	var parts []string

	if t.Done {
		parts = append(parts, theme.Ok.Render("[x]"), theme.Done.Render(t.Text))
	} else {
		parts = append(parts, "[ ]", t.Text)
	}
	parts = append(parts, theme.Muted.Render("("+ShortID(t.ID)+")"))

	return strings.Join(parts, " ")
}
