package shared

import "strings"

// PinBottom renders content from the top of the available height with hint
// text pinned to the very bottom line. Content keeps its first line on row 0
// so mouse rows map straight onto it.
func PinBottom(content, hints string, height int) string {
	content = strings.TrimRight(content, "\n")
	hints = strings.TrimRight(hints, "\n")

	var contentLines []string
	if content != "" {
		contentLines = strings.Split(content, "\n")
	}
	hintLines := strings.Split(hints, "\n")

	totalUsed := len(contentLines) + len(hintLines)
	if totalUsed >= height {
		if content == "" {
			return hints
		}
		return content + "\n" + hints
	}

	lines := make([]string, 0, height)
	lines = append(lines, contentLines...)
	for i := 0; i < height-totalUsed; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, hintLines...)

	return strings.Join(lines, "\n")
}
