package data

import (
	"encoding/json"
	"fmt"
	"strings"

	"listo/internal/logs"
)

// Encode serializes tasks in display order.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return b, nil
}

// Decode parses a stored blob. Malformed input yields an empty collection.
// Records without an ID, repeated IDs and blank texts are dropped so the
// result never holds duplicates or empty tasks.
func Decode(blob []byte) []Task {
	if len(blob) == 0 {
		return []Task{}
	}
	var raw []Task
	if err := json.Unmarshal(blob, &raw); err != nil {
		logs.Logger.Printf("Discarding malformed task blob: %v", err)
		return []Task{}
	}

	seen := make(map[string]bool, len(raw))
	tasks := make([]Task, 0, len(raw))
	for _, t := range raw {
		if t.ID == "" || seen[t.ID] {
			logs.Logger.Printf("Dropping stored task with missing or repeated id %q", t.ID)
			continue
		}
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			logs.Logger.Printf("Dropping stored task %q with blank text", t.ID)
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	return tasks
}

// IndexOf returns the position of id in tasks, or -1.
func IndexOf(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// DeleteTask removes a task by ID and returns the updated slice.
func DeleteTask(tasks []Task, id string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// DeleteDone removes every completed task and reports whether any were removed.
func DeleteDone(tasks []Task) ([]Task, bool) {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out, len(out) != len(tasks)
}

// ReorderTasks returns tasks arranged to follow ids. Unknown and repeated
// ids are ignored; tasks missing from ids keep their relative order and go
// after the ones that were named.
func ReorderTasks(tasks []Task, ids []string) []Task {
	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	placed := make(map[string]bool, len(ids))
	out := make([]Task, 0, len(tasks))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		out = append(out, t)
	}
	for _, t := range tasks {
		if !placed[t.ID] {
			out = append(out, t)
		}
	}
	return out
}
