package data

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Filter selects which tasks are visible. It never changes the underlying order.
type Filter int

const (
	FilterAll Filter = iota
	FilterOpen
	FilterDone
)

var filterNames = []string{"all", "open", "done"}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return "unknown"
	}
	return filterNames[f]
}

// Next cycles all -> open -> done -> all.
func (f Filter) Next() Filter {
	return (f + 1) % Filter(len(filterNames))
}

// ParseFilter accepts "all", "open" or "done".
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range filterNames {
		if s == name {
			return Filter(i), nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all, open or done)", s)
}

// Visible returns the tasks matching f, in collection order.
func Visible(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case FilterOpen:
			if t.Done {
				continue
			}
		case FilterDone:
			if !t.Done {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Counts summarizes a collection.
type Counts struct {
	Total int
	Open  int
	Done  int
}

func Count(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Done {
			c.Done++
		} else {
			c.Open++
		}
	}
	return c
}

type taskTexts []Task

func (s taskTexts) String(i int) string { return s[i].Text }
func (s taskTexts) Len() int            { return len(s) }

// Search keeps the tasks whose text fuzzy-matches query. Unlike fuzzy's own
// ranking, the result stays in collection order so drag positions line up.
func Search(tasks []Task, query string) []Task {
	query = strings.TrimSpace(query)
	if query == "" {
		return tasks
	}
	matches := fuzzy.FindFrom(query, taskTexts(tasks))
	hit := make(map[int]bool, len(matches))
	for _, m := range matches {
		hit[m.Index] = true
	}
	out := make([]Task, 0, len(matches))
	for i, t := range tasks {
		if hit[i] {
			out = append(out, t)
		}
	}
	return out
}
