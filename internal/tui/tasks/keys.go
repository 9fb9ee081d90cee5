package tasks

import (
	"github.com/charmbracelet/bubbles/key"

	"listo/internal/tui/shared"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	New        key.Binding
	NextFilter key.Binding
	FilterAll  key.Binding
	FilterOpen key.Binding
	FilterDone key.Binding
	Clear      key.Binding
	Move       key.Binding
	Yank       key.Binding
	Search     key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done/open")),
	Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit")),
	Delete:     key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d/x", "delete")),
	New:        key.NewBinding(key.WithKeys("n", "a", "i"), key.WithHelp("n", "new task")),
	NextFilter: key.NewBinding(key.WithKeys("f", "tab"), key.WithHelp("f/tab", "next filter")),
	FilterAll:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
	FilterOpen: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "open")),
	FilterDone: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "done")),
	Clear:      key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
	Move:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
	Yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Reload:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Toggle, k.Edit, k.Delete, k.Move, k.NextFilter, k.Search, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Edit, k.Delete, k.New, k.Yank},
		{k.NextFilter, k.FilterAll, k.FilterOpen, k.FilterDone, k.Search, k.Clear},
		{k.Move, k.Reload, k.Help, k.Quit},
	}
}

var helpTitles = []string{"Tasks", "View", "Other"}

// HelpSections lists every binding for the help popup.
func HelpSections() []shared.HelpSection {
	var sections []shared.HelpSection
	for i, group := range keys.FullHelp() {
		s := shared.HelpSection{Title: helpTitles[i]}
		for _, b := range group {
			h := b.Help()
			s.Binds = append(s.Binds, shared.HelpBind{Key: h.Key, Desc: h.Desc})
		}
		sections = append(sections, s)
	}
	s := shared.HelpSection{Title: "Mouse"}
	s.Binds = append(s.Binds,
		shared.HelpBind{Key: "drag ⋮⋮", Desc: "reorder"},
		shared.HelpBind{Key: "click [ ]", Desc: "done/open"},
		shared.HelpBind{Key: "click chip", Desc: "filter"},
	)
	return append(sections, s)
}
