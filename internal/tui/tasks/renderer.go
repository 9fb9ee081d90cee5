package tasks

import (
	"fmt"

	"listo/internal/drag"
	"listo/internal/surface"
	"listo/internal/tasks/data"
)

// Actions is what rendered controls call back into. Handlers only ever
// capture task IDs.
type Actions interface {
	Select(id string)
	Toggle(id string)
	StartEdit(id string) bool
	CommitEdit()
	CancelEdit()
	Delete(id string)
	SetFilter(f data.Filter)
	ClearCompleted()
	BeginDrag(s surface.Signal) bool
	RequestForm(submit bool)
}

// RenderInput is everything one render pass reads.
type RenderInput struct {
	Tasks     []data.Task
	Counts    data.Counts
	Filter    data.Filter
	Query     string
	Searching bool
	EditingID string
	EditText  string
}

// Renderer owns the display tree. The chrome is built once; Render rebuilds
// the task region and refreshes counters, chips and the empty state.
type Renderer struct {
	actions Actions

	root      *surface.Element
	form      *surface.Element
	chips     map[data.Filter]*surface.Element
	countAll  *surface.Element
	countOpen *surface.Element
	countDone *surface.Element
	search    *surface.Element
	list      *surface.Element
	empty     *surface.Element
	live      *surface.Element
}

func NewRenderer(actions Actions) *Renderer {
	r := &Renderer{actions: actions, chips: map[data.Filter]*surface.Element{}}

	r.root = surface.New("main", "app")
	r.root.Append(surface.NewText("h1", "app-title", "listo"))

	r.form = surface.New("row", "task-form")
	input := surface.NewText("input", "task-input", "What needs doing?")
	input.Width = surface.Fill
	add := surface.NewText("button", "icon-btn add", "Add")
	r.form.Append(surface.NewText("span", "prompt", "+"), input, add)
	r.form.On(surface.Click, func(surface.Signal) bool {
		actions.RequestForm(false)
		return true
	})
	add.On(surface.Click, func(surface.Signal) bool {
		actions.RequestForm(true)
		return true
	})
	r.root.Append(r.form)

	filters := surface.New("row", "filters")
	for _, f := range []data.Filter{data.FilterAll, data.FilterOpen, data.FilterDone} {
		chip := surface.NewText("button", "chip", chipLabel(f))
		chip.SetAttr("data-filter", f.String())
		chip.On(surface.Click, func(surface.Signal) bool {
			actions.SetFilter(f)
			return true
		})
		r.chips[f] = chip
		filters.Append(chip)
	}
	spacer := surface.New("span", "spacer")
	spacer.Width = surface.Fill
	r.countAll = surface.New("span", "counter")
	r.countOpen = surface.New("span", "counter")
	r.countDone = surface.New("span", "counter")
	filters.Append(spacer, r.countAll, r.countOpen, r.countDone)
	r.root.Append(filters)

	r.search = surface.New("div", "search-bar")
	r.list = surface.New("ul", "task-list")
	r.empty = surface.New("div", "empty-state")
	r.root.Append(r.search, r.list, r.empty)

	footer := surface.New("row", "footer")
	clearDone := surface.NewText("button", "icon-btn clear-done", "Clear completed")
	clearDone.On(surface.Click, func(surface.Signal) bool {
		actions.ClearCompleted()
		return true
	})
	footer.Append(clearDone)
	r.root.Append(footer)

	r.live = surface.New("p", "live")
	r.live.SetAttr("aria-live", "polite")
	r.root.Append(r.live)
	return r
}

func chipLabel(f data.Filter) string {
	switch f {
	case data.FilterOpen:
		return "Open"
	case data.FilterDone:
		return "Done"
	}
	return "All"
}

func (r *Renderer) Root() *surface.Element { return r.root }
func (r *Renderer) List() *surface.Element { return r.list }
func (r *Renderer) Live() *surface.Element { return r.live }

// Render clears the task region and rebuilds it from in.
func (r *Renderer) Render(in RenderInput) {
	r.list.Clear()
	for _, t := range in.Tasks {
		r.list.Append(r.renderItem(t, in))
	}

	r.countAll.Text = fmt.Sprintf("%d total", in.Counts.Total)
	r.countOpen.Text = fmt.Sprintf("%d open", in.Counts.Open)
	r.countDone.Text = fmt.Sprintf("%d done", in.Counts.Done)

	for f, chip := range r.chips {
		active := f == in.Filter
		chip.ToggleClass("is-active", active)
		chip.SetAttr("aria-pressed", fmt.Sprint(active))
	}

	r.search.Clear()
	if in.Searching || in.Query != "" {
		r.search.Append(surface.NewText("p", "search", "/"+in.Query))
	}

	r.empty.Clear()
	if len(in.Tasks) == 0 {
		r.empty.Append(surface.NewText("p", "empty", emptyText(in)))
	}
}

func emptyText(in RenderInput) string {
	if in.Query != "" {
		return fmt.Sprintf("No tasks match %q.", in.Query)
	}
	switch in.Filter {
	case data.FilterOpen:
		return "Nothing open."
	case data.FilterDone:
		return "Nothing completed yet."
	}
	return "No tasks yet. Press n to add one."
}

func (r *Renderer) renderItem(t data.Task, in RenderInput) *surface.Element {
	id := t.ID
	li := surface.New("row", drag.RowClass)
	li.SetAttr(drag.IDAttr, id)
	li.SetAttr(drag.GrabbedAttr, "false")
	li.ToggleClass("is-done", t.Done)
	li.On(surface.Click, func(surface.Signal) bool {
		r.actions.Select(id)
		return true
	})

	handle := surface.NewText("span", "task__drag", "⋮⋮")
	handle.SetAttr("title", "Drag to reorder")
	begin := func(s surface.Signal) bool { return r.actions.BeginDrag(s) }
	handle.On(surface.DragStart, begin)
	handle.On(surface.PointerDown, begin)

	check := surface.NewText("input", "task__check", "[ ]")
	check.SetAttr("checked", "false")
	if t.Done {
		check.Text = "[x]"
		check.SetAttr("checked", "true")
	}
	check.On(surface.Click, func(surface.Signal) bool {
		r.actions.Toggle(id)
		return true
	})

	actions := surface.New("row", "task__actions")
	var title *surface.Element
	if in.EditingID == id {
		title = surface.NewText("input", "edit", in.EditText)
		save := surface.NewText("button", "icon-btn save", "Save")
		save.On(surface.Click, func(surface.Signal) bool {
			r.actions.CommitEdit()
			return true
		})
		cancel := surface.NewText("button", "icon-btn cancel", "Cancel")
		cancel.On(surface.Click, func(surface.Signal) bool {
			r.actions.CancelEdit()
			return true
		})
		actions.Append(save, cancel)
	} else {
		title = surface.NewText("span", "task__title", t.Text)
		title.ToggleClass("is-done", t.Done)
		edit := surface.NewText("button", "icon-btn rename", "Edit")
		edit.On(surface.Click, func(surface.Signal) bool {
			r.actions.StartEdit(id)
			return true
		})
		del := surface.NewText("button", "icon-btn delete", "Delete")
		del.On(surface.Click, func(surface.Signal) bool {
			r.actions.Delete(id)
			return true
		})
		actions.Append(edit, del)
	}
	title.Width = surface.Fill

	li.Append(handle, check, title, actions)
	return li
}
