package tasks

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"listo/internal/drag"
	"listo/internal/surface"
	"listo/internal/tui/theme"
)

// PaintOptions carries view state that lives outside the display tree.
type PaintOptions struct {
	Selected string
	// Live views of focused inputs; empty falls back to the element text.
	FormView   string
	EditView   string
	SearchView string
}

// Paint draws a laid-out tree line by line. Each element occupies exactly
// the cells its box describes so that screen coordinates hit-test back onto
// the same elements.
func Paint(root *surface.Element, opts PaintOptions) string {
	p := painter{opts: opts}
	return p.paint(root)
}

type painter struct {
	opts PaintOptions
	row  *surface.Element
}

func (p *painter) paint(e *surface.Element) string {
	if e.HasClass(drag.RowClass) {
		prev := p.row
		p.row = e
		defer func() { p.row = prev }()
	}

	children := e.Children()
	if len(children) == 0 {
		return fit(p.leaf(e), e.Box().W)
	}
	if e.Tag == "row" {
		parts := make([]string, 0, len(children))
		for _, c := range children {
			parts = append(parts, fit(p.paint(c), c.Box().W))
		}
		return strings.Join(parts, " ")
	}
	lines := make([]string, 0, len(children))
	for _, c := range children {
		if c.Box().H == 0 {
			continue
		}
		lines = append(lines, p.paint(c))
	}
	return strings.Join(lines, "\n")
}

func (p *painter) selected() bool {
	return p.row != nil && p.opts.Selected != "" && p.row.Attr(drag.IDAttr) == p.opts.Selected
}

func (p *painter) dragging() bool {
	return p.row != nil && p.row.HasClass(drag.DraggingClass)
}

func (p *painter) leaf(e *surface.Element) string {
	txt := strings.ReplaceAll(e.Text, "\n", " ")
	switch {
	case e.HasClass("app-title"):
		return theme.Title.Render(txt)
	case e.HasClass("prompt"):
		return theme.Prompt.Render(txt)
	case e.HasClass("task-input"):
		if p.opts.FormView != "" {
			return p.opts.FormView
		}
		return theme.Muted.Render(txt)
	case e.HasClass("chip"):
		if e.HasClass("is-active") {
			return theme.ChipActive.Render(txt)
		}
		return theme.ChipInactive.Render(txt)
	case e.HasClass("counter"):
		return theme.Counter.Render(txt)
	case e.HasClass("search"):
		if p.opts.SearchView != "" {
			return theme.Search.Render("/") + p.opts.SearchView
		}
		return theme.Search.Render(txt)
	case e.HasClass("empty"):
		return theme.Muted.Render(txt)
	case e.HasClass("live"):
		return theme.Live.Render(txt)
	case e.HasClass("task__drag"):
		switch {
		case p.dragging():
			return theme.Dragging.Render(txt)
		case p.selected():
			return theme.Cursor.Render("> ")
		}
		return theme.Handle.Render(txt)
	case e.HasClass("task__check"):
		if e.Attr("checked") == "true" {
			return theme.Ok.Render(txt)
		}
		return txt
	case e.HasClass("task__title"):
		return renderTitle(txt, p.titleStyle(e))
	case e.HasClass("edit"):
		if p.opts.EditView != "" {
			return p.opts.EditView
		}
		return theme.SelectedBg.Render(txt)
	case e.HasClass("delete"):
		return theme.ButtonDanger.Render(txt)
	case e.HasClass("save"):
		return theme.ButtonOk.Render(txt)
	case e.HasClass("icon-btn"):
		return theme.Button.Render(txt)
	}
	return txt
}

func (p *painter) titleStyle(e *surface.Element) lipgloss.Style {
	switch {
	case p.dragging():
		return theme.Dragging
	case e.HasClass("is-done"):
		return theme.Done
	case p.selected():
		return theme.Selected
	}
	return lipgloss.NewStyle()
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > w {
		s = ansi.Truncate(s, w, "…")
	}
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
