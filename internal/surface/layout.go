package surface

import "github.com/charmbracelet/x/ansi"

// Rect is a laid-out box in terminal cells.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// MidY is the vertical midpoint.
func (r Rect) MidY() float64 {
	return float64(r.Y) + float64(r.H)/2
}

// rowGap is the number of blank cells between the children of a row.
const rowGap = 1

// Containers take no space when empty; every other element is at least one line.
var containerTags = map[string]bool{
	"div": true, "ul": true, "main": true, "section": true, "row": true,
}

// Box returns the element's box from the last layout pass.
func (e *Element) Box() Rect { return e.box }

// Layout places e and its subtree with its top-left corner at (x, y) and the
// given width. Elements tagged "row" lay their children left to right; all
// others stack children top to bottom.
func (e *Element) Layout(x, y, width int) {
	e.layout(x, y, width)
}

// Reflow lays the subtree out again inside its current box origin and width.
func (e *Element) Reflow() {
	e.layout(e.box.X, e.box.Y, e.box.W)
}

func (e *Element) layout(x, y, width int) int {
	var h int
	switch {
	case len(e.children) == 0:
		h = 1
		if containerTags[e.Tag] {
			h = 0
		}
	case e.Tag == "row":
		h = e.layoutRow(x, y, width)
	default:
		cy := y
		for _, c := range e.children {
			cy += c.layout(x, cy, width)
		}
		h = cy - y
	}
	if e.Height > 0 {
		h = e.Height
	}
	e.box = Rect{X: x, Y: y, W: width, H: h}
	return h
}

func (e *Element) layoutRow(x, y, width int) int {
	widths := make([]int, len(e.children))
	used := rowGap * (len(e.children) - 1)
	fills := 0
	for i, c := range e.children {
		if c.Width == Fill {
			fills++
			continue
		}
		widths[i] = c.naturalWidth()
		used += widths[i]
	}
	if fills > 0 {
		remaining := max(width-used, fills)
		share := remaining / fills
		extra := remaining - share*fills
		for i, c := range e.children {
			if c.Width == Fill {
				widths[i] = share
				if extra > 0 {
					widths[i]++
					extra--
				}
			}
		}
	}

	cx, h := x, 0
	for i, c := range e.children {
		h = max(h, c.layout(cx, y, widths[i]))
		cx += widths[i] + rowGap
	}
	return h
}

func (e *Element) naturalWidth() int {
	if e.Width > 0 {
		return e.Width
	}
	if len(e.children) == 0 {
		return ansi.StringWidth(e.Text)
	}
	w := 0
	for i, c := range e.children {
		cw := 0
		if c.Width != Fill {
			cw = c.naturalWidth()
		}
		if e.Tag == "row" {
			if i > 0 {
				w += rowGap
			}
			w += cw
		} else {
			w = max(w, cw)
		}
	}
	return w
}

// HitTest returns the deepest element whose box contains (x, y).
func (e *Element) HitTest(x, y int) *Element {
	if !e.box.Contains(x, y) {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := e.children[i].HitTest(x, y); hit != nil {
			return hit
		}
	}
	return e
}
