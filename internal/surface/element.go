// Package surface is the display tree the task list renders into: elements
// with classes, attributes and text, laid out in terminal cells, with
// DOM-style signal bubbling for clicks, pointer and drag input.
package surface

import (
	"slices"
	"strings"
)

// Fill as an element Width takes whatever a row has left.
const Fill = -1

// Element is one node of the display tree.
type Element struct {
	Tag  string
	Text string
	// Width is the preferred cell width: >0 fixed, 0 natural, Fill for the remainder of a row.
	Width int
	// Height overrides the computed height when >0.
	Height int

	classes  []string
	attrs    map[string]string
	parent   *Element
	children []*Element
	handlers map[SignalKind][]Handler
	box      Rect
}

// New creates a detached element.
func New(tag string, classes ...string) *Element {
	e := &Element{Tag: tag}
	for _, c := range classes {
		e.AddClass(c)
	}
	return e
}

// NewText creates a detached leaf element holding text.
func NewText(tag, class, text string) *Element {
	e := New(tag, class)
	e.Text = text
	return e
}

func (e *Element) Class() string { return strings.Join(e.classes, " ") }

func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

func (e *Element) AddClass(classes ...string) {
	for _, class := range classes {
		for _, c := range strings.Fields(class) {
			if !e.HasClass(c) {
				e.classes = append(e.classes, c)
			}
		}
	}
}

func (e *Element) RemoveClass(class string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == class })
}

// ToggleClass adds class when on is true and removes it otherwise.
func (e *Element) ToggleClass(class string, on bool) {
	if on {
		e.AddClass(class)
	} else {
		e.RemoveClass(class)
	}
}

func (e *Element) Attr(key string) string {
	return e.attrs[key]
}

func (e *Element) SetAttr(key, value string) {
	if e.attrs == nil {
		e.attrs = map[string]string{}
	}
	e.attrs[key] = value
}

func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Append adds children at the end, detaching each from any previous parent.
func (e *Element) Append(children ...*Element) {
	for _, c := range children {
		c.detach()
		c.parent = e
		e.children = append(e.children, c)
	}
}

// InsertBefore moves child directly in front of ref. A nil ref, or one that
// is not a child of e, appends.
func (e *Element) InsertBefore(child, ref *Element) {
	if ref == child {
		return
	}
	if ref == nil || ref.parent != e {
		e.Append(child)
		return
	}
	child.detach()
	i := slices.Index(e.children, ref)
	child.parent = e
	e.children = slices.Insert(e.children, i, child)
}

// Remove detaches child from e and reports whether it was a child.
func (e *Element) Remove(child *Element) bool {
	if child == nil || child.parent != e {
		return false
	}
	child.detach()
	return true
}

// Clear removes every child.
func (e *Element) Clear() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

func (e *Element) detach() {
	if e.parent == nil {
		return
	}
	p := e.parent
	p.children = slices.DeleteFunc(p.children, func(c *Element) bool { return c == e })
	e.parent = nil
}

// Walk visits e and its descendants depth first until fn returns false.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first element in document order matching pred.
func (e *Element) Find(pred func(*Element) bool) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if pred(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindAll returns every element in document order matching pred.
func (e *Element) FindAll(pred func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(el *Element) bool {
		if pred(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

func (e *Element) ByClass(class string) []*Element {
	return e.FindAll(func(el *Element) bool { return el.HasClass(class) })
}

// ByAttr returns the first descendant (or e) whose attribute key equals value.
func (e *Element) ByAttr(key, value string) *Element {
	return e.Find(func(el *Element) bool { return el.attrs != nil && el.attrs[key] == value })
}

// Closest returns e or its nearest ancestor carrying class.
func (e *Element) Closest(class string) *Element {
	for el := e; el != nil; el = el.parent {
		if el.HasClass(class) {
			return el
		}
	}
	return nil
}
