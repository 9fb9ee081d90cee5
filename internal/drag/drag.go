// Package drag reorders the rendered task rows by direct manipulation and
// commits the resulting display order to the task store.
package drag

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"listo/internal/logs"
	"listo/internal/surface"
)

// Class and attribute names shared with the renderer.
const (
	RowClass      = "task"
	DraggingClass = "is-dragging"
	IDAttr        = "data-id"
	GrabbedAttr   = "aria-grabbed"
)

// Modality is the pointer style a device reports.
type Modality int

const (
	// Fine pointers (mouse) emit native drag signals.
	Fine Modality = iota
	// Coarse pointers (touch) emit track-attributed pointer signals.
	Coarse
)

func (m Modality) String() string {
	if m == Coarse {
		return "coarse"
	}
	return "fine"
}

func ParseModality(s string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fine":
		return Fine, nil
	case "coarse":
		return Coarse, nil
	}
	return Fine, fmt.Errorf("unknown pointer modality %q", s)
}

// Device is an input source able to drive a drag.
type Device int

const (
	DevicePointer Device = iota
	DeviceKeyboard
)

// Track numbers for track-attributed input.
const (
	TrackMouse    = 1
	TrackKeyboard = 2
)

// Reorderer persists a new task order.
type Reorderer interface {
	Reorder(ids []string) error
}

// Result reports what a signal did to the drag.
type Result int

const (
	Ignored Result = iota
	Started
	Moved
	Committed
	// Unchanged ends a gesture that left the order as it was; nothing is written.
	Unchanged
)

// Session is the one in-flight drag.
type Session struct {
	TaskID string
	Device Device
	Track  int
	// Y is the last pointer position in fractional rows.
	Y float64

	row     int
	heading int
	start   []string
}

// Controller owns at most one drag session over a list region.
type Controller struct {
	list       *surface.Element
	store      Reorderer
	strategies map[Device]Strategy
	session    *Session
	dragging   *surface.Element
}

// NewController drives rows under list. The pointer device uses the strategy
// matching its modality; the keyboard always drives a tracked session.
func NewController(list *surface.Element, store Reorderer, pointer Modality) *Controller {
	c := &Controller{
		list:  list,
		store: store,
		strategies: map[Device]Strategy{
			DeviceKeyboard: TrackedStrategy{},
		},
	}
	c.SetModality(pointer)
	return c
}

// SetModality swaps the pointer strategy. An active pointer session keeps running.
func (c *Controller) SetModality(m Modality) {
	if m == Coarse {
		c.strategies[DevicePointer] = TrackedStrategy{}
	} else {
		c.strategies[DevicePointer] = NativeStrategy{}
	}
}

// SetList points the controller at a (re)built list region.
func (c *Controller) SetList(list *surface.Element) {
	c.list = list
}

func (c *Controller) Active() bool { return c.session != nil }

// Session returns a copy of the active session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Handle routes a device signal through that device's strategy. Signals from
// any device other than the one that started the session are ignored.
func (c *Controller) Handle(dev Device, s surface.Signal) (Result, error) {
	st, ok := c.strategies[dev]
	if !ok {
		return Ignored, nil
	}
	if c.session != nil && c.session.Device != dev {
		return Ignored, nil
	}
	return st.Handle(c, dev, s)
}

// Begins reports whether a signal of kind from dev would start a session.
func (c *Controller) Begins(dev Device, kind surface.SignalKind) bool {
	if c.session != nil {
		return false
	}
	st, ok := c.strategies[dev]
	return ok && st.Begins(kind)
}

func (c *Controller) owns(track int) bool {
	return c.session != nil && c.session.Track == track
}

func (c *Controller) begin(dev Device, track int, s surface.Signal) Result {
	if c.session != nil || s.Target == nil {
		return Ignored
	}
	row := s.Target.Closest(RowClass)
	if row == nil {
		return Ignored
	}
	id := row.Attr(IDAttr)
	el := c.rowByID(id)
	if el == nil {
		return Ignored
	}
	el.AddClass(DraggingClass)
	el.SetAttr(GrabbedAttr, "true")
	c.dragging = el
	c.session = &Session{TaskID: id, Device: dev, Track: track, Y: float64(s.Y) + 0.5, row: s.Y, start: DisplayOrder(c.list)}
	logs.Logger.Printf("drag: begin %s device=%d track=%d", id, dev, track)
	return Started
}

func (c *Controller) move(y int) Result {
	if c.session == nil || c.dragging == nil {
		return Ignored
	}
	py := c.pointerY(y)
	ref := InsertionPoint(c.list, py)
	if ref == nil {
		c.list.Append(c.dragging)
	} else {
		c.list.InsertBefore(c.dragging, ref)
	}
	c.list.Reflow()
	return Moved
}

// pointerY converts a cell row to a fractional position biased toward the
// direction of travel, so entering a neighbour's row is enough to pass it.
func (c *Controller) pointerY(y int) float64 {
	s := c.session
	switch {
	case y > s.row:
		s.heading = 1
	case y < s.row:
		s.heading = -1
	}
	s.row = y
	frac := 0.5
	switch s.heading {
	case 1:
		frac = 0.75
	case -1:
		frac = 0.25
	}
	s.Y = float64(y) + frac
	return s.Y
}

func (c *Controller) end() (Result, error) {
	if c.session == nil {
		return Ignored, nil
	}
	order := DisplayOrder(c.list)
	if c.dragging != nil {
		c.dragging.RemoveClass(DraggingClass)
		c.dragging.SetAttr(GrabbedAttr, "false")
	}
	id, start := c.session.TaskID, c.session.start
	c.session, c.dragging = nil, nil
	if slices.Equal(order, start) {
		logs.Logger.Printf("drag: %s dropped in place", id)
		return Unchanged, nil
	}
	logs.Logger.Printf("drag: commit %s order=%v", id, order)
	if err := c.store.Reorder(order); err != nil {
		return Committed, fmt.Errorf("commit drag of %s: %w", id, err)
	}
	return Committed, nil
}

// Abort drops the session without committing and clears the dragging mark.
func (c *Controller) Abort() {
	if c.dragging != nil {
		c.dragging.RemoveClass(DraggingClass)
		c.dragging.SetAttr(GrabbedAttr, "false")
	}
	c.session, c.dragging = nil, nil
}

func (c *Controller) rowByID(id string) *surface.Element {
	if id == "" || c.list == nil {
		return nil
	}
	for _, el := range c.list.Children() {
		if el.HasClass(RowClass) && el.Attr(IDAttr) == id {
			return el
		}
	}
	return nil
}

// StepY returns the row a keyboard-driven move should report to pass the
// neighbouring row in direction dir (>0 down, <0 up). It reports false at
// either end of the list or with no active session.
func (c *Controller) StepY(dir int) (int, bool) {
	if c.dragging == nil {
		return 0, false
	}
	rows := c.list.Children()
	at := -1
	for i, el := range rows {
		if el == c.dragging {
			at = i
			break
		}
	}
	if at < 0 {
		return 0, false
	}
	if dir > 0 {
		for _, el := range rows[at+1:] {
			if el.HasClass(RowClass) {
				b := el.Box()
				return b.Y + max(b.H, 1) - 1, true
			}
		}
		return 0, false
	}
	for i := at - 1; i >= 0; i-- {
		if rows[i].HasClass(RowClass) {
			return rows[i].Box().Y, true
		}
	}
	return 0, false
}

// InsertionPoint returns the row the dragged row should be placed before for
// a pointer at y, or nil to append. Among rows not being dragged it picks the
// one whose midpoint is below y by the smallest distance; ties go to the
// topmost row.
func InsertionPoint(list *surface.Element, y float64) *surface.Element {
	var best *surface.Element
	bestOffset := math.Inf(-1)
	for _, el := range list.Children() {
		if !el.HasClass(RowClass) || el.HasClass(DraggingClass) {
			continue
		}
		box := el.Box()
		offset := y - box.MidY()
		if offset >= 0 {
			continue
		}
		if offset > bestOffset || (offset == bestOffset && box.Y < best.Box().Y) {
			best, bestOffset = el, offset
		}
	}
	return best
}

// DisplayOrder lists the task IDs of the rows under list, top to bottom.
func DisplayOrder(list *surface.Element) []string {
	var ids []string
	for _, el := range list.Children() {
		if el.HasClass(RowClass) {
			ids = append(ids, el.Attr(IDAttr))
		}
	}
	return ids
}
