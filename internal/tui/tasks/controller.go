package tasks

import (
	"listo/internal/drag"
	"listo/internal/logs"
	"listo/internal/surface"
	"listo/internal/tasks/data"
	"listo/internal/tasks/service"
)

// FormRequest is a pending request from the display for the new-task form.
type FormRequest int

const (
	FormNone FormRequest = iota
	FormFocus
	FormSubmit
)

// Controller owns the task list state: the store, view filter and search
// query, the drag controller, the edit session and the display tree. Every
// mutation goes through the store and ends in a full re-render.
type Controller struct {
	store     service.TaskService
	renderer  *Renderer
	drag      *drag.Controller
	announcer Announcer
	modality  drag.Modality

	filter    data.Filter
	query     string
	searching bool
	edit      *EditSession
	visible   []data.Task
	selected  string
	selIndex  int
	form      FormRequest
	width     int
}

func NewController(store service.TaskService, pointer drag.Modality) *Controller {
	c := &Controller{store: store, modality: pointer, width: 80}
	c.renderer = NewRenderer(c)
	c.announcer = NewLiveRegion(c.renderer.Live())
	c.drag = drag.NewController(c.renderer.List(), store, pointer)
	c.Render()
	return c
}

// SetAnnouncer replaces the default live region.
func (c *Controller) SetAnnouncer(a Announcer) {
	c.announcer = a
}

func (c *Controller) Root() *surface.Element { return c.renderer.Root() }
func (c *Controller) Filter() data.Filter     { return c.filter }
func (c *Controller) Query() string           { return c.query }
func (c *Controller) Visible() []data.Task    { return c.visible }
func (c *Controller) Selected() string        { return c.selected }

// SelectedTask resolves the cursor through the store.
func (c *Controller) SelectedTask() (data.Task, bool) {
	if c.selected == "" {
		return data.Task{}, false
	}
	return c.store.Get(c.selected)
}
func (c *Controller) Modality() drag.Modality { return c.modality }

// Status is the current live region text.
func (c *Controller) Status() string { return c.renderer.Live().Text }

func (c *Controller) Editing() (*EditSession, bool) {
	return c.edit, c.edit != nil
}

// Dragging reports whether a drag session is active and which device owns it.
func (c *Controller) Dragging() (drag.Device, bool) {
	s, ok := c.drag.Session()
	return s.Device, ok
}

// SetWidth lays the tree out again at the new width.
func (c *Controller) SetWidth(w int) {
	if w <= 0 {
		return
	}
	c.width = w
	c.Layout()
}

func (c *Controller) Layout() {
	c.renderer.Root().Layout(0, 0, c.width)
}

// Render rebuilds the task region from the store and lays the tree out.
func (c *Controller) Render() {
	if c.drag.Active() {
		logs.Logger.Printf("render during drag, dropping the gesture")
		c.drag.Abort()
	}
	all := c.store.List()
	c.visible = data.Search(data.Visible(all, c.filter), c.query)

	in := RenderInput{
		Tasks:     c.visible,
		Counts:    data.Count(all),
		Filter:    c.filter,
		Query:     c.query,
		Searching: c.searching,
	}
	if c.edit != nil {
		in.EditingID = c.edit.TaskID
		in.EditText = c.edit.Text()
	}
	c.renderer.Render(in)
	c.syncSelection()
	c.Layout()
}

// refresh drops any open edit and re-renders; every mutation ends here.
func (c *Controller) refresh() {
	c.edit = nil
	c.Render()
}

func (c *Controller) announce(msg string) {
	c.announcer.Announce(msg)
}

func (c *Controller) fail(op string, err error) {
	logs.Logger.Printf("Error %s: %v", op, err)
	c.announce(MsgSaveFailed)
}

// AddTask appends a task from the new-task form. It reports whether a task
// was created; blank text is ignored.
func (c *Controller) AddTask(text string) bool {
	t, ok, err := c.store.Add(text)
	if err != nil {
		c.fail("adding task", err)
		c.refresh()
		return false
	}
	if !ok {
		return false
	}
	c.announce(MsgAdded)
	c.selected = t.ID
	c.refresh()
	return true
}

func (c *Controller) Toggle(id string) {
	t, ok, err := c.store.Toggle(id)
	switch {
	case err != nil:
		c.fail("toggling task", err)
	case ok && t.Done:
		c.announce(MsgComplete)
	case ok:
		c.announce(MsgOpen)
	}
	c.refresh()
}

func (c *Controller) Delete(id string) {
	ok, err := c.store.Remove(id)
	switch {
	case err != nil:
		c.fail("deleting task", err)
	case ok:
		c.announce(MsgDeleted)
	}
	c.refresh()
}

func (c *Controller) ClearCompleted() {
	had, err := c.store.RemoveCompleted()
	switch {
	case err != nil:
		c.fail("clearing completed", err)
	case had:
		c.announce(MsgCleared)
	}
	c.refresh()
}

func (c *Controller) SetFilter(f data.Filter) {
	c.filter = f
	c.refresh()
}

// SetSearch sets the search box state and query.
func (c *Controller) SetSearch(active bool, query string) {
	c.searching = active
	c.query = query
	c.refresh()
}

// Reload re-reads the store from its backing blob.
func (c *Controller) Reload() {
	if c.drag.Active() {
		return
	}
	c.store.Load()
	c.announce(MsgReloaded)
	c.refresh()
}

// StartEdit opens the inline editor on id. It is refused while a drag is in
// progress or when id does not resolve.
func (c *Controller) StartEdit(id string) bool {
	if c.drag.Active() {
		logs.Logger.Printf("edit of %s refused during drag", id)
		return false
	}
	t, ok := c.store.Get(id)
	if !ok {
		return false
	}
	c.edit = newEditSession(t)
	c.selected = id
	c.Render()
	if el := c.renderer.List().Find(func(e *surface.Element) bool { return e.HasClass("edit") }); el != nil {
		c.edit.Input.Width = max(el.Box().W-1, 1)
	}
	return true
}

// CommitEdit writes the trimmed working text back. Blank text discards the
// edit without touching the task.
func (c *Controller) CommitEdit() {
	if c.edit == nil {
		return
	}
	id, text := c.edit.TaskID, c.edit.Trimmed()
	c.edit = nil
	if text != "" {
		ok, err := c.store.SetText(id, text)
		switch {
		case err != nil:
			c.fail("editing task", err)
		case ok:
			logs.Logger.Printf("edit committed for %s", id)
			c.announce(MsgEdited)
		}
	}
	c.Render()
}

func (c *Controller) CancelEdit() {
	if c.edit == nil {
		return
	}
	c.edit = nil
	c.Render()
}

// SyncEdit mirrors the working edit text into the display tree without
// rebuilding it.
func (c *Controller) SyncEdit() {
	if c.edit == nil {
		return
	}
	if el := c.renderer.List().Find(func(e *surface.Element) bool { return e.HasClass("edit") }); el != nil {
		el.Text = c.edit.Text()
	}
}

// Select moves the cursor to id.
func (c *Controller) Select(id string) {
	if i := data.IndexOf(c.visible, id); i >= 0 {
		c.selected, c.selIndex = id, i
	}
}

func (c *Controller) MoveCursor(delta int) {
	if len(c.visible) == 0 {
		return
	}
	i := min(max(c.selIndex+delta, 0), len(c.visible)-1)
	c.selected, c.selIndex = c.visible[i].ID, i
}

func (c *Controller) syncSelection() {
	if len(c.visible) == 0 {
		c.selected, c.selIndex = "", 0
		return
	}
	if i := data.IndexOf(c.visible, c.selected); i >= 0 {
		c.selIndex = i
		return
	}
	c.selIndex = min(max(c.selIndex, 0), len(c.visible)-1)
	c.selected = c.visible[c.selIndex].ID
}

// RequestForm records a click on the new-task form for the view to act on.
func (c *Controller) RequestForm(submit bool) {
	c.form = FormFocus
	if submit {
		c.form = FormSubmit
	}
}

// TakeFormRequest returns and clears the pending form request.
func (c *Controller) TakeFormRequest() FormRequest {
	r := c.form
	c.form = FormNone
	return r
}

// BeginDrag starts a pointer drag from a handle signal. An open edit is
// cancelled first.
func (c *Controller) BeginDrag(s surface.Signal) bool {
	return c.beginDrag(drag.DevicePointer, s)
}

func (c *Controller) beginDrag(dev drag.Device, s surface.Signal) bool {
	if !c.drag.Begins(dev, s.Kind) {
		return false
	}
	if c.edit != nil {
		c.CancelEdit()
	}
	res, _ := c.drag.Handle(dev, s)
	return res == drag.Started
}

func (c *Controller) finishDrag(res drag.Result, err error) {
	switch {
	case res == drag.Unchanged:
	case res != drag.Committed:
		return
	case err != nil:
		c.fail("reordering", err)
	default:
		c.announce(MsgReordered)
	}
	c.refresh()
}

// PointerPress handles a mouse button press at a cell. A press on a drag
// handle starts a drag; anything else is a click.
func (c *Controller) PointerPress(x, y int) {
	if c.drag.Active() {
		return
	}
	kind := surface.DragStart
	if c.modality == drag.Coarse {
		kind = surface.PointerDown
	}
	s := surface.Signal{Kind: kind, X: x, Y: y, Track: drag.TrackMouse}
	if surface.Dispatch(c.Root(), s) {
		return
	}
	s.Kind = surface.Click
	surface.Dispatch(c.Root(), s)
}

// PointerMotion feeds mouse motion to an active pointer drag.
func (c *Controller) PointerMotion(x, y int) {
	if dev, ok := c.Dragging(); !ok || dev != drag.DevicePointer {
		return
	}
	kind := surface.DragOver
	if c.modality == drag.Coarse {
		kind = surface.PointerMove
	}
	c.drag.Handle(drag.DevicePointer, surface.Signal{Kind: kind, X: x, Y: y, Track: drag.TrackMouse})
}

// PointerRelease ends an active pointer drag wherever the button comes up.
func (c *Controller) PointerRelease(x, y int) {
	if dev, ok := c.Dragging(); !ok || dev != drag.DevicePointer {
		return
	}
	kind := surface.PointerUp
	if c.modality == drag.Fine {
		kind = surface.DragEnd
		if c.renderer.List().Box().Contains(x, y) {
			kind = surface.Drop
		}
	}
	res, err := c.drag.Handle(drag.DevicePointer, surface.Signal{Kind: kind, X: x, Y: y, Track: drag.TrackMouse})
	c.finishDrag(res, err)
}

// Grab picks up the selected row for keyboard reordering.
func (c *Controller) Grab() bool {
	if c.selected == "" || c.drag.Active() {
		return false
	}
	if c.edit != nil {
		c.CancelEdit()
	}
	row := c.renderer.List().ByAttr(drag.IDAttr, c.selected)
	if row == nil {
		return false
	}
	s := surface.Signal{Kind: surface.PointerDown, Track: drag.TrackKeyboard, X: row.Box().X, Y: row.Box().Y, Target: row}
	res, _ := c.drag.Handle(drag.DeviceKeyboard, s)
	return res == drag.Started
}

// Step moves a keyboard-held row one place up (dir < 0) or down (dir > 0).
func (c *Controller) Step(dir int) {
	if dev, ok := c.Dragging(); !ok || dev != drag.DeviceKeyboard {
		return
	}
	y, ok := c.drag.StepY(dir)
	if !ok {
		return
	}
	c.drag.Handle(drag.DeviceKeyboard, surface.Signal{Kind: surface.PointerMove, Track: drag.TrackKeyboard, Y: y})
}

// Release drops a keyboard-held row where it is and commits the order.
func (c *Controller) Release() {
	res, err := c.drag.Handle(drag.DeviceKeyboard, surface.Signal{Kind: surface.PointerUp, Track: drag.TrackKeyboard})
	c.finishDrag(res, err)
}

// Announce shows msg in the live region.
func (c *Controller) Announce(msg string) {
	c.announce(msg)
}
