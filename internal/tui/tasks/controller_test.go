package tasks

import (
	"errors"
	"strings"
	"testing"

	"listo/internal/drag"
	"listo/internal/storage"
	"listo/internal/surface"
	"listo/internal/tasks/data"
	"listo/internal/tasks/service"
)

var errFake = errors.New("fake")

type flakyBlobs struct {
	*storage.MemoryStore
	fail   bool
	writes int
}

func (f *flakyBlobs) Set(key string, blob []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.writes++
	return f.MemoryStore.Set(key, blob)
}

func newController(t *testing.T, modality drag.Modality, texts ...string) (*Controller, *service.Store) {
	t.Helper()
	store := service.NewStore(storage.NewMemoryStore())
	for _, s := range texts {
		if _, _, err := store.Add(s); err != nil {
			t.Fatal(err)
		}
	}
	c := NewController(store, modality)
	c.SetWidth(60)
	return c, store
}

func texts(tasks []data.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}

func equal(a, b []string) bool {
	return strings.Join(a, "|") == strings.Join(b, "|")
}

func rowOf(c *Controller, id string) *surface.Element {
	return c.renderer.List().ByAttr(drag.IDAttr, id)
}

func part(c *Controller, id, class string) *surface.Element {
	row := rowOf(c, id)
	if row == nil {
		return nil
	}
	return row.Find(func(e *surface.Element) bool { return e.HasClass(class) })
}

func click(t *testing.T, c *Controller, el *surface.Element) {
	t.Helper()
	if el == nil {
		t.Fatal("nothing to click")
	}
	b := el.Box()
	c.PointerPress(b.X, b.Y)
}

func idOf(store *service.Store, text string) string {
	for _, t := range store.List() {
		if t.Text == text {
			return t.ID
		}
	}
	return ""
}

func TestRenderIsIdempotent(t *testing.T) {
	c, _ := newController(t, drag.Fine, "A", "B", "C")
	c.Render()
	first := Paint(c.Root(), PaintOptions{})
	c.Render()
	second := Paint(c.Root(), PaintOptions{})
	if first != second {
		t.Errorf("render changed the tree:\n%s\n---\n%s", first, second)
	}
	if len(c.renderer.List().Children()) != 3 {
		t.Errorf("expected 3 rows, got %d", len(c.renderer.List().Children()))
	}
}

func TestCountersCoverFullCollection(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B", "C")
	c.Toggle(idOf(store, "A"))
	c.SetFilter(data.FilterDone)

	if got := texts(c.Visible()); !equal(got, []string{"A"}) {
		t.Errorf("visible = %v", got)
	}
	if c.renderer.countAll.Text != "3 total" || c.renderer.countOpen.Text != "2 open" || c.renderer.countDone.Text != "1 done" {
		t.Errorf("counters = %q %q %q", c.renderer.countAll.Text, c.renderer.countOpen.Text, c.renderer.countDone.Text)
	}
	if !c.renderer.chips[data.FilterDone].HasClass("is-active") || c.renderer.chips[data.FilterAll].HasClass("is-active") {
		t.Error("active chip not marked")
	}
}

func TestAddTask(t *testing.T) {
	c, store := newController(t, drag.Fine)
	if c.AddTask("   ") {
		t.Error("blank add should be rejected")
	}
	if c.Status() != "" {
		t.Errorf("blank add announced %q", c.Status())
	}
	if !c.AddTask("  Buy milk ") {
		t.Fatal("add failed")
	}
	if got := texts(store.List()); !equal(got, []string{"Buy milk"}) {
		t.Errorf("store = %v", got)
	}
	if c.Status() != MsgAdded {
		t.Errorf("status = %q", c.Status())
	}
	if c.Selected() != idOf(store, "Buy milk") {
		t.Error("new task should be selected")
	}
}

func TestCheckboxToggles(t *testing.T) {
	c, store := newController(t, drag.Fine, "A")
	id := idOf(store, "A")

	click(t, c, part(c, id, "task__check"))
	if got, _ := store.Get(id); !got.Done {
		t.Fatal("checkbox click did not complete the task")
	}
	if c.Status() != MsgComplete {
		t.Errorf("status = %q", c.Status())
	}
	if part(c, id, "task__check").Text != "[x]" {
		t.Error("checkbox not re-rendered")
	}

	click(t, c, part(c, id, "task__check"))
	if c.Status() != MsgOpen {
		t.Errorf("status = %q", c.Status())
	}
}

func TestDeleteButton(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B")
	click(t, c, part(c, idOf(store, "A"), "delete"))
	if got := texts(store.List()); !equal(got, []string{"B"}) {
		t.Errorf("store = %v", got)
	}
	if c.Status() != MsgDeleted {
		t.Errorf("status = %q", c.Status())
	}
}

func TestEditCommit(t *testing.T) {
	c, store := newController(t, drag.Fine, "old")
	id := idOf(store, "old")

	click(t, c, part(c, id, "rename"))
	e, ok := c.Editing()
	if !ok {
		t.Fatal("edit button did not open an editor")
	}
	if e.Text() != "old" || e.Input.Position() != len("old") {
		t.Errorf("editor text %q cursor %d", e.Text(), e.Input.Position())
	}
	if part(c, id, "save") == nil || part(c, id, "delete") != nil {
		t.Error("actions should switch to Save/Cancel")
	}

	e.Input.SetValue("  new  ")
	click(t, c, part(c, id, "save"))
	if got, _ := store.Get(id); got.Text != "new" {
		t.Errorf("text = %q", got.Text)
	}
	if _, ok := c.Editing(); ok {
		t.Error("edit session survived commit")
	}
	if c.Status() != MsgEdited {
		t.Errorf("status = %q", c.Status())
	}
}

func TestUnchangedEditKeepsLongText(t *testing.T) {
	long := strings.Repeat("x", 300)
	c, store := newController(t, drag.Fine, long)
	id := idOf(store, long)

	if !c.StartEdit(id) {
		t.Fatal("edit did not start")
	}
	if e, _ := c.Editing(); e.Text() != long {
		t.Fatalf("editor holds %d chars, want %d", len(e.Text()), len(long))
	}
	c.CommitEdit()
	if got, _ := store.Get(id); got.Text != long {
		t.Errorf("commit changed text to %d chars", len(got.Text))
	}
}

func TestEditCommitRejectsBlank(t *testing.T) {
	c, store := newController(t, drag.Fine, "keep me")
	id := idOf(store, "keep me")

	c.StartEdit(id)
	e, _ := c.Editing()
	e.Input.SetValue("   ")
	c.CommitEdit()

	if got, _ := store.Get(id); got.Text != "keep me" {
		t.Errorf("blank commit changed text to %q", got.Text)
	}
	if _, ok := c.Editing(); ok {
		t.Error("edit session survived commit")
	}
	if part(c, id, "task__title") == nil {
		t.Error("title not restored")
	}
	if c.Status() == MsgEdited {
		t.Error("blank commit should not announce")
	}
}

func TestEditCancel(t *testing.T) {
	c, store := newController(t, drag.Fine, "A")
	id := idOf(store, "A")
	c.StartEdit(id)
	e, _ := c.Editing()
	e.Input.SetValue("changed")
	click(t, c, part(c, id, "cancel"))

	if got, _ := store.Get(id); got.Text != "A" {
		t.Errorf("cancel wrote %q", got.Text)
	}
	if _, ok := c.Editing(); ok {
		t.Error("edit session survived cancel")
	}
}

func TestOnlyOneEditSession(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B")
	c.StartEdit(idOf(store, "A"))
	c.StartEdit(idOf(store, "B"))

	if edits := c.Root().ByClass("edit"); len(edits) != 1 {
		t.Fatalf("expected one edit control, got %d", len(edits))
	}
	if e, _ := c.Editing(); e.TaskID != idOf(store, "B") {
		t.Error("second edit should replace the first")
	}
}

func TestMutationDiscardsEdit(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B")
	c.StartEdit(idOf(store, "A"))
	c.Toggle(idOf(store, "B"))
	if _, ok := c.Editing(); ok {
		t.Error("re-render should tear down the edit")
	}
}

func TestStartEditRefusedDuringDrag(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B")
	click(t, c, part(c, idOf(store, "A"), "task__drag"))
	if _, ok := c.Dragging(); !ok {
		t.Fatal("press on handle did not start a drag")
	}
	if c.StartEdit(idOf(store, "B")) {
		t.Error("edit started during a drag")
	}
}

func TestDragCancelsEdit(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B")
	c.StartEdit(idOf(store, "B"))
	e, _ := c.Editing()
	e.Input.SetValue("unsaved")

	click(t, c, part(c, idOf(store, "A"), "task__drag"))
	if _, ok := c.Editing(); ok {
		t.Error("drag start should cancel the edit")
	}
	if _, ok := c.Dragging(); !ok {
		t.Error("drag did not start after cancelling the edit")
	}
	if got, _ := store.Get(idOf(store, "B")); got.Text != "B" {
		t.Errorf("cancelled edit wrote %q", got.Text)
	}
	if row := rowOf(c, idOf(store, "A")); row.Attr(drag.GrabbedAttr) != "true" {
		t.Error("dragged row not marked in the new tree")
	}
}

func dragAAfterC(t *testing.T, modality drag.Modality) []string {
	t.Helper()
	c, store := newController(t, modality, "A", "B", "C")
	handle := part(c, idOf(store, "A"), "task__drag")
	b := handle.Box()
	cy := rowOf(c, idOf(store, "C")).Box().Y

	c.PointerPress(b.X, b.Y)
	c.PointerMotion(b.X, b.Y+1)
	c.PointerMotion(b.X, cy)
	c.PointerRelease(b.X, cy)

	if _, ok := c.Dragging(); ok {
		t.Error("session survived release")
	}
	if c.Status() != MsgReordered {
		t.Errorf("status = %q", c.Status())
	}
	if got := texts(c.Visible()); !equal(got, texts(store.List())) {
		t.Errorf("display %v does not match store %v", got, texts(store.List()))
	}
	return texts(store.List())
}

func TestMouseDragBothModalities(t *testing.T) {
	fine := dragAAfterC(t, drag.Fine)
	coarse := dragAAfterC(t, drag.Coarse)
	want := []string{"B", "C", "A"}
	if !equal(fine, want) {
		t.Errorf("fine: %v", fine)
	}
	if !equal(coarse, want) {
		t.Errorf("coarse: %v", coarse)
	}
}

func TestReleaseOutsideListStillCommits(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B")
	b := part(c, idOf(store, "B"), "task__drag").Box()
	c.PointerPress(b.X, b.Y)
	c.PointerMotion(b.X, b.Y-1)
	c.PointerRelease(b.X, 40)
	if got := texts(store.List()); !equal(got, []string{"B", "A"}) {
		t.Errorf("store = %v", got)
	}
}

func TestHandleClickWritesNothing(t *testing.T) {
	for _, modality := range []drag.Modality{drag.Fine, drag.Coarse} {
		blobs := &flakyBlobs{MemoryStore: storage.NewMemoryStore()}
		store := service.NewStore(blobs)
		store.Add("A")
		store.Add("B")
		c := NewController(store, modality)
		c.SetWidth(60)
		before := blobs.writes

		b := part(c, idOf(store, "A"), "task__drag").Box()
		c.PointerPress(b.X, b.Y)
		c.PointerRelease(b.X, b.Y)

		if _, ok := c.Dragging(); ok {
			t.Errorf("%v: session survived release", modality)
		}
		if blobs.writes != before {
			t.Errorf("%v: click on handle wrote the store", modality)
		}
		if c.Status() == MsgReordered {
			t.Errorf("%v: click on handle announced a reorder", modality)
		}
		if row := rowOf(c, idOf(store, "A")); row.HasClass(drag.DraggingClass) {
			t.Errorf("%v: row still marked", modality)
		}
	}
}

func TestPressOffHandleDoesNotDrag(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B")
	click(t, c, part(c, idOf(store, "B"), "task__title"))
	if _, ok := c.Dragging(); ok {
		t.Error("title press started a drag")
	}
	if c.Selected() != idOf(store, "B") {
		t.Error("title click should select the row")
	}
}

func TestKeyboardMove(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B", "C")
	c.Select(idOf(store, "A"))
	if !c.Grab() {
		t.Fatal("grab failed")
	}
	if dev, _ := c.Dragging(); dev != drag.DeviceKeyboard {
		t.Error("grab should be a keyboard session")
	}

	// Mouse input cannot interfere with a keyboard session.
	c.PointerMotion(0, 0)
	c.PointerRelease(0, 0)

	c.Step(1)
	c.Step(1)
	c.Step(1)
	c.Release()

	if got := texts(store.List()); !equal(got, []string{"B", "C", "A"}) {
		t.Errorf("store = %v", got)
	}
	if c.Selected() != idOf(store, "A") {
		t.Error("selection should follow the moved task")
	}
}

func TestClearCompletedButton(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B")
	clearBtn := c.Root().ByClass("clear-done")[0]

	click(t, c, clearBtn)
	if c.Status() != "" {
		t.Errorf("nothing to clear, but announced %q", c.Status())
	}

	c.Toggle(idOf(store, "A"))
	click(t, c, clearBtn)
	if got := texts(store.List()); !equal(got, []string{"B"}) {
		t.Errorf("store = %v", got)
	}
	if c.Status() != MsgCleared {
		t.Errorf("status = %q", c.Status())
	}
}

func TestChipClickSetsFilter(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B")
	c.Toggle(idOf(store, "A"))
	click(t, c, c.renderer.chips[data.FilterOpen])
	if c.Filter() != data.FilterOpen {
		t.Fatalf("filter = %v", c.Filter())
	}
	if got := texts(c.Visible()); !equal(got, []string{"B"}) {
		t.Errorf("visible = %v", got)
	}
}

func TestEmptyState(t *testing.T) {
	c, _ := newController(t, drag.Fine)
	if empty := c.Root().ByClass("empty"); len(empty) != 1 {
		t.Fatal("empty list should show the empty state")
	}
	c.AddTask("A")
	if empty := c.Root().ByClass("empty"); len(empty) != 0 {
		t.Error("empty state shown next to tasks")
	}
	c.SetSearch(false, "zzz")
	if empty := c.Root().ByClass("empty"); len(empty) != 1 || !strings.Contains(empty[0].Text, "zzz") {
		t.Error("no-match state missing")
	}
}

func TestSelectionSurvivesRender(t *testing.T) {
	c, store := newController(t, drag.Fine, "A", "B", "C")
	c.MoveCursor(1)
	if c.Selected() != idOf(store, "B") {
		t.Fatal("cursor did not move")
	}
	c.Toggle(idOf(store, "A"))
	if c.Selected() != idOf(store, "B") {
		t.Error("selection lost across render")
	}
	c.Delete(idOf(store, "B"))
	if c.Selected() != idOf(store, "C") {
		t.Errorf("selection should fall to the next row, got %q", c.Selected())
	}
}

func TestStoreFailureAnnounced(t *testing.T) {
	blobs := &flakyBlobs{MemoryStore: storage.NewMemoryStore()}
	store := service.NewStore(blobs)
	c := NewController(store, drag.Fine)
	c.AddTask("A")

	blobs.fail = true
	c.Toggle(idOf(store, "A"))
	if c.Status() != MsgSaveFailed {
		t.Errorf("status = %q", c.Status())
	}
	if got, _ := store.Get(idOf(store, "A")); got.Done {
		t.Error("failed write should leave the collection unchanged")
	}
}

func TestLiveRegionKeepsLastMessage(t *testing.T) {
	c, store := newController(t, drag.Fine, "A")
	c.Toggle(idOf(store, "A"))
	c.Delete(idOf(store, "A"))
	if c.Status() != MsgDeleted {
		t.Errorf("status = %q", c.Status())
	}
	if len(c.Root().ByClass("live")) != 1 {
		t.Error("expected a single live region")
	}
}

type recordingAnnouncer struct{ msgs []string }

func (r *recordingAnnouncer) Announce(msg string) { r.msgs = append(r.msgs, msg) }

func TestCustomAnnouncer(t *testing.T) {
	c, _ := newController(t, drag.Fine)
	rec := &recordingAnnouncer{}
	c.SetAnnouncer(rec)
	c.AddTask("A")
	if len(rec.msgs) != 1 || rec.msgs[0] != MsgAdded {
		t.Errorf("announcements = %v", rec.msgs)
	}
}
