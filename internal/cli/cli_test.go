package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"listo/internal/storage"
	"listo/internal/tasks/data"
	"listo/internal/tasks/service"
)

func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"LISTO_CONFIG", "LISTO_DATA_DIR", "LISTO_BACKEND", "LISTO_POINTER", "LISTO_MOUSE"} {
		t.Setenv(k, "")
	}
	return t.TempDir()
}

func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	_, out, errOut, err := runApp(t, dir, args...)
	return out, errOut, err
}

func runApp(t *testing.T, dir string, args ...string) (*App, string, string, error) {
	t.Helper()
	app := &App{}
	cmd := newRootCmd(app)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	base := []string{"--data-dir", dir, "--config", filepath.Join(dir, "config.yaml")}
	err := app.execute(cmd, append(base, args...))
	return app, ansi.Strip(out.String()), errOut.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, errOut, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("%v failed: %v (stderr %q)", args, err, errOut)
	}
	return out
}

// stored reads the persisted collection straight from the file backend.
func stored(t *testing.T, dir string) []data.Task {
	t.Helper()
	blobs, err := storage.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	return service.NewStore(blobs).List()
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

func TestAddAndList(t *testing.T) {
	dir := isolate(t)
	out := mustRun(t, dir, "add", "Buy", "milk")
	if !strings.Contains(out, "Added: [ ] Buy milk") {
		t.Errorf("add output = %q", out)
	}
	mustRun(t, dir, "add", "Call mom")

	out = mustRun(t, dir, "list")
	if strings.Index(out, "Buy milk") > strings.Index(out, "Call mom") {
		t.Errorf("list out of order:\n%s", out)
	}
	if !strings.Contains(out, "2 total, 2 open, 0 done") {
		t.Errorf("missing counters:\n%s", out)
	}
}

func TestAddBlankFails(t *testing.T) {
	dir := isolate(t)
	_, errOut, err := run(t, dir, "add", "   ")
	if !errors.Is(err, errEmptyText) {
		t.Fatalf("expected errEmptyText, got %v", err)
	}
	if !strings.Contains(errOut, "empty") {
		t.Errorf("stderr = %q", errOut)
	}
	if len(stored(t, dir)) != 0 {
		t.Error("blank add persisted a task")
	}
}

func TestToggleFilterAndClear(t *testing.T) {
	dir := isolate(t)
	mustRun(t, dir, "add", "A")
	mustRun(t, dir, "add", "B")
	id := stored(t, dir)[0].ID

	out := mustRun(t, dir, "done", id[:6])
	if !strings.Contains(out, "Completed: A") {
		t.Errorf("toggle output = %q", out)
	}

	out = mustRun(t, dir, "list", "--filter", "open")
	if strings.Contains(out, "] A") || !strings.Contains(out, "] B") {
		t.Errorf("open filter:\n%s", out)
	}
	out = mustRun(t, dir, "list", "-f", "done")
	if !strings.Contains(out, "[x] A") {
		t.Errorf("done filter:\n%s", out)
	}

	mustRun(t, dir, "clear")
	if got := texts(stored(t, dir)); !equal(got, []string{"B"}) {
		t.Errorf("after clear: %v", got)
	}
	out = mustRun(t, dir, "clear")
	if !strings.Contains(out, "No completed tasks.") {
		t.Errorf("second clear = %q", out)
	}
}

func TestEditAndRemove(t *testing.T) {
	dir := isolate(t)
	mustRun(t, dir, "add", "old")
	id := stored(t, dir)[0].ID

	mustRun(t, dir, "edit", id, "  new", "text  ")
	if got := stored(t, dir)[0].Text; got != "new text" {
		t.Errorf("edited text = %q", got)
	}
	if _, _, err := run(t, dir, "edit", id, " "); !errors.Is(err, errEmptyText) {
		t.Errorf("blank edit err = %v", err)
	}
	if got := stored(t, dir)[0].Text; got != "new text" {
		t.Errorf("blank edit changed text to %q", got)
	}

	mustRun(t, dir, "rm", id)
	if len(stored(t, dir)) != 0 {
		t.Error("rm left the task")
	}
}

func TestUnknownID(t *testing.T) {
	dir := isolate(t)
	_, _, err := run(t, dir, "toggle", "nope")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReorderAndMove(t *testing.T) {
	dir := isolate(t)
	for _, s := range []string{"A", "B", "C"} {
		mustRun(t, dir, "add", s)
	}
	tasks := stored(t, dir)
	a, b, c := tasks[0].ID, tasks[1].ID, tasks[2].ID

	mustRun(t, dir, "reorder", c, a)
	if got := texts(stored(t, dir)); !equal(got, []string{"C", "A", "B"}) {
		t.Errorf("after reorder: %v", got)
	}

	mustRun(t, dir, "move", c, "--after", b)
	if got := texts(stored(t, dir)); !equal(got, []string{"A", "B", "C"}) {
		t.Errorf("after move --after: %v", got)
	}
	mustRun(t, dir, "move", c, "--before", a)
	if got := texts(stored(t, dir)); !equal(got, []string{"C", "A", "B"}) {
		t.Errorf("after move --before: %v", got)
	}

	if _, _, err := run(t, dir, "move", a); err == nil {
		t.Error("move without --before/--after should fail")
	}
}

func TestRootPrintsListWhenNotATerminal(t *testing.T) {
	dir := isolate(t)
	mustRun(t, dir, "add", "piped")
	out := mustRun(t, dir)
	if !strings.Contains(out, "piped") {
		t.Errorf("root output = %q", out)
	}
}

func TestSQLiteBackend(t *testing.T) {
	dir := isolate(t)
	mustRun(t, dir, "--backend", "sqlite", "add", "in sqlite")
	out := mustRun(t, dir, "--backend", "sqlite", "list")
	if !strings.Contains(out, "in sqlite") {
		t.Errorf("sqlite list = %q", out)
	}
	if len(stored(t, dir)) != 0 {
		t.Error("sqlite add should not touch the file backend")
	}
}

func TestBadBackendRejected(t *testing.T) {
	dir := isolate(t)
	if _, _, err := run(t, dir, "--backend", "redis", "list"); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestFailingCommandReleasesStore(t *testing.T) {
	dir := isolate(t)
	for _, args := range [][]string{
		{"--backend", "sqlite", "toggle", "nope"},
		{"--backend", "sqlite", "add", " "},
		{"rm", "nope"},
	} {
		app, _, _, err := runApp(t, dir, args...)
		if err == nil {
			t.Errorf("%v: expected error", args)
		}
		if app.blobs != nil {
			t.Errorf("%v: store left open", args)
		}
	}
	// A later run can still open the same database.
	mustRun(t, dir, "--backend", "sqlite", "add", "after")
}
