package service

import (
	"errors"
	"fmt"
	"strings"

	"listo/internal/logs"
	"listo/internal/storage"
	"listo/internal/tasks/data"
)

// StorageKey addresses the persisted collection inside the blob store.
const StorageKey = "todo_tasks_v1"

var ErrNotFound = errors.New("task not found")

// TaskService defines the task operations the UI and CLI depend on.
type TaskService interface {
	Load()
	List() []data.Task
	IDs() []string
	Get(id string) (data.Task, bool)
	Add(text string) (data.Task, bool, error)
	Toggle(id string) (data.Task, bool, error)
	SetText(id, text string) (bool, error)
	Remove(id string) (bool, error)
	RemoveCompleted() (bool, error)
	Reorder(ids []string) error
}

// Store owns the ordered task collection and writes it through to a blob
// store after every mutation.
type Store struct {
	blobs storage.BlobStore
	key   string
	tasks []data.Task
}

// NewStore loads the collection from blobs.
func NewStore(blobs storage.BlobStore) *Store {
	s := &Store{blobs: blobs, key: StorageKey}
	s.Load()
	return s
}

// Load replaces the in-memory collection with the persisted one. Any read
// problem resets to an empty collection.
func (s *Store) Load() {
	blob, ok, err := s.blobs.Get(s.key)
	switch {
	case err != nil:
		logs.Logger.Printf("Error reading %s, starting empty: %v", s.key, err)
		s.tasks = []data.Task{}
	case !ok:
		s.tasks = []data.Task{}
	default:
		s.tasks = data.Decode(blob)
	}
	logs.Logger.Printf("Loaded %d tasks", len(s.tasks))
}

func (s *Store) List() []data.Task {
	return append([]data.Task(nil), s.tasks...)
}

func (s *Store) IDs() []string {
	out := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.ID
	}
	return out
}

func (s *Store) Get(id string) (data.Task, bool) {
	if i := data.IndexOf(s.tasks, id); i >= 0 {
		return s.tasks[i], true
	}
	return data.Task{}, false
}

// Add appends a new open task. Blank text is a silent no-op.
func (s *Store) Add(text string) (data.Task, bool, error) {
	task, ok := data.NewTask(text)
	if !ok {
		return data.Task{}, false, nil
	}
	next := append(s.List(), task)
	if err := s.commit(next); err != nil {
		return data.Task{}, false, err
	}
	logs.Logger.Printf("Service: Add Task: %s", task.ID)
	return task, true, nil
}

// Toggle flips completion and returns the updated task.
func (s *Store) Toggle(id string) (data.Task, bool, error) {
	i := data.IndexOf(s.tasks, id)
	if i < 0 {
		return data.Task{}, false, nil
	}
	next := s.List()
	next[i].Done = !next[i].Done
	if err := s.commit(next); err != nil {
		return data.Task{}, false, err
	}
	logs.Logger.Printf("Service: Toggle Task: %s done=%t", id, next[i].Done)
	return next[i], true, nil
}

// SetText replaces a task's text. Blank text or an unknown id is a no-op.
func (s *Store) SetText(id, text string) (bool, error) {
	text = strings.TrimSpace(text)
	i := data.IndexOf(s.tasks, id)
	if text == "" || i < 0 {
		return false, nil
	}
	next := s.List()
	next[i].Text = text
	if err := s.commit(next); err != nil {
		return false, err
	}
	logs.Logger.Printf("Service: Edit Task: %s", id)
	return true, nil
}

func (s *Store) Remove(id string) (bool, error) {
	if data.IndexOf(s.tasks, id) < 0 {
		return false, nil
	}
	if err := s.commit(data.DeleteTask(s.tasks, id)); err != nil {
		return false, err
	}
	logs.Logger.Printf("Service: Delete Task: %s", id)
	return true, nil
}

// RemoveCompleted deletes every done task and reports whether any existed.
func (s *Store) RemoveCompleted() (bool, error) {
	next, removed := data.DeleteDone(s.tasks)
	if err := s.commit(next); err != nil {
		return false, err
	}
	if removed {
		logs.Logger.Printf("Service: Cleared %d completed tasks", len(s.tasks)-len(next))
	}
	return removed, nil
}

// Reorder arranges the collection to follow ids; see data.ReorderTasks.
func (s *Store) Reorder(ids []string) error {
	if err := s.commit(data.ReorderTasks(s.tasks, ids)); err != nil {
		return err
	}
	logs.Logger.Printf("Service: Reorder: %d ids applied", len(ids))
	return nil
}

// commit persists next and only then makes it the current collection, so a
// failed write never leaves memory and storage disagreeing.
func (s *Store) commit(next []data.Task) error {
	blob, err := data.Encode(next)
	if err != nil {
		return err
	}
	if err := s.blobs.Set(s.key, blob); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	s.tasks = next
	return nil
}

// Resolve finds a task by full id or by unique id prefix.
func (s *Store) Resolve(idOrPrefix string) (data.Task, error) {
	if t, ok := s.Get(idOrPrefix); ok {
		return t, nil
	}
	var found []data.Task
	for _, t := range s.tasks {
		if idOrPrefix != "" && strings.HasPrefix(t.ID, idOrPrefix) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return data.Task{}, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return found[0], nil
	default:
		return data.Task{}, fmt.Errorf("ambiguous id prefix %q matches %d tasks", idOrPrefix, len(found))
	}
}
