package tasks

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"listo/internal/drag"
	"listo/internal/logs"
	"listo/internal/tasks/data"
	"listo/internal/tasks/service"
	"listo/internal/tui/messages"
	"listo/internal/tui/shared"
	"listo/internal/tui/theme"
)

// TaskListModel adapts keyboard and mouse input to the Controller and paints
// its display tree.
type TaskListModel struct {
	ctrl *Controller

	// Sub-components
	form   *TextInputModel
	search *TextInputModel
	help   help.Model

	// Dimensions
	width  int
	height int
}

// NewTaskListModel creates the task view over store.
func NewTaskListModel(store service.TaskService, pointer drag.Modality) TaskListModel {
	h := help.New()
	h.ShortSeparator = "  "
	return TaskListModel{
		ctrl:   NewController(store, pointer),
		form:   NewTextInput(FieldNewTask, "", "What needs doing?"),
		search: NewTextInput(FieldSearch, "", "type to filter..."),
		help:   h,
		width:  80,
	}
}

func (m *TaskListModel) Controller() *Controller { return m.ctrl }

// SetSize updates the dimensions
func (m *TaskListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.ctrl.SetWidth(width)
	m.form.SetWidth(width - 10)
	m.search.SetWidth(width - 2)
}

// Mode reports who owns the keyboard.
func (m TaskListModel) Mode() Mode {
	if dev, ok := m.ctrl.Dragging(); ok {
		if dev == drag.DeviceKeyboard {
			return ModeMove
		}
		return ModeDrag
	}
	if _, ok := m.ctrl.Editing(); ok {
		return ModeEdit
	}
	if m.form.Focused() {
		return ModeForm
	}
	if m.search.Focused() {
		return ModeSearch
	}
	return ModeNormal
}

// IsInModalState reports whether every key should reach this view.
func (m TaskListModel) IsInModalState() bool {
	return m.Mode() != ModeNormal
}

func (m TaskListModel) Update(msg tea.Msg) (TaskListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case TextInputResultMsg:
		return m.handleInputResult(msg)
	case messages.ClipboardMsg:
		if msg.Err != nil {
			logs.Logger.Printf("Error copying to clipboard: %v", msg.Err)
			m.ctrl.Announce(MsgCopyFailed)
		} else {
			m.ctrl.Announce(MsgCopied)
		}
		return m, nil
	case messages.ReloadMsg:
		m.ctrl.Reload()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		switch m.Mode() {
		case ModeMove:
			return m.handleMoveMode(msg)
		case ModeDrag:
			return m, nil
		case ModeEdit:
			return m.handleEditMode(msg)
		case ModeForm:
			return m, m.form.Update(msg)
		case ModeSearch:
			return m.handleSearchMode(msg)
		}
		return m.handleNormalMode(msg)
	}

	// Forward non-key messages (like blink) to whatever has focus
	if e, ok := m.ctrl.Editing(); ok {
		return m, e.Update(msg)
	}
	if m.form.Focused() {
		return m, m.form.Update(msg)
	}
	if m.search.Focused() {
		return m, m.search.Update(msg)
	}
	return m, nil
}

func (m TaskListModel) handleNormalMode(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	c := m.ctrl
	switch {
	case key.Matches(msg, keys.Up):
		c.MoveCursor(-1)
	case key.Matches(msg, keys.Down):
		c.MoveCursor(1)
	case key.Matches(msg, keys.Toggle):
		if id := c.Selected(); id != "" {
			c.Toggle(id)
		}
	case key.Matches(msg, keys.Edit):
		if id := c.Selected(); id != "" && c.StartEdit(id) {
			return m, textinput.Blink
		}
	case key.Matches(msg, keys.Delete):
		if id := c.Selected(); id != "" {
			c.Delete(id)
		}
	case key.Matches(msg, keys.New):
		return m, m.form.Focus()
	case key.Matches(msg, keys.NextFilter):
		c.SetFilter(c.Filter().Next())
	case key.Matches(msg, keys.FilterAll):
		c.SetFilter(data.FilterAll)
	case key.Matches(msg, keys.FilterOpen):
		c.SetFilter(data.FilterOpen)
	case key.Matches(msg, keys.FilterDone):
		c.SetFilter(data.FilterDone)
	case key.Matches(msg, keys.Clear):
		c.ClearCompleted()
	case key.Matches(msg, keys.Move):
		c.Grab()
	case key.Matches(msg, keys.Yank):
		if t, ok := c.SelectedTask(); ok {
			return m, messages.CopyToClipboard(t.Text)
		}
	case key.Matches(msg, keys.Search):
		c.SetSearch(true, m.search.Value())
		return m, m.search.Focus()
	case key.Matches(msg, keys.Reload):
		return m, messages.Reload()
	case msg.String() == "esc":
		if c.Query() != "" {
			m.search.Reset()
			c.SetSearch(false, "")
		}
	}
	return m, nil
}

func (m TaskListModel) handleMoveMode(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	switch msg.String() {
	case "k", "up":
		m.ctrl.Step(-1)
	case "j", "down":
		m.ctrl.Step(1)
	case "enter", "m", "esc", " ":
		m.ctrl.Release()
	}
	return m, nil
}

func (m TaskListModel) handleEditMode(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ctrl.CommitEdit()
		return m, nil
	case "esc":
		m.ctrl.CancelEdit()
		return m, nil
	}
	e, _ := m.ctrl.Editing()
	cmd := e.Update(msg)
	m.ctrl.SyncEdit()
	return m, cmd
}

func (m TaskListModel) handleSearchMode(msg tea.KeyMsg) (TaskListModel, tea.Cmd) {
	before := m.search.Value()
	cmd := m.search.Update(msg)
	// Live filter on every keystroke
	if v := m.search.Value(); v != before {
		m.ctrl.SetSearch(true, v)
	}
	return m, cmd
}

func (m TaskListModel) handleInputResult(msg TextInputResultMsg) (TaskListModel, tea.Cmd) {
	switch msg.Field {
	case FieldNewTask:
		if msg.Cancelled {
			m.form.Blur()
			return m, nil
		}
		if m.ctrl.AddTask(msg.Value) {
			m.form.Reset()
		}
	case FieldSearch:
		m.search.Blur()
		if msg.Cancelled {
			m.search.Reset()
			m.ctrl.SetSearch(false, "")
			return m, nil
		}
		m.ctrl.SetSearch(false, msg.Value)
	}
	return m, nil
}

func (m TaskListModel) handleMouse(msg tea.MouseMsg) (TaskListModel, tea.Cmd) {
	c := m.ctrl
	switch msg.Action {
	case tea.MouseActionMotion:
		c.PointerMotion(msg.X, msg.Y)
		return m, nil
	case tea.MouseActionRelease:
		c.PointerRelease(msg.X, msg.Y)
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		c.MoveCursor(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		c.MoveCursor(1)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	_, wasEditing := c.Editing()
	c.PointerPress(msg.X, msg.Y)

	switch c.TakeFormRequest() {
	case FormSubmit:
		if m.form.Value() != "" {
			if c.AddTask(m.form.Value()) {
				m.form.Reset()
			}
			return m, nil
		}
		return m, m.form.Focus()
	case FormFocus:
		return m, m.form.Focus()
	}
	m.form.Blur()
	m.search.Blur()
	if _, editing := c.Editing(); editing && !wasEditing {
		return m, textinput.Blink
	}
	return m, nil
}

// View renders the task list
func (m TaskListModel) View() string {
	opts := PaintOptions{Selected: m.ctrl.Selected()}
	if m.form.Focused() {
		opts.FormView = m.form.View()
	}
	if e, ok := m.ctrl.Editing(); ok {
		opts.EditView = e.Input.View()
	}
	if m.search.Focused() {
		opts.SearchView = m.search.View()
	}
	body := Paint(m.ctrl.Root(), opts)

	var hints string
	if mode := m.Mode(); mode != ModeNormal {
		hints = theme.HelpHint.Render("[" + mode.String() + "]  " + mode.Hints())
	} else {
		hints = m.help.View(keys)
	}
	return shared.PinBottom(body, hints, m.height)
}
