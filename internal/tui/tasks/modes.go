package tasks

// Mode is what the task view is doing with the keyboard.
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm
	ModeEdit
	ModeSearch
	ModeMove
	ModeDrag
)

var modeNames = [...]string{"Normal", "New task", "Edit", "Search", "Move", "Drag"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "Normal"
	}
	return modeNames[m]
}

// Hints returns the raw keybind hints for modes that take over the keyboard.
// Normal mode hints come from the keymap.
func (m Mode) Hints() string {
	switch m {
	case ModeForm:
		return "enter:add  esc:close"
	case ModeEdit:
		return "enter:save  esc:cancel"
	case ModeSearch:
		return "type to filter  enter:done  esc:clear"
	case ModeMove:
		return "j/k:move  enter/m:drop"
	case ModeDrag:
		return "release to drop"
	}
	return ""
}
