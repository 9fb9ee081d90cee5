package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Color palette: ANSI 0-15 + one 256-color accent
// ---------------------------------------------------------------------------

var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary       = lipgloss.Color("4")   // blue
	Secondary     = lipgloss.Color("6")   // cyan
	Accent        = lipgloss.Color("5")   // magenta
	Success       = lipgloss.Color("2")   // green
	Warning       = lipgloss.Color("3")   // yellow
	Danger        = lipgloss.Color("1")   // red
	Surface       = lipgloss.Color("236") // dark bg
	Border        = lipgloss.Color("8")   // dim
	BorderFocused = lipgloss.Color("4")   // blue
)

// ---------------------------------------------------------------------------
// Semantic text styles
// ---------------------------------------------------------------------------

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)
	Bold     = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Cursor     = lipgloss.NewStyle().Bold(true).Foreground(Success)
	Selected   = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	SelectedBg = lipgloss.NewStyle().Foreground(TextBright).Background(Surface)

	Done     = lipgloss.NewStyle().Foreground(TextMuted).Strikethrough(true)
	Dragging = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	Code     = lipgloss.NewStyle().Foreground(Secondary)
	Link     = lipgloss.NewStyle().Underline(true).Foreground(Primary)
)

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	ModalHelp = lipgloss.NewStyle().Foreground(TextMuted)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	ChipActive   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(Primary)
	ChipInactive = lipgloss.NewStyle().Foreground(TextMuted)

	Button       = lipgloss.NewStyle().Foreground(Secondary)
	ButtonDanger = lipgloss.NewStyle().Foreground(Danger)
	ButtonOk     = lipgloss.NewStyle().Foreground(Success)

	Handle  = lipgloss.NewStyle().Foreground(TextMuted)
	Counter = lipgloss.NewStyle().Foreground(TextMuted)
	Live    = lipgloss.NewStyle().Italic(true).Foreground(Secondary)
	Search  = lipgloss.NewStyle().Foreground(Success)
	Prompt  = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
)
