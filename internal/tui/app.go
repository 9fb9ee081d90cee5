package tui

import (
	"listo/internal/config"
	"listo/internal/drag"
	"listo/internal/tasks/service"
	taskview "listo/internal/tui/tasks"
	"listo/internal/tui/shared"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the root model that hosts the task view
type AppModel struct {
	cfg      *config.Config
	taskView taskview.TaskListModel
	showHelp bool
	width    int
	height   int
	ready    bool
}

// NewAppModel creates the root application model
func NewAppModel(cfg *config.Config, taskSvc service.TaskService) (AppModel, error) {
	pointer, err := drag.ParseModality(cfg.Pointer)
	if err != nil {
		return AppModel{}, err
	}
	return AppModel{
		cfg:      cfg,
		taskView: taskview.NewTaskListModel(taskSvc, pointer),
	}, nil
}

// ProgramOptions returns the tea options the configuration asks for.
func ProgramOptions(cfg *config.Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 2 // Reserve space for status bar
		m.taskView.SetSize(msg.Width, contentHeight)
		return m, nil

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Inputs and keyboard moves get every key
		if !m.taskView.IsInModalState() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.taskView, cmd = m.taskView.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup("listo - Keyboard Shortcuts", taskview.HelpSections(), m.width, m.height)
	}

	content := m.taskView.View()

	statusText := "listo | " + m.cfg.Backend + " store | pointer: " + m.cfg.Pointer + " | ?:help | q:quit"
	statusBar := StatusBarStyle.Width(m.width).Render(
		HelpStyle.Render(statusText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}
