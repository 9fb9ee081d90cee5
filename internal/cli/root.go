package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"listo/internal/config"
	"listo/internal/logs"
	"listo/internal/storage"
	"listo/internal/tasks/data"
	"listo/internal/tasks/service"
	"listo/internal/tui"
)

// App carries the resolved configuration and the open store between the
// root command's hooks and its subcommands.
type App struct {
	Flags config.CLIFlags

	cfg   *config.Config
	blobs storage.BlobStore
	store *service.Store
}

// Execute runs the command line and releases the store and log file however
// the command ends. Cobra skips post-run hooks when RunE fails.
func Execute() error {
	app := &App{}
	return app.execute(newRootCmd(app), nil)
}

func (a *App) execute(cmd *cobra.Command, args []string) error {
	if args != nil {
		cmd.SetArgs(args)
	}
	err := cmd.Execute()
	if cerr := a.close(); cerr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: closing store: %v\n", cerr)
		err = errors.Join(err, cerr)
	}
	return err
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "listo",
		Short:         "A small reorderable task list (TUI + CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  listo

  # Scriptable commands
  listo add Buy milk
  listo list --filter open
  listo toggle 1f3a
  listo move 1f3a --before 9c0e
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Piped or redirected output gets the plain listing.
			if !isTerminal(cmd.OutOrStdout()) {
				return printList(cmd, app, data.FilterAll, "")
			}
			return runTUI(app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.open(); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Flags.ConfigPath, "config", "", "Path to config file (default ~/.config/listo/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Flags.DataDir, "data-dir", "", "Directory holding the task store")
	cmd.PersistentFlags().StringVar(&app.Flags.Backend, "backend", "", "Storage backend (file|sqlite)")
	cmd.PersistentFlags().StringVar(&app.Flags.Pointer, "pointer", "", "Pointer modality for dragging (fine|coarse)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newReorderCmd(app))
	cmd.AddCommand(newMoveCmd(app))

	return cmd
}

func (a *App) open() error {
	cfg, err := config.Load(a.Flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configPath := a.Flags.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("LISTO_CONFIG")
	}
	if err := config.EnsureConfigFile(configPath); err != nil {
		logs.Logger.Printf("Warning: could not create config file: %v", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}

	blobs, err := storage.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Backend, err)
	}
	a.cfg = cfg
	a.blobs = blobs
	a.store = service.NewStore(blobs)
	return nil
}

func (a *App) close() error {
	var err error
	if a.blobs != nil {
		err = a.blobs.Close()
		a.blobs = nil
	}
	return errors.Join(err, logs.Close())
}

func runTUI(app *App) error {
	logs.Logger.Println("Starting app in TUI mode")
	model, err := tui.NewAppModel(app.cfg, app.store)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tui.ProgramOptions(app.cfg)...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err.Error())
	return err
}
