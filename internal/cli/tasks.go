package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"listo/internal/tasks/data"
	"listo/internal/tui/shared"
)

var errEmptyText = errors.New("task text is empty")

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "add <text...>",
		Aliases: []string{"a"},
		Short:   "Add a task at the end of the list",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok, err := app.store.Add(strings.Join(args, " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errEmptyText)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", shared.StyledTaskLine(t))
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	var filter, search string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List tasks in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := data.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			return printList(cmd, app, f, search)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Which tasks to show (all|open|done)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Fuzzy match on task text")
	return cmd
}

func printList(cmd *cobra.Command, app *App, f data.Filter, search string) error {
	all := app.store.List()
	tasks := data.Search(data.Visible(all, f), search)
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
	}
	for _, t := range tasks {
		fmt.Fprintln(out, shared.StyledTaskLine(t))
	}
	c := data.Count(all)
	fmt.Fprintf(out, "\n%d total, %d open, %d done\n", c.Total, c.Open, c.Done)
	return nil
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done", "do"},
		Short:   "Flip a task between open and done",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.store.Resolve(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			t, _, err = app.store.Toggle(t.ID)
			if err != nil {
				return writeErr(cmd, err)
			}
			verb := "Reopened"
			if t.Done {
				verb = "Completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, t.Text)
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.store.Resolve(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ok, err := app.store.SetText(t.ID, strings.Join(args[1:], " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errEmptyText)
			}
			t, _ = app.store.Get(t.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Edited: %s\n", shared.StyledTaskLine(t))
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete", "del"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.store.Resolve(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := app.store.Remove(t.ID); err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", t.Text)
			return nil
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			had, err := app.store.RemoveCompleted()
			if err != nil {
				return writeErr(cmd, err)
			}
			if had {
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared completed tasks.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No completed tasks.")
			}
			return nil
		},
	}
}

func newReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Put tasks in the given order; unlisted tasks keep their order after them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]string, 0, len(args))
			for _, arg := range args {
				t, err := app.store.Resolve(arg)
				if err != nil {
					return writeErr(cmd, err)
				}
				ids = append(ids, t.ID)
			}
			if err := app.store.Reorder(ids); err != nil {
				return writeErr(cmd, err)
			}
			return printList(cmd, app, data.FilterAll, "")
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	var before, after string
	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move one task before or after another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (before == "") == (after == "") {
				return writeErr(cmd, errors.New("provide exactly one of --before or --after"))
			}
			t, err := app.store.Resolve(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			refArg := before
			if after != "" {
				refArg = after
			}
			ref, err := app.store.Resolve(refArg)
			if err != nil {
				return writeErr(cmd, err)
			}
			if ref.ID == t.ID {
				return writeErr(cmd, errors.New("cannot move a task relative to itself"))
			}

			ids := slices.DeleteFunc(app.store.IDs(), func(id string) bool { return id == t.ID })
			at := slices.Index(ids, ref.ID)
			if after != "" {
				at++
			}
			ids = slices.Insert(ids, at, t.ID)
			if err := app.store.Reorder(ids); err != nil {
				return writeErr(cmd, err)
			}
			return printList(cmd, app, data.FilterAll, "")
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "Place the task directly before this id")
	cmd.Flags().StringVar(&after, "after", "", "Place the task directly after this id")
	return cmd
}
