package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/organizeme/internal/board"
	"github.com/sandeepkv93/organizeme/internal/commands"
	"github.com/sandeepkv93/organizeme/internal/model"
	"github.com/sandeepkv93/organizeme/internal/store"
	"github.com/sandeepkv93/organizeme/internal/suggest"
)

// withStore runs fn against the persisted store, logging to the log file.
func withStore(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, st *store.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, opts.verbose, nil)
	if err != nil {
		return err
	}
	defer closeLog()
	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(ctx, st)
}

func listCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print tasks grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(_ context.Context, st *store.Store) error {
				printGroups(cmd.OutOrStdout(), board.GroupTasks(st.State().Tasks))
				return nil
			})
		},
	}
}

func calendarCmd(opts *rootOptions) *cobra.Command {
	var date, mode string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print tasks due on a day, week or month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			focus := time.Now()
			if date != "" {
				parsed, err := time.ParseInLocation(commands.DueLayout, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", date)
				}
				focus = parsed
			}
			calMode := board.CalendarMode(strings.ToLower(mode))
			if !calMode.IsValid() {
				return fmt.Errorf("invalid --mode %q: want day, week or month", mode)
			}
			return withStore(cmd, opts, func(_ context.Context, st *store.Store) error {
				from, to := board.Window(calMode, focus, time.Local)
				tasks := board.TasksBetween(st.State().Tasks, from, to)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s .. %s\n", from.Format(commands.DueLayout), to.AddDate(0, 0, -1).Format(commands.DueLayout))
				if len(tasks) == 0 {
					fmt.Fprintln(out, "No tasks due.")
					return nil
				}
				for i, t := range tasks {
					fmt.Fprintln(out, formatTask(i+1, t))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "focus date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&mode, "mode", string(board.CalendarModeDay), "range: day, week or month")
	return cmd
}

func addCmd(opts *rootOptions) *cobra.Command {
	var due, category, description string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return model.ErrMissingTitle
			}
			var dueAt *time.Time
			if due != "" {
				parsed, err := time.ParseInLocation(commands.DueLayout, due, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --due %q: want YYYY-MM-DD", due)
				}
				dueAt = &parsed
			}
			return withStore(cmd, opts, func(ctx context.Context, st *store.Store) error {
				var cat *model.Category
				if strings.TrimSpace(category) != "" {
					resolved, created := model.ResolveCategory(st.State().Categories, category, model.DefaultColor())
					if created {
						if err := st.AddCategory(ctx, resolved); err != nil {
							return err
						}
					}
					cat = &resolved
				}
				t := model.NewTask(title, description, dueAt, cat, nil)
				if err := st.AddTask(ctx, t); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s: %s\n", t.ID, t.Title)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")
	cmd.Flags().StringVar(&category, "category", "", "category name (created when missing)")
	cmd.Flags().StringVar(&description, "description", "", "markdown description")
	return cmd
}

func suggestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <title>",
		Short: "Ask for category suggestions for a task title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, opts.verbose, nil)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, cancel := context.WithTimeout(context.Background(), cfg.SuggestTimeout())
			defer cancel()
			svc := suggest.NewService(newUpstream(cfg), logger)
			categories, err := svc.SuggestCategories(ctx, strings.Join(args, " "))
			if err != nil {
				return errors.New(suggest.Message(err))
			}
			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				fmt.Fprintln(out, "No suggestions.")
				return nil
			}
			for _, c := range categories {
				fmt.Fprintln(out, c)
			}
			return nil
		},
	}
}

func printGroups(out io.Writer, groups []board.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(out, "No tasks yet.")
		return
	}
	row := 0
	for _, g := range groups {
		fmt.Fprintf(out, "%s\n", g.Name)
		for _, t := range g.Tasks {
			row++
			fmt.Fprintln(out, formatTask(row, t))
		}
	}
}

func formatTask(row int, t model.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("  %2d %s %s", row, check, t.Title)
	if t.HasDueDate() {
		line += " (due " + t.DueDate.In(time.Local).Format(commands.DueLayout) + ")"
	}
	if n := len(t.Subtasks); n > 0 {
		line += fmt.Sprintf(" [%d/%d]", t.CompletedSubtasks(), n)
	}
	return line
}
