package main

import (
	"fmt"

	"github.com/ldi/tasker/internal/tasks"
	"github.com/ldi/tasker/pkg/models"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List tasks",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeStore, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			return m.ListTasks(a.out)
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var (
		dueDate  string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Add a new task",
		Long: `Add a new pending task. The whole task list is saved afterwards.

Examples:
  tasker add "Buy milk"
  tasker add "Review SOLID Principles" --due 2024-08-10 -p high`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeStore, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			var due *string
			if cmd.Flags().Changed("due") {
				due = &dueDate
			}

			t, err := m.AddTask(cmd.Context(), args[0], due, priority)
			if err != nil {
				return fmt.Errorf("failed to add task: %w", err)
			}

			fmt.Fprintf(a.out, "Task '%s' added with priority '%s'.\n", t.Description, t.Priority)
			fmt.Fprintln(a.out, t.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&dueDate, "due", "", "due date, e.g. 2024-08-10")
	cmd.Flags().StringVarP(&priority, "priority", "p", models.DefaultPriority, "task priority (e.g. high, medium, low)")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			m, closeStore, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			t, ok := m.GetTaskByID(id)
			if !ok {
				return fmt.Errorf("%w: %d", tasks.ErrTaskNotFound, id)
			}

			fmt.Fprintln(a.out, t.String())
			return nil
		},
	}
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done [task-id]",
		Short:   "Mark a task as completed",
		Aliases: []string{"complete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			m, closeStore, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			done, err := m.MarkTaskCompleted(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to complete task: %w", err)
			}
			if !done {
				fmt.Fprintf(a.out, "Task %d not found.\n", id)
				return fmt.Errorf("%w: %d", tasks.ErrTaskNotFound, id)
			}

			fmt.Fprintf(a.out, "Task %d marked as completed.\n", id)
			return nil
		},
	}
}

// newDemoCmd lists the current tasks and then adds two sample tasks.
func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "List tasks, then add two sample tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, closeStore, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := m.ListTasks(a.out); err != nil {
				return err
			}

			samples := []struct {
				description string
				due         string
				priority    string
			}{
				{"Review SOLID Principles", "2024-08-10", "high"},
				{"Prepare for Final Exam", "2024-08-15", "low"},
			}
			for _, s := range samples {
				due := s.due
				t, err := m.AddTask(ctx, s.description, &due, s.priority)
				if err != nil {
					return fmt.Errorf("failed to add task: %w", err)
				}
				fmt.Fprintf(a.out, "Task '%s' added with priority '%s'.\n", t.Description, t.Priority)
			}

			fmt.Fprintln(a.out, "Finished")
			return nil
		},
	}
}
