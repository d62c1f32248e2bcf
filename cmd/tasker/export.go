package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ldi/tasker/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as json, jsonl, csv or pdf",
		Long: `Export the current task list.

Examples:
  tasker export --format csv
  tasker export --format pdf --out tasks.pdf
  tasker export --format jsonl --out snapshot.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeStore, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			var w io.Writer = a.out
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := export.Write(w, format, m.Tasks()); err != nil {
				return err
			}
			if out != "" {
				a.logger.Info("tasks exported", "format", format, "path", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", export.FormatJSON, "output format ("+strings.Join(export.Formats, ", ")+")")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [snapshot.jsonl]",
		Short: "Replace all tasks with the contents of a JSONL snapshot",
		Long: `Replace all tasks with the contents of a JSONL snapshot.

Only the sqlite and mysql backends support import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.IsDatabase() {
				return fmt.Errorf("import requires a database backend, got %q", a.cfg.Backend)
			}

			_, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := a.database.ImportSnapshot(cmd.Context(), args[0]); err != nil {
				return err
			}

			count, err := a.database.CountTasks(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Imported %d tasks from %s\n", count, args[0])
			return nil
		},
	}
}
