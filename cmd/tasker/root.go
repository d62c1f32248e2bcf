package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ldi/tasker/internal/config"
	"github.com/ldi/tasker/internal/db"
	"github.com/ldi/tasker/internal/store"
	"github.com/ldi/tasker/internal/tasks"
	"github.com/spf13/cobra"
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	out     io.Writer
	errOut  io.Writer
	verbose bool

	database *db.DB
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{cfg: cfg, out: stdout, errOut: stderr}

	rootCmd := &cobra.Command{
		Use:   "tasker",
		Short: "Tasker - a small personal task tracker",
		Long: `Tasker records tasks with a description, optional due date, priority
and completion state, and saves them after every change.

Tasks live in a plain text file by default. Use --backend sqlite or
--backend mysql to keep them in a database instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.cfg.LogLevel = "debug"
			}
			a.cfg.Backend = strings.ToLower(a.cfg.Backend)
			a.logger = a.cfg.NewLogger(a.errOut)

			info := commandContext{
				correlationID: uuid.New(),
				startedAt:     time.Now(),
			}
			cmd.SetContext(context.WithValue(cmd.Context(), commandContextKey{}, info))
			a.logger.Debug("command start",
				"command", cmd.CommandPath(),
				"correlation_id", info.correlationID.String(),
			)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
			if !ok {
				return
			}
			a.logger.Debug("command end",
				"command", cmd.CommandPath(),
				"correlation_id", info.correlationID.String(),
				"duration_ms", time.Since(info.startedAt).Milliseconds(),
			)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfg.TaskFile, "file", "f", cfg.TaskFile, "task file used by the file backend")
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend (file, sqlite, mysql)")
	flags.StringVar(&cfg.DSN, "dsn", cfg.DSN, "database path (sqlite) or DSN (mysql)")
	flags.StringVar(&cfg.SnapshotPath, "snapshot", cfg.SnapshotPath, "export a JSONL snapshot after every database save")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newShowCmd(a),
		newDoneCmd(a),
		newDemoCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newMCPCmd(a),
		newWebCmd(a),
	)

	return rootCmd, nil
}

// openStore builds the configured backend. The returned func releases it.
func (a *app) openStore(ctx context.Context) (store.Store, func(), error) {
	switch a.cfg.Backend {
	case config.BackendFile:
		return store.NewFileStore(a.cfg.TaskFile, a.logger), func() {}, nil
	case config.BackendSQLite, config.BackendMySQL:
		database, err := db.OpenDriver(a.cfg.Backend, a.cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		database.SetLogger(a.logger)
		if err := database.Init(ctx); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if a.cfg.SnapshotPath != "" {
			database.EnableAutoSnapshot(a.cfg.SnapshotPath)
		}
		a.database = database
		return database, func() { database.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend: %s", a.cfg.Backend)
	}
}

// openManager opens the store and loads every task into a Manager.
func (a *app) openManager(ctx context.Context) (*tasks.Manager, func(), error) {
	s, closeStore, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	m, err := tasks.NewManager(ctx, s, a.logger)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return m, closeStore, nil
}

func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task ID %q: %w", arg, err)
	}
	return id, nil
}
