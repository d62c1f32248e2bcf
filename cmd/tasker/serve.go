package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ldi/tasker/internal/mcp"
	"github.com/ldi/tasker/internal/server"
	"github.com/spf13/cobra"
)

// serveMCP and serveHTTP are swapped out in tests.
var (
	serveMCP  = mcp.Serve
	serveHTTP = func(srv *server.Server, addr string) error { return srv.Start(addr) }
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve task tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeStore, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			return serveMCP(mcp.NewServer(m))
		},
	}
}

func newWebCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the JSON task API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, closeStore, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			srv := server.NewServer(m)

			// Ensure graceful shutdown
			done := make(chan struct{})
			stopped := make(chan struct{})
			go func() {
				defer close(stopped)
				select {
				case <-ctx.Done():
				case <-done:
					return
				}
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			addr := fmt.Sprintf(":%s", port)
			a.logger.Info("serving task API", "addr", addr)
			err = serveHTTP(srv, addr)
			close(done)
			<-stopped
			if err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", a.cfg.Port, "port to listen on")
	return cmd
}
