// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/project-match/internal/journal"
	"github.com/pdiddy/project-match/internal/ledger"
	"github.com/pdiddy/project-match/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the profile, admin, graph and decision API over HTTP",
	Long: `Serve loads every collection once and answers the JSON API until
interrupted. Decision and announcement writes are persisted through the
configured backend; a failed write is logged and the in-memory state is kept.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.summary.Write(os.Stderr)

	srv, err := server.NewServer(
		a.store,
		ledger.New(a.store, a.saver, a.logger),
		journal.New(a.store, a.saver, a.logger),
		a.logger,
		a.cfg,
	)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("shutdown", zap.Error(err))
		return err
	}
	return nil
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (default from config: localhost)")
	serveCmd.Flags().Int("port", 0, "listen port (default from config: 8000)")
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
