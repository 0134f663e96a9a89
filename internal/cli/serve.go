package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/labunify/internal/api"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withSession(func(s *session) error {
				return serve(cmd.Context(), s)
			})
		},
	}
}

func serve(ctx context.Context, s *session) error {
	handler, err := api.NewHandler(s.store, s.cache, s.i18n, s.logger, s.config.DefaultThreshold)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	s.logger.Info("labunify listening",
		zap.String("addr", "0.0.0.0:"+s.config.Port),
		zap.String("db", s.config.DBPath),
		zap.Int("graph_cache_size", s.config.GraphCacheSize),
	)
	if err := app.Listen(":" + s.config.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
