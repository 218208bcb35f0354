package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/api"
	"github.com/ledgerline-dev/ledgerline/internal/balance"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/logger"
	"github.com/ledgerline-dev/ledgerline/internal/migration"
	"github.com/ledgerline-dev/ledgerline/internal/report"
	"github.com/ledgerline-dev/ledgerline/internal/store/memory"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "ledgerline.yaml", "path to config file")

	return cmd
}

func runServe(configPath string) error {
	cfg := config.Default()
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	log := logger.New(cfg.Log.Level)

	channels := make([]report.Channel, len(cfg.Report.Channels))
	for i, ch := range cfg.Report.Channels {
		channels[i] = report.Channel(ch)
	}

	notifier := report.NewNotifier(report.Options{
		Channels: channels,
		Subject:  cfg.Report.Subject,
		Email: report.EmailSettings{
			SMTPHost: cfg.Email.SMTPHost,
			SMTPPort: cfg.Email.SMTPPort,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			To:       cfg.Email.To,
		},
		Webhook: report.WebhookSettings{URL: cfg.Webhook.URL},
	}, log)

	dispatcher := report.NewDispatcher(notifier, cfg.Report.QueueSize, cfg.Report.Workers, log)
	defer dispatcher.Close()

	st := memory.NewStore()
	migrations := migration.NewService(st, dispatcher, log)
	balances := balance.NewService(st)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.New(migrations, balances, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
