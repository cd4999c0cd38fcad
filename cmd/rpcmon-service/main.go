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
	"go.uber.org/zap"

	"github.com/hamed0406/rpcmon/internal/config"
	"github.com/hamed0406/rpcmon/internal/logging"
	"github.com/hamed0406/rpcmon/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.FromEnv()
	var seed int64

	cmd := &cobra.Command{
		Use:          "rpcmon-service NAME",
		Short:        "Serve get_disponibility over JSON-RPC 2.0 on POST /rpc",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ServiceName = args[0]
			return serve(cmd.Context(), cfg, seed)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.ServiceAddr, "addr", cfg.ServiceAddr, "listen address")
	f.Float64Var(&cfg.ServiceMu, "mu", cfg.ServiceMu, "mean of the generated disponibility")
	f.Float64Var(&cfg.ServiceSigma, "sigma", cfg.ServiceSigma, "standard deviation of the generated disponibility")
	f.IntVar(&cfg.ServiceRPM, "rpm", cfg.ServiceRPM, "per-client requests per minute, 0 disables rate limiting")
	f.IntVar(&cfg.ServiceBurst, "burst", cfg.ServiceBurst, "rate limit burst")
	f.Int64Var(&seed, "seed", 0, "random seed, 0 seeds from the clock")
	f.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "log directory")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, seed int64) error {
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	src := service.NewNormalSource(cfg.ServiceMu, cfg.ServiceSigma, seed)
	svc := service.NewServer(logger, cfg.ServiceName, src, cfg.ServiceRPM, cfg.ServiceBurst)
	svc.APIKeys = cfg.ServiceKeys

	srv := &http.Server{
		Addr:              cfg.ServiceAddr,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("service_listen",
			zap.String("addr", cfg.ServiceAddr),
			zap.String("name", cfg.ServiceName),
			zap.Float64("mu", cfg.ServiceMu),
			zap.Float64("sigma", cfg.ServiceSigma),
			zap.Bool("auth", len(cfg.ServiceKeys) > 0),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("service_listen_failed", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("service_shutdown")
	return srv.Shutdown(shutdownCtx)
}
