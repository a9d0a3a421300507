package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"storefront/internal/core"
	"storefront/internal/logx"
	"storefront/internal/mockapi"
)

type config struct {
	Addr        string `default:":8000"`
	Environment string `default:"development"`
	Verbose     bool
}

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process("mockapi", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("load config")
	}
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log every request")
	flag.Parse()

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment), Debug: cfg.Verbose})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mockapi.New().Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logx.Warn().Str("addr", cfg.Addr).Msg("mock storefront backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logx.Error().Err(err).Msg("shutdown")
	}
}
