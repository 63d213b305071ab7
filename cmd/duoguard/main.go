// Command duoguard runs the document authorization service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/girojogos/duoguard/config"
	"github.com/girojogos/duoguard/gateway"
	"github.com/girojogos/duoguard/identity"
	"github.com/girojogos/duoguard/logger"
	"github.com/girojogos/duoguard/observability"
	"github.com/girojogos/duoguard/server"
	"github.com/girojogos/duoguard/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "duoguard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configFile string
	pflag.StringVarP(&configFile, "config", "c", "", "path to config.yml")
	pflag.Parse()

	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	cfg, err := config.Load("duoguard", opts...)
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("starting", logger.Fields(
		"environment", cfg.Environment,
		"version", cfg.Version,
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.DecisionMetrics
	if cfg.Observability.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Observability)
		if err != nil {
			return err
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()

		mp, err := observability.InitMeter(ctx, cfg.Observability)
		if err != nil {
			return err
		}
		defer func() { _ = mp.Shutdown(context.Background()) }()

		metrics, err = observability.NewDecisionMetrics(observability.Meter("duoguard"))
		if err != nil {
			return err
		}
	}

	s, err := store.Open(cfg.Store, log)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	tokens, err := identity.NewService(&cfg.Auth)
	if err != nil {
		return err
	}
	resolver := identity.NewResolver(tokens, s, log)

	gw := gateway.New(s, log, metrics)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	server.NewAPI(gw, log).RegisterRoutes(srv.GinEngine(), resolver)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("shutdown signal received")
	return srv.Stop(context.Background())
}
