package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/fakhrymubarak/weather-api-conformance/internal/client"
	"github.com/fakhrymubarak/weather-api-conformance/internal/config"
	"github.com/fakhrymubarak/weather-api-conformance/internal/listener"
	"github.com/fakhrymubarak/weather-api-conformance/internal/scenario"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	log := config.GetLogger()
	defer func() { _ = log.Sync() }()

	fs := flag.NewFlagSet("weather-api-conformance", flag.ContinueOnError)
	pattern := fs.String("run", "", "only run scenarios whose name matches this regexp")
	if err := fs.Parse(args); err != nil {
		return exitConfig
	}

	cfg := config.Load()
	if cfg.APIKey == "" {
		log.Errorw("API key missing", "env", "API_KEY")
		return exitConfig
	}

	scenarios, err := scenario.Filter(scenario.Catalog(cfg.StrictLatency), *pattern)
	if err != nil {
		log.Errorw("Bad scenario filter", "error", err)
		return exitConfig
	}

	log.Infow("Running weather API conformance suite",
		"base_url", cfg.BaseURL,
		"schema", cfg.SchemaPath,
		"scenarios", len(scenarios),
	)

	env := scenario.NewEnv(cfg, client.NewWeatherClient(cfg))
	report := scenario.NewRunner(env, listener.NewConsoleListener(log)).Run(ctx, scenarios)

	for _, res := range report.Failed() {
		if res.Soft {
			log.Warnw("Soft failure", "scenario", res.Name, "error", res.Err)
		}
	}
	log.Infow("Suite finished",
		"passed", report.Passed(),
		"failed", len(report.Failed()),
		"hard_failures", report.HardFailures(),
	)

	if report.HardFailures() > 0 {
		return exitFailed
	}
	return exitOK
}
