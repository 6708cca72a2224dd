package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/boxdancer/go-price-oracle/internal/config"
	"github.com/boxdancer/go-price-oracle/internal/logging"
	"github.com/boxdancer/go-price-oracle/internal/observability"
	"github.com/boxdancer/go-price-oracle/internal/oracle"
	"github.com/boxdancer/go-price-oracle/internal/price"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run печатает одну котировку в stdout. Аргументы не разбираются и ни на что не влияют.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	return runWithConfig(cfg, args, stdout, stderr)
}

func runWithConfig(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	logger := logging.New(cfg.Log, stderr)
	defer func() { _ = logger.Sync() }()
	logger.Debugw("starting price oracle", "ignored_args", len(args))

	reg := prometheus.NewRegistry()
	metrics := observability.NewPrometheusMetrics(reg)
	reporter := oracle.NewReporter(newSource(cfg.Price), metrics, logger)

	err := reporter.Report(context.Background(), stdout)
	logMetrics(logger, reg)
	if err != nil {
		logger.Errorw("report failed", "error", err)
		return 1
	}
	return 0
}

// По умолчанию цену отдаёт сама заглушка, иначе — значение из конфига.
func newSource(cfg config.PriceConfig) price.Source {
	if cfg.Value == price.StubPrice {
		return price.NewStubSource()
	}
	return price.NewFixedSource(cfg.Value)
}

func logMetrics(logger *zap.SugaredLogger, g prometheus.Gatherer) {
	snap, err := observability.Snapshot(g)
	if err != nil {
		logger.Warnw("collect metrics failed", "error", err)
		return
	}

	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	kv := make([]interface{}, 0, 2*len(names))
	for _, name := range names {
		kv = append(kv, name, snap[name])
	}
	logger.Debugw("run metrics", kv...)
}
