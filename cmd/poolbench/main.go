// Command poolbench runs the worker pool micro-benchmark: enqueue a fixed
// number of CPU-bound tasks, use pool shutdown as the join barrier, and
// print the wall time and an aggregate checksum.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	workerpool "github.com/tessen-dev/go-worker-pool"
	poolprom "github.com/tessen-dev/go-worker-pool/observability/prometheus"
	"github.com/tessen-dev/go-worker-pool/internal/benchconfig"
)

var version = "dev"

func main() {
	var (
		configFile  = flag.String("config", "", "config file path (YAML/JSON)")
		workers     = flag.Int("workers", 0, "number of workers")
		tasks       = flag.Int("tasks", 0, "number of benchmark tasks")
		warmup      = flag.Int("warmup", -1, "number of warm-up tasks")
		metricsAddr = flag.String("metrics-addr", "", "expose prometheus /metrics on this address during the run (e.g. :9090)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("poolbench %s\n", version)
		return
	}

	cfg := benchconfig.Default()
	if *configFile != "" {
		loaded, err := benchconfig.LoadFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "poolbench: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override the config file
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *tasks > 0 {
		cfg.Tasks = *tasks
	}
	if *warmup >= 0 {
		cfg.WarmupTasks = *warmup
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "poolbench: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "poolbench: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg benchconfig.Config) error {
	var metrics workerpool.Metrics
	var poller *poolprom.SnapshotPoller

	if cfg.MetricsAddr != "" {
		reg := prom.NewRegistry()
		exporter, err := poolprom.NewMetricsExporter("poolbench", reg, poolprom.ExporterOptions{})
		if err != nil {
			return err
		}
		metrics = exporter

		poller, err = poolprom.NewSnapshotPoller(reg, 250*time.Millisecond)
		if err != nil {
			return err
		}
		poller.Start(context.Background())
		defer poller.Stop()

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			// Best effort; the benchmark does not depend on the listener.
			_ = http.ListenAndServe(cfg.MetricsAddr, mux)
		}()
	}

	// Warm-up: fresh pool, throwaway accumulator.
	if cfg.WarmupTasks > 0 {
		if err := runPool("warmup", cfg, cfg.WarmupTasks, metrics, poller, new(atomic.Uint64)); err != nil {
			return err
		}
	}

	var checksum atomic.Uint64

	start := time.Now()
	if err := runPool("bench", cfg, cfg.Tasks, metrics, poller, &checksum); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%.6f\n", elapsed.Seconds())
	fmt.Fprintf(os.Stderr, "Final count: %d\n", checksum.Load())
	return nil
}

// runPool constructs a pool, feeds it n tasks and uses Close as the join
// barrier before the caller reads the accumulated checksum.
func runPool(id string, cfg benchconfig.Config, n int, metrics workerpool.Metrics, poller *poolprom.SnapshotPoller, checksum *atomic.Uint64) error {
	pool, err := workerpool.NewWithConfig(cfg.Workers, &workerpool.Config{
		ID:         id,
		QueueLimit: cfg.QueueLimit,
		Metrics:    metrics,
	})
	if err != nil {
		return err
	}
	if poller != nil {
		poller.AddPool(id, pool)
	}

	for i := 0; i < n; i++ {
		i := i
		err := pool.Submit(func(ctx context.Context) {
			checksum.Add(heavyComputation(uint64(i)))
		})
		if err != nil {
			pool.Close()
			return fmt.Errorf("submit task %d: %w", i, err)
		}
	}

	pool.Close()
	return nil
}

// heavyComputation is the reference per-task workload: sum of n*i for
// i in [0, 1000), with wrapping arithmetic.
func heavyComputation(n uint64) uint64 {
	var result uint64
	for i := uint64(0); i < 1000; i++ {
		result += n * i
	}
	return result
}
