// Command kflow-demo mixes two tones through a small kflow graph and prints
// statistics of the result.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/birdayz/kflow"
	"github.com/birdayz/kflow/pkg/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configPath string
	flagCfg    = DefaultConfig()

	rootCmd = &cobra.Command{
		Use:           "kflow-demo",
		Short:         "Mixes two tones through a kflow graph",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDemo,
	}
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file, flags override its values")
	f.IntVar(&flagCfg.Samples, "samples", flagCfg.Samples, "samples per tone, negative runs until interrupted")
	f.Float64Var(&flagCfg.SampleRate, "sample-rate", flagCfg.SampleRate, "samples per second")
	f.Float64Var(&flagCfg.LeftHz, "left-hz", flagCfg.LeftHz, "frequency of the left tone")
	f.Float64Var(&flagCfg.RightHz, "right-hz", flagCfg.RightHz, "frequency of the right tone")
	f.Float64Var(&flagCfg.Gain, "gain", flagCfg.Gain, "gain factor")
	f.Float64Var(&flagCfg.Limit, "limit", flagCfg.Limit, "clip limit, 0 disables clipping")
	f.IntVar(&flagCfg.Window, "window", flagCfg.Window, "samples per peak")
	f.IntVar(&flagCfg.Capacity, "capacity", flagCfg.Capacity, "capacity of every edge, -1 for unbounded")
	f.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "log level")
	f.StringVar(&flagCfg.MetricsAddr, "metrics-addr", flagCfg.MetricsAddr, "serve /metrics on this address")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kflow-demo:", err)
		os.Exit(1)
	}
}

// resolveConfig layers the changed flags over the config file, or over the
// defaults without one.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	if configPath == "" {
		return flagCfg, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}
	f := cmd.Flags()
	override := map[string]func(){
		"samples":      func() { cfg.Samples = flagCfg.Samples },
		"sample-rate":  func() { cfg.SampleRate = flagCfg.SampleRate },
		"left-hz":      func() { cfg.LeftHz = flagCfg.LeftHz },
		"right-hz":     func() { cfg.RightHz = flagCfg.RightHz },
		"gain":         func() { cfg.Gain = flagCfg.Gain },
		"limit":        func() { cfg.Limit = flagCfg.Limit },
		"window":       func() { cfg.Window = flagCfg.Window },
		"capacity":     func() { cfg.Capacity = flagCfg.Capacity },
		"log-level":    func() { cfg.LogLevel = flagCfg.LogLevel },
		"metrics-addr": func() { cfg.MetricsAddr = flagCfg.MetricsAddr },
	}
	for name, apply := range override {
		if f.Changed(name) {
			apply()
		}
	}
	return cfg, nil
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zlog := log.New(log.WithLevel(level))

	p, err := NewPipeline(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	app, err := kflow.New(p.Topology, kflow.WithLogr(log.Logr(zlog)), kflow.WithMetrics(reg))
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zlog.Error().Err(err).Msg("Metrics server failed")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := app.Run(ctx)
	if err := printReport(cmd, p); err != nil {
		return err
	}
	return runErr
}

type report struct {
	Signal  Summary   `yaml:"signal"`
	Clipped int       `yaml:"clipped"`
	Peaks   []float64 `yaml:"peaks,flow"`
}

func printReport(cmd *cobra.Command, p *Pipeline) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(report{
		Signal:  p.Stats.Summary(),
		Clipped: p.Gain.Clipped(),
		Peaks:   p.Peaks.Items(),
	}); err != nil {
		return err
	}
	return enc.Close()
}
