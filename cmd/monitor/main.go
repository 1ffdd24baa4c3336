package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/kpus-tech/ai-updates-monitor/pkg/config"
	"github.com/kpus-tech/ai-updates-monitor/pkg/fetcher"
	"github.com/kpus-tech/ai-updates-monitor/pkg/monitor"
	"github.com/kpus-tech/ai-updates-monitor/pkg/notifier"
	"github.com/kpus-tech/ai-updates-monitor/pkg/state"
	"github.com/kpus-tech/ai-updates-monitor/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`
	Serve  bool   `long:"serve" env:"SERVE" description:"run the HTTP trigger server with the interval scheduler"`
	Daemon bool   `long:"daemon" env:"DAEMON" description:"run the interval scheduler without the HTTP server"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug)

	log.Printf("[INFO] starting updates-monitor version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		// top-level failures still produce a structured result for the caller
		log.Printf("[ERROR] run failed: %v", err)
		printJSON(map[string]string{
			"status":    "error",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run builds the pipeline from config and dispatches on the selected mode
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fetch := fetcher.New(fetcher.Opts{
		Concurrency: cfg.Fetcher.Concurrency,
		Timeout:     cfg.Fetcher.Timeout,
		UserAgent:   cfg.Fetcher.UserAgent,
	})
	defer fetch.Close()

	store, closeStore, err := makeStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer closeStore()

	runner := monitor.NewRunner(monitor.NewProcessor(fetch, store), makeNotifier(cfg), cfg.Schedule.Concurrency)
	sched := monitor.NewScheduler(runner, cfg.SourceList(), cfg.Schedule.Interval)

	switch {
	case opts.Serve:
		sched.Start(ctx)
		defer sched.Stop()
		srv := server.New(server.Config{
			Listen:  cfg.Server.Listen,
			Timeout: cfg.Server.Timeout,
			Version: revision,
			Debug:   opts.Debug,
		}, sched)
		return srv.Run(ctx)

	case opts.Daemon:
		sched.Start(ctx)
		<-ctx.Done()
		sched.Stop()
		return nil

	default:
		// single externally-triggered invocation, summary goes to stdout
		printJSON(sched.RunNow(ctx))
		return nil
	}
}

// makeStore selects the state store, empty DSN keeps state in memory
func makeStore(ctx context.Context, cfg *config.Config) (monitor.Store, func(), error) {
	if cfg.State.DSN == "" {
		log.Printf("[WARN] no state dsn configured, using in-memory store")
		return state.NewMemoryStore(), func() {}, nil
	}

	store, err := state.NewSQLiteStore(ctx, cfg.State.DSN)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Printf("[WARN] state store close error: %v", err)
		}
	}, nil
}

// makeNotifier selects the digest delivery channel
func makeNotifier(cfg *config.Config) monitor.Notifier {
	if cfg.Notify.Type == "webhook" {
		return notifier.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.Timeout)
	}
	return &notifier.LogNotifier{}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("[ERROR] can't encode result: %v", err)
	}
}

// for testing only
var logOutput io.Writer = os.Stdout

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(logOutput), lgr.Err(logOutput)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
