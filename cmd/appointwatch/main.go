package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/appointwatch/pkg/config"
	"github.com/umputun/appointwatch/pkg/fetch"
	"github.com/umputun/appointwatch/pkg/listing"
	"github.com/umputun/appointwatch/pkg/output"
	"github.com/umputun/appointwatch/pkg/pipeline"
	"github.com/umputun/appointwatch/pkg/repository"
	"github.com/umputun/appointwatch/pkg/scheduler"
	"github.com/umputun/appointwatch/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults used if not set"`
	Once    bool   `long:"once" env:"ONCE" description:"crawl once, print relevant records and exit"`
	Output  string `short:"o" long:"output" env:"OUTPUT" description:"JSON lines file to append records to"`
	EnvFile string `long:"env-file" env:"ENV_FILE" description:"load environment variables from file"`
	Verbose bool   `short:"v" long:"verbose" description:"verbose mode"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.Verbose, opts.NoColor)
	lgr.Printf("[INFO] starting appointwatch version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

// run loads configuration and either crawls once or serves until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if opts.Output != "" {
		cfg.Output.Path = opts.Output
	}

	crawler, err := makePipeline(cfg)
	if err != nil {
		return err
	}

	if opts.Once {
		return runOnce(ctx, cfg, crawler, os.Stdout)
	}
	return serve(ctx, cfg, crawler, opts.Debug)
}

// makePipeline wires fetcher, listing parser and processing stages from configuration
func makePipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	root, err := cfg.SiteRootURL()
	if err != nil {
		return nil, err
	}

	fetcher, err := fetch.New(fetch.Config{
		UserAgent:  cfg.Crawler.UserAgent,
		Delay:      cfg.Crawler.Delay,
		Timeout:    cfg.Crawler.Timeout,
		Retries:    cfg.Crawler.Retries,
		RetryDelay: cfg.Crawler.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make fetcher: %w", err)
	}

	return pipeline.New(pipeline.Params{
		Fetcher:   fetcher,
		Listing:   listing.NewParser(root),
		Location:  cfg.Location(),
		Prefilter: cfg.PrefilterEnabled(),
	}), nil
}

// runOnce crawls a single time, appends records to the output file if configured
// and prints relevant records to out
func runOnce(ctx context.Context, cfg *config.Config, crawler *pipeline.Pipeline, out io.Writer) error {
	report := &output.Report{}
	sinks := []pipeline.Sink{report}

	if cfg.Output.Path != "" {
		jl, err := output.OpenJSONLines(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("failed to open output: %w", err)
		}
		defer func() {
			if err := jl.Close(); err != nil {
				lgr.Printf("[WARN] failed to close output %s: %v", cfg.Output.Path, err)
			}
		}()
		sinks = append(sinks, jl)
	}

	sum, err := crawler.Run(ctx, cfg.Crawler.StartURL, sinks...)
	report.Render(out, sum)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}
	return nil
}

// serve runs scheduler and HTTP server until ctx is canceled
func serve(ctx context.Context, cfg *config.Config, crawler *pipeline.Pipeline, debug bool) error {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	sinks := []pipeline.Sink{repos.Record}
	if cfg.Output.Path != "" {
		jl, err := output.OpenJSONLines(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("failed to open output: %w", err)
		}
		defer func() {
			if err := jl.Close(); err != nil {
				lgr.Printf("[WARN] failed to close output %s: %v", cfg.Output.Path, err)
			}
		}()
		sinks = append(sinks, jl)
	}

	schedCfg := scheduler.Config{
		StartURL:   cfg.Crawler.StartURL,
		RunOnStart: cfg.Schedule.RunOnStart,
		Location:   cfg.Location(),
	}
	if cfg.Schedule.Enabled {
		schedCfg.Schedule = cfg.Schedule.Cron
	}
	sched := scheduler.NewScheduler(crawler, repos.Run, schedCfg, sinks...)

	srv := server.New(server.Config{
		Listen:  cfg.Server.Listen,
		Timeout: cfg.Server.Timeout,
		BaseURL: cfg.Server.BaseURL,
		Version: revision,
		Debug:   debug,
	}, repos.Record, repos.Run, sched)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := sched.Start(gctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		<-gctx.Done()
		sched.Stop()
		return nil
	})
	g.Go(func() error {
		return srv.Run(gctx)
	})
	return g.Wait()
}

func setupLog(dbg, verbose, noColor bool) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if verbose {
		logOpts = nil
	}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.CallerFunc, lgr.StackTraceOnError}
	}

	if noColor {
		color.NoColor = true
	} else {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
