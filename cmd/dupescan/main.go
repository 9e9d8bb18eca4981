package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/dupescan/internal/config"
	"github.com/bamsammich/dupescan/internal/engine"
	"github.com/bamsammich/dupescan/internal/event"
	"github.com/bamsammich/dupescan/internal/filter"
	"github.com/bamsammich/dupescan/internal/report"
	"github.com/bamsammich/dupescan/internal/stats"
	"github.com/bamsammich/dupescan/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// filterFlag is a custom pflag.Value that preserves CLI ordering of
// --exclude and --include rules by appending to a shared filter.Chain.
type filterFlag struct {
	chain   *filter.Chain
	include bool
}

func (*filterFlag) String() string { return "" }
func (*filterFlag) Type() string   { return "string" }

func (f *filterFlag) Set(val string) error {
	if f.include {
		return f.chain.AddInclude(val)
	}
	return f.chain.AddExclude(val)
}

// options holds parsed flag values.
type options struct {
	format     string
	workers    int
	algorithm  string
	minSize    string
	maxSize    string
	filterFile string
	logFile    string
	quiet      bool
	verbose    bool
	noProgress bool
	version    bool
}

//nolint:revive // cognitive-complexity: CLI entry point wires every flag into the run
func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	chain := filter.NewChain()

	rootCmd := &cobra.Command{
		Use:   "dupescan [flags] <dir1> <dir2>",
		Short: "Find files with identical content across two directory trees",
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(stdout, "dupescan %s\n", version)
				return nil
			}
			return scan(cmd, args[0], args[1], &opts, chain, stdout, stderr)
		},
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.version, "version", false, "print version and exit")
	flags.StringVarP(&opts.format, "format", "f", "text", "output format: text, json or table")
	flags.IntVarP(&opts.workers, "workers", "n", 0, "number of hashing workers (default: NumCPU)")
	flags.StringVar(&opts.algorithm, "algorithm", "sha256", "content digest: sha256 or blake3")
	flags.StringVar(&opts.minSize, "min-size", "", "skip files smaller than SIZE (e.g. 1M, 100K)")
	flags.StringVar(&opts.maxSize, "max-size", "", "skip files larger than SIZE (e.g. 1G, 500M)")
	flags.Var(&filterFlag{chain: chain}, "exclude", "exclude paths matching PATTERN (repeatable)")
	flags.Var(&filterFlag{chain: chain, include: true}, "include", "include paths matching PATTERN (repeatable)")
	flags.StringVar(&opts.filterFile, "filter", "", "read filter rules from FILE")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress and summary output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "disable the progress bar")
	flags.StringVar(&opts.logFile, "log", "", "write structured JSON log to FILE")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "exclude" || f.Name == "include" {
			f.NoOptDefVal = ""
		}
	})

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", exitErr.err)
			}
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

//nolint:gocyclo // sequential setup steps
func scan(
	cmd *cobra.Command,
	dirA, dirB string,
	opts *options,
	chain *filter.Chain,
	stdout, stderr io.Writer,
) error {
	for _, dir := range []string{dirA, dirB} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
	}

	cfg, cfgErr := config.Load()
	applyConfigDefaults(cmd, cfg.Defaults, opts)
	for _, pattern := range cfg.Defaults.Exclude {
		if err := chain.AddExclude(pattern); err != nil {
			return fmt.Errorf("config exclude %q: %w", pattern, err)
		}
	}

	logger, closeLog, err := setupLogging(opts, stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)
	if cfgErr != nil {
		logger.Warn("failed to load config", "path", config.Path(), "error", cfgErr)
	}

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	algo, err := engine.ParseAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}
	if opts.filterFile != "" {
		if err := chain.LoadFile(opts.filterFile); err != nil {
			return fmt.Errorf("load filter file: %w", err)
		}
	}
	if opts.minSize != "" {
		n, err := filter.ParseSize(opts.minSize)
		if err != nil {
			return fmt.Errorf("invalid --min-size: %w", err)
		}
		chain.SetMinSize(n)
	}
	if opts.maxSize != "" {
		n, err := filter.ParseSize(opts.maxSize)
		if err != nil {
			return fmt.Errorf("invalid --max-size: %w", err)
		}
		chain.SetMaxSize(n)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	isTTY, width := false, 0
	if f, ok := stderr.(*os.File); ok {
		isTTY = ui.IsTTY(f.Fd())
		width = ui.TermWidth(f.Fd())
	}
	presenter := ui.NewPresenter(ui.Config{
		Writer:     stderr,
		IsTTY:      isTTY,
		Quiet:      opts.quiet,
		NoProgress: opts.noProgress,
		Width:      width,
	})

	collector := stats.NewCollector()
	events := make(chan event.Event, 256)
	var logWg sync.WaitGroup
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		logEvents(ctx, logger, events)
	}()

	engineCfg := engine.Config{
		RootA:     dirA,
		RootB:     dirB,
		Workers:   opts.workers,
		Algorithm: algo,
		Progress:  presenter.Update,
		Events:    events,
		Stats:     collector,
	}
	if !chain.Empty() {
		engineCfg.Filter = chain
	}

	logger.Debug("starting scan",
		"roots", []string{dirA, dirB},
		"workers", opts.workers,
		"algorithm", string(algo),
		"format", string(format),
	)

	if !opts.quiet {
		fmt.Fprintln(stderr, "Scanning for duplicate files...")
		fmt.Fprintf(stderr, "Directory 1: %s\n", dirA)
		fmt.Fprintf(stderr, "Directory 2: %s\n", dirB)
	}

	result := engine.Run(ctx, engineCfg)
	presenter.Finish()
	close(events)
	logWg.Wait()
	if n := result.Stats.EventsDropped; n > 0 {
		logger.Warn("events dropped", "count", n)
	}

	if result.Err != nil {
		logger.Error("scan failed", "error", result.Err)
		return &exitError{code: 1, err: result.Err}
	}

	logger.Debug("scan complete", "stats", result.Stats.String())

	if err := report.Write(stdout, result.Groups, report.Options{Format: format, HashLabel: algo.Label()}); err != nil {
		return &exitError{code: 1, err: fmt.Errorf("write report: %w", err)}
	}
	if !opts.quiet {
		_ = report.WriteSummary(stderr, result.Groups)
		if opts.verbose {
			fmt.Fprintln(stderr, ui.CompletionSummary(result.Stats))
		}
	}
	return nil
}

// setupLogging builds the run logger: text on stderr at a level chosen by
// --verbose/--quiet, fanned out to a JSON file when --log is set.
func setupLogging(opts *options, stderr io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	switch {
	case opts.verbose:
		level = slog.LevelDebug
	case opts.quiet:
		level = slog.LevelError
	}
	var handler slog.Handler = slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})

	closeLog := func() {}
	if opts.logFile != "" {
		lf, err := os.Create(opts.logFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		closeLog = func() { _ = lf.Close() }
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		handler = ui.NewMultiHandler(handler, jsonHandler)
	}

	return slog.New(handler).With("run", uuid.NewString()), closeLog, nil
}

// logEvents writes one structured record per engine event until events closes.
func logEvents(ctx context.Context, logger *slog.Logger, events <-chan event.Event) {
	for ev := range events {
		attrs := []slog.Attr{slog.String("type", ev.Type.String())}
		if ev.Path != "" {
			attrs = append(attrs, slog.String("path", ev.Path))
		}
		if ev.Size > 0 {
			attrs = append(attrs, slog.Int64("size", ev.Size))
		}
		if ev.Total > 0 {
			attrs = append(attrs, slog.Int64("total", ev.Total))
		}
		level := slog.LevelDebug
		if ev.Error != nil {
			attrs = append(attrs, slog.String("error", ev.Error.Error()))
		}
		if ev.Type.Failure() {
			level = slog.LevelWarn
		}
		logger.LogAttrs(ctx, level, "dupescan.event", attrs...)
	}
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, opts *options) {
	changed := cmd.Flags().Changed
	if !changed("workers") && defaults.Workers != nil {
		opts.workers = *defaults.Workers
	}
	if !changed("algorithm") && defaults.Algorithm != nil {
		opts.algorithm = *defaults.Algorithm
	}
	if !changed("format") && defaults.Format != nil {
		opts.format = *defaults.Format
	}
	if !changed("min-size") && defaults.MinSize != nil {
		opts.minSize = *defaults.MinSize
	}
	if !changed("max-size") && defaults.MaxSize != nil {
		opts.maxSize = *defaults.MaxSize
	}
	if !changed("no-progress") && defaults.Progress != nil {
		opts.noProgress = !*defaults.Progress
	}
}

// exitError carries a process exit code out of RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }
