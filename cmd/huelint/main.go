package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"huelint/internal/config"
	"huelint/internal/cssnorm"
	"huelint/internal/report"
	"huelint/internal/runner"
	"huelint/internal/tokens"
	"huelint/internal/utility"
)

var htmlExts = map[string]bool{
	".html":  true,
	".htm":   true,
	".xhtml": true,
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "huelint",
		Usage:           "checks rendered text color contrast in component files",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "level", Usage: "failing conformance level: aa or aaa"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output format: console or json"},
			&cli.StringSliceFlag{Name: "tokens", Aliases: []string{"t"}, Usage: "design token `FILE` (json, yaml or css), repeatable"},
			&cli.StringSliceFlag{Name: "css", Usage: "extra stylesheet `FILE` applied to every document, repeatable"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Action:    run,
		ArgsUsage: "PATH...",
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			var failures exitFailures
			if !errors.As(err, &failures) {
				fmt.Fprintf(os.Stderr, "huelint: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

// exitFailures signals a clean run that found contrast failures.
type exitFailures int

func (e exitFailures) Error() string {
	return fmt.Sprintf("%d contrast failure(s)", int(e))
}

func run(_ context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd.Bool("verbose"))
	if err != nil {
		return err
	}
	defer log.Sync()

	if cmd.NArg() == 0 {
		return fmt.Errorf("no input paths given")
	}

	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	level := firstOf(cmd.String("level"), cfg.Level, "aa")
	format := firstOf(cmd.String("format"), cfg.Format, "console")
	switch level {
	case "aa", "aaa":
	default:
		return fmt.Errorf("unknown level %q", level)
	}

	opts, err := buildOptions(cfg, cmd.StringSlice("tokens"), cmd.StringSlice("css"), log)
	if err != nil {
		return err
	}

	files, err := collectFiles(cmd.Args().Slice())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no component files found")
	}
	log.Debug("analyzing", zap.Int("files", len(files)), zap.String("level", level))

	results := analyzeAll(files, opts)

	switch format {
	case "json":
		if err := report.JSON(os.Stdout, results); err != nil {
			return err
		}
	case "console":
		report.Console(os.Stdout, results)
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	failures := 0
	for _, res := range results {
		failures += res.FailureCount(level)
	}
	if failures > 0 {
		return exitFailures(failures)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Discover(wd)
}

func buildOptions(cfg *config.Config, tokenFiles, cssFiles []string, log *zap.Logger) (runner.Options, error) {
	opts := runner.Options{
		Ignore:  cfg.IgnoreConfig(),
		Utility: utility.Default(),
	}

	var errs error
	maps := []map[string]string{}
	for _, path := range append(append([]string{}, cfg.Tokens...), tokenFiles...) {
		m, err := tokens.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("tokens %s: %w", path, err))
			continue
		}
		maps = append(maps, m)
	}
	opts.Tokens = tokens.Merge(maps...)

	for _, path := range append(append([]string{}, cfg.Stylesheets...), cssFiles...) {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("stylesheet %s: %w", path, err))
			continue
		}
		rules, props, err := cssnorm.Normalize(string(data))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("stylesheet %s: %w", path, err))
			continue
		}
		opts.ExtraRules = append(opts.ExtraRules, rules...)
		opts.ExtraProps = cssnorm.MergeProperties(opts.ExtraProps, props)
		log.Debug("loaded stylesheet", zap.String("path", path), zap.Int("rules", len(rules)))
	}
	return opts, errs
}

// collectFiles expands arguments to component files. Directories are
// walked recursively; explicit file arguments are taken as-is.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != arg {
					return filepath.SkipDir
				}
				return nil
			}
			if htmlExts[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// analyzeAll fans out one goroutine per file; Options is read-only so
// runs share it without coordination.
func analyzeAll(files []string, opts runner.Options) []runner.FileResult {
	results := make([]runner.FileResult, len(files))
	var wg sync.WaitGroup
	for i, path := range files {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i] = runner.RunFile(path, opts)
		}(i, path)
	}
	wg.Wait()
	return results
}
