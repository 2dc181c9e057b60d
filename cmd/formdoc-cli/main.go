package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-formdoc/internal/config"
	"github.com/goliatone/go-formdoc/internal/watch"
	"github.com/goliatone/go-formdoc/pkg/orchestrator"
	"github.com/goliatone/go-formdoc/pkg/prompt"
	"github.com/goliatone/go-formdoc/pkg/source"

	formdoc "github.com/goliatone/go-formdoc"
)

const usageText = `Usage: formdoc-cli <command> [flags]

Commands:
  questionnaire   convert a single questionnaire file
  dir             convert every questionnaire in a directory
  process         resolve and render a process type
  list-renderers  print the registered renderer names
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "questionnaire":
		err = runQuestionnaire(ctx, os.Args[2:])
	case "dir":
		err = runDir(ctx, os.Args[2:])
	case "process":
		err = runProcess(ctx, os.Args[2:])
	case "list-renderers":
		err = runListRenderers(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s", os.Args[1], usageText)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "formdoc-cli: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	logger glog.Logger
	gen    *orchestrator.Orchestrator
}

func buildApp(configPath, rendererOverride string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if rendererOverride != "" {
		cfg.Renderer = rendererOverride
	}

	logger := newLogger(cfg.Log)
	gen := formdoc.New(
		orchestrator.WithParsers(
			formdoc.NewStructuredParser(cfg.StructuredExtensions...),
			formdoc.NewDSLParser(cfg.DSLExtensions...),
		),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithLogger(logger),
	)
	return &app{cfg: cfg, logger: logger, gen: gen}, nil
}

func newLogger(cfg config.Log) glog.Logger {
	options := []glog.Option{}
	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		options = append(options, glog.WithLoggerTypeConsole())
	}
	return glog.NewLogger(options...).GetLogger("formdoc")
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return ""
	}
}

func runQuestionnaire(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("questionnaire", flag.ExitOnError)
	configPath := flags.String("config", config.DefaultPath, "configuration file")
	renderer := flags.String("renderer", "", "renderer to use")
	output := flags.String("output", "", "output file (stdout if empty)")
	flags.Parse(args)

	if flags.NArg() != 1 {
		return errors.New("questionnaire: exactly one input file is required")
	}

	cli, err := buildApp(*configPath, *renderer)
	if err != nil {
		return err
	}

	result, err := cli.gen.ConvertFile(ctx, source.FromFile(flags.Arg(0)), "")
	if err != nil {
		return err
	}
	logDiagnostics(cli.logger, flags.Arg(0), result)

	return emit(*output, result.Output)
}

func runDir(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("dir", flag.ExitOnError)
	configPath := flags.String("config", config.DefaultPath, "configuration file")
	renderer := flags.String("renderer", "", "renderer to use")
	watchMode := flags.Bool("watch", false, "re-convert when input files change")
	flags.Parse(args)

	if flags.NArg() != 2 {
		return errors.New("dir: input and output directories are required")
	}
	inDir, outDir := flags.Arg(0), flags.Arg(1)

	cli, err := buildApp(*configPath, *renderer)
	if err != nil {
		return err
	}

	convert := func() error {
		results, err := cli.gen.ConvertDir(ctx, inDir, outDir, "")
		if err != nil {
			return err
		}
		failed := 0
		for _, result := range results {
			if result.Err != nil {
				failed++
			}
		}
		cli.logger.Info("directory converted", "files", len(results), "failed", failed)
		return nil
	}

	if err := convert(); err != nil {
		return err
	}
	if !*watchMode {
		return nil
	}

	watcher, err := watch.New(inDir, cli.cfg.Debounce())
	if err != nil {
		return err
	}
	cli.logger.Info("watching for changes", "dir", inDir)
	err = watcher.Run(ctx, convert, func(err error) {
		cli.logger.Error("watch error", "error", err)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runProcess(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("process", flag.ExitOnError)
	configPath := flags.String("config", config.DefaultPath, "configuration file")
	renderer := flags.String("renderer", "", "renderer to use")
	selector := flags.String("type", "", "process type selector (prompted when empty)")
	output := flags.String("output", "", "output file (stdout if empty)")
	flags.Parse(args)

	if flags.NArg() != 1 {
		return errors.New("process: exactly one process document is required")
	}
	path := flags.Arg(0)

	cli, err := buildApp(*configPath, *renderer)
	if err != nil {
		return err
	}

	value := *selector
	if value == "" {
		value, err = promptSelector(ctx, cli.gen, source.FromFile(path))
		if err != nil {
			return err
		}
	}

	result, ok, err := cli.gen.ResolveProcessType(ctx, source.FromFile(path), value, "")
	if err != nil {
		return err
	}
	if !ok {
		known, listErr := cli.gen.ProcessTypeValues(ctx, source.FromFile(path))
		if listErr == nil && len(known) > 0 {
			return fmt.Errorf("process: unknown type %q, known types: %s", value, strings.Join(known, ", "))
		}
		return fmt.Errorf("process: unknown type %q", value)
	}
	logDiagnostics(cli.logger, path, result)

	return emit(*output, result.Output)
}

// promptSelector lists the document's process types in an interactive select,
// falling back to free-text input when none are discoverable.
func promptSelector(ctx context.Context, gen *orchestrator.Orchestrator, src source.Source) (string, error) {
	driver := prompt.NewSurveyDriver()

	values, err := gen.ProcessTypeValues(ctx, src)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return driver.Input(ctx, prompt.InputConfig{Message: "Enter a process type:"})
	}
	return driver.Select(ctx, prompt.SelectConfig{
		Message: "Select a process type:",
		Options: values,
	})
}

func runListRenderers(args []string) error {
	flags := flag.NewFlagSet("list-renderers", flag.ExitOnError)
	configPath := flags.String("config", config.DefaultPath, "configuration file")
	flags.Parse(args)

	cli, err := buildApp(*configPath, "")
	if err != nil {
		return err
	}
	for _, name := range cli.gen.Renderers() {
		fmt.Println(name)
	}
	return nil
}

func logDiagnostics(logger glog.Logger, path string, result orchestrator.Result) {
	for _, d := range result.Diagnostics {
		logger.Warn("parse diagnostic", "file", path, "code", string(d.Code), "detail", d.Message)
	}
}

func emit(path string, output []byte) error {
	if path == "" {
		fmt.Println(string(output))
		return nil
	}
	if err := os.WriteFile(path, output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Output written to %s\n", path)
	return nil
}
