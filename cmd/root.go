// Package cmd implements the CLI command structure for tasktracker.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktracker/internal/config"
	"github.com/nibzard/tasktracker/internal/logging"
	"github.com/nibzard/tasktracker/internal/shell"
	"github.com/nibzard/tasktracker/internal/store"
	"github.com/nibzard/tasktracker/internal/tracker"
	"github.com/nibzard/tasktracker/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrInvalidTaskFile is returned by the check command when problems were found.
var ErrInvalidTaskFile = errors.New("task file is invalid")

// reportedError marks a failure whose message was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user, so callers
// only need to set the exit status.
func IsReported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}

// streams bundles the process I/O so commands can be tested.
type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// Run executes the tasktracker CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{in: os.Stdin, out: os.Stdout, errOut: os.Stderr})
}

func run(ctx context.Context, args []string, std streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasktracker", flag.ContinueOnError)
	fs.SetOutput(std.errOut)
	fs.Usage = func() {
		printUsage(fs, std.errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, std.out)
		return nil
	}
	if *showVersion {
		return versionCommand(std.out)
	}

	logger := logging.NewFromConfig(std.errOut, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	logger.Debug("config loaded", "task_file", cfg.TaskFile, "files", config.ConfigFiles())

	// No command starts the interactive shell
	subcommand := "shell"
	if fs.NArg() > 0 {
		subcommand = fs.Arg(0)
	}

	switch subcommand {
	case "shell":
		return shellCommand(ctx, cfg, logger, std)
	case "tui":
		return tuiCommand(ctx, cfg, logger)
	case "check":
		return checkCommand(cfg, std.out)
	case "config":
		return configCommand(cfg, std.out)
	case "version":
		return versionCommand(std.out)
	case "help":
		printUsage(fs, std.out)
		return nil
	default:
		return oneShotCommand(cfg, logger, std, fs.Args())
	}
}

func newService(cfg *config.Config, logger *log.Logger) *tracker.Service {
	st := store.NewFileStore(cfg.TaskFile, store.WithLogger(logger))
	return tracker.New(st, tracker.WithLogger(logger))
}

// shellCommand runs the interactive dispatcher until exit or interrupt.
func shellCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, std streams) error {
	svc := newService(cfg, logger)
	sh := shell.New(svc, std.in, std.out, shell.WithLogger(logger))
	return sh.Run(ctx)
}

// oneShotCommand runs a single dispatcher command given on the command line.
func oneShotCommand(cfg *config.Config, logger *log.Logger, std streams, args []string) error {
	svc := newService(cfg, logger)
	sh := shell.New(svc, std.in, std.out, shell.WithLogger(logger))
	if _, err := sh.Execute(args); err != nil {
		return &reportedError{err: err}
	}
	return nil
}

// tuiCommand launches the task browser.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	svc := newService(cfg, logger)
	return ui.RunTUI(ctx, svc, ui.WithPath(cfg.TaskFile))
}

// checkCommand validates the task file and prints every problem found.
func checkCommand(cfg *config.Config, w io.Writer) error {
	fmt.Fprintf(w, "Task file: %s\n", cfg.TaskFile)

	result, err := store.Check(cfg.TaskFile)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return &reportedError{err: err}
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return &reportedError{err: ErrInvalidTaskFile}
	}

	fmt.Fprintf(w, "  ✅ Valid (%d %s)\n", result.Tasks, plural(result.Tasks, "task", "tasks"))
	return nil
}

// configCommand prints the effective configuration and the files it came from.
func configCommand(cfg *config.Config, w io.Writer) error {
	files := config.ConfigFiles()
	fmt.Fprintln(w, "Config files:")
	if len(files) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, f := range files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Effective settings:")
	fmt.Fprintf(w, "  task_file      = %s\n", cfg.TaskFile)
	fmt.Fprintf(w, "  log_level      = %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "  log_format     = %s\n", cfg.LogFormat)
	fmt.Fprintf(w, "  log_timestamps = %t\n", cfg.LogTimestamps)
	fmt.Fprintf(w, "  log_caller     = %t\n", cfg.LogCaller)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example:")
	fmt.Fprint(w, config.ExampleConfig())
	return nil
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasktracker version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasktracker - A personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasktracker [options] [command] [args...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  shell         Start the interactive prompt (default command)")
	fmt.Fprintln(w, "  tui           Launch terminal UI")
	fmt.Fprintln(w, "  check         Validate the task file")
	fmt.Fprintln(w, "  config        Show effective configuration")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Task commands (%s) run once when given directly:\n", strings.Join(shell.CommandNames(), ", "))
	fmt.Fprintln(w, `  tasktracker add "Buy milk"`)
	fmt.Fprintln(w)
	shell.PrintHelp(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
