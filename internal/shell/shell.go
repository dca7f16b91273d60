// Package shell implements the interactive command loop.
//
// Each input line is split into words the way a POSIX shell would split them,
// so quoted descriptions stay together. Operator characters such as ; & | < >
// are ordinary word characters. The first word selects a command and the rest
// are its positional arguments.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mattn/go-shellwords"

	"github.com/nibzard/tasktracker/internal/logging"
	"github.com/nibzard/tasktracker/internal/task"
	"github.com/nibzard/tasktracker/internal/tracker"
)

// State is the dispatcher state.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

const (
	prompt    = "\n> "
	banner    = "📝 Task Tracker CLI (type 'exit' to quit)"
	farewell  = "Exited."
	maxLineSz = 1024 * 1024
)

var (
	// ErrUnknownCommand is returned by Execute for unrecognized commands.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUnsupportedSyntax is returned by Split when input would be cut short.
	ErrUnsupportedSyntax = errors.New("unsupported shell syntax")
)

// operatorChars are special to go-shellwords outside quotes.
const operatorChars = ";&|<>`$()"

// Split tokenizes one input line. Quoting and backslash escapes work as in a
// POSIX shell; operator characters stay inside words instead of ending the
// command line.
func Split(line string) ([]string, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(escapeOperators(line))
	if err != nil {
		return nil, err
	}
	// Position is set when parsing stopped before the end of the line.
	if parser.Position > 0 {
		return nil, fmt.Errorf("%w near column %d", ErrUnsupportedSyntax, parser.Position)
	}
	return args, nil
}

// escapeOperators backslash-escapes operator characters that are outside
// quotes and not already escaped.
func escapeOperators(line string) string {
	var b strings.Builder
	var single, double, escaped bool
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !single:
			escaped = true
		case r == '\'' && !double:
			single = !single
		case r == '"' && !single:
			double = !double
		case !single && !double && strings.ContainsRune(operatorChars, r):
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Shell reads commands from an input stream and runs them against a
// tracker.Service, printing one report per command.
type Shell struct {
	svc    *tracker.Service
	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger for dispatcher diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Shell reading from in and writing reports to out.
func New(svc *tracker.Service, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		svc:    svc,
		in:     in,
		out:    out,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run prints the banner and processes lines until exit, end of input, or
// cancellation of ctx. Cancellation while waiting for input prints a farewell
// and returns nil.
func (s *Shell) Run(ctx context.Context) error {
	s.logger = s.logger.With("session", uuid.NewString())
	s.logger.Debug("session started")

	fmt.Fprintln(s.out, banner)
	fmt.Fprintln(s.out, availableCommands())

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(s.in, done)

	state := Running
	for state == Running {
		fmt.Fprint(s.out, prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, farewell)
			s.logger.Debug("session interrupted")
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				s.logger.Debug("input closed")
				return <-readErr
			}
			state = s.Step(line)
		}
	}

	s.logger.Debug("session ended")
	return nil
}

// Step processes a single input line and returns the resulting state.
// Failures never terminate the session; unexpected ones are reported.
func (s *Shell) Step(line string) (state State) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("command panicked", "line", line, "panic", r)
			fmt.Fprintf(s.out, "Unexpected error: %v\n", r)
			state = Running
		}
	}()

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Running
	}
	if isExit(trimmed) {
		return Terminated
	}

	args, err := Split(trimmed)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return Running
	}
	if len(args) == 0 {
		return Running
	}

	terminate, _ := s.Execute(args)
	if terminate {
		return Terminated
	}
	return Running
}

// Execute runs one already tokenized command and prints its report. It
// returns true when the command ends the session, and the command's error,
// if any, after it has been reported.
func (s *Shell) Execute(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	name := strings.ToLower(args[0])
	params := args[1:]
	s.logger.Debug("dispatch", "command", name, "args", len(params))

	var err error
	switch name {
	case cmdAdd:
		err = s.add(params)
	case cmdUpdate:
		err = s.update(params)
	case cmdDelete:
		err = s.delete(params)
	case cmdMarkInProgress:
		err = s.setStatus(name, params, task.StatusInProgress)
	case cmdMarkDone:
		err = s.setStatus(name, params, task.StatusDone)
	case cmdList:
		err = s.list(params)
	case cmdHelp:
		PrintHelp(s.out)
	case cmdExit, cmdQuit:
		return true, nil
	default:
		fmt.Fprintf(s.out, "❓ Unknown command: %s\n", name)
		fmt.Fprintln(s.out, availableCommands())
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	if err != nil {
		s.report(name, err)
	}
	return false, err
}

func (s *Shell) add(params []string) error {
	if len(params) < 1 {
		return &tracker.Error{Kind: tracker.KindMissingArgument, Op: cmdAdd}
	}
	t, err := s.svc.Add(strings.Join(params, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "✅ Task added successfully (ID: %d)\n", t.ID)
	return nil
}

func (s *Shell) update(params []string) error {
	if len(params) < 2 {
		return &tracker.Error{Kind: tracker.KindMissingArgument, Op: cmdUpdate}
	}
	id, err := tracker.ParseID(cmdUpdate, params[0])
	if err != nil {
		return err
	}
	t, err := s.svc.Update(id, strings.Join(params[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "✅ Task updated (ID: %d)\n", t.ID)
	return nil
}

func (s *Shell) delete(params []string) error {
	if len(params) < 1 {
		return &tracker.Error{Kind: tracker.KindMissingArgument, Op: cmdDelete}
	}
	id, err := tracker.ParseID(cmdDelete, params[0])
	if err != nil {
		return err
	}
	t, err := s.svc.Delete(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "🗑️ Deleted task (ID: %d)\n", t.ID)
	return nil
}

func (s *Shell) setStatus(name string, params []string, status task.Status) error {
	if len(params) < 1 {
		return &tracker.Error{Kind: tracker.KindMissingArgument, Op: name}
	}
	id, err := tracker.ParseID(name, params[0])
	if err != nil {
		return err
	}
	t, err := s.svc.SetStatus(id, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "✅ Task status updated to '%s' (ID: %d)\n", t.Status, t.ID)
	return nil
}

func (s *Shell) list(params []string) error {
	filter := ""
	if len(params) > 0 {
		filter = params[0]
	}
	tasks, err := s.svc.List(filter)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		fmt.Fprintln(s.out, t.String())
	}
	return nil
}

// report prints the user-facing message for a failed command.
func (s *Shell) report(name string, err error) {
	var te *tracker.Error
	if !errors.As(err, &te) {
		s.logger.Debug("command failed", "command", name, "err", err)
		fmt.Fprintf(s.out, "Unexpected error: %v\n", err)
		return
	}

	switch te.Kind {
	case tracker.KindMissingArgument:
		switch name {
		case cmdAdd:
			fmt.Fprintln(s.out, "Error: Description required for 'add'")
		case cmdUpdate:
			fmt.Fprintln(s.out, "Error: Task ID and new description required for 'update'")
		default:
			fmt.Fprintf(s.out, "Error: Task ID required for '%s'\n", name)
		}
	case tracker.KindNotFound:
		fmt.Fprintf(s.out, "❌ Task with ID %d not found.\n", te.ID)
	case tracker.KindInvalidID:
		fmt.Fprintf(s.out, "❌ Invalid task ID: %s\n", te.Arg)
	case tracker.KindInvalidStatus:
		fmt.Fprintf(s.out, "Error: invalid status %q\n", te.Arg)
	case tracker.KindStorage:
		s.logger.Debug("storage failure", "command", name, "err", te.Err)
		fmt.Fprintf(s.out, "Error: %v\n", te.Err)
	default:
		fmt.Fprintf(s.out, "Unexpected error: %v\n", err)
	}
}

func isExit(line string) bool {
	switch strings.ToLower(line) {
	case cmdExit, cmdQuit:
		return true
	}
	return false
}

// readLines feeds input lines into a channel until EOF or done is closed.
// The error channel receives the scanner error (or nil) once lines is closed.
func readLines(r io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSz)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}
