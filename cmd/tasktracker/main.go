// Command tasktracker is the CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nibzard/tasktracker/cmd"
)

func main() {
	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Run the CLI
	err := cmd.Run(ctx, os.Args[1:])
	os.Exit(exitCode(ctx, err, os.Stderr))
}

// exitCode reports err and picks the process exit status. A command that
// handled the interrupt itself and returned nil exits normally.
func exitCode(ctx context.Context, err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if ctx.Err() != nil {
		fmt.Fprintf(stderr, "\nInterrupted\n")
		return 130
	}
	if !cmd.IsReported(err) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}
