// File: cmd/passgauge/main.go

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/salman3757/passgauge/cmd"
	"github.com/salman3757/passgauge/internal/observability"
)

const panicLogFile = "panic.log"

const banner = `passgauge -- password synthesis and strength estimation
Type a command ("generate", "analyze <password>", "help"), or "exit" to leave.
`

// Function variables support mocking in tests.
var (
	osWriteFile = os.WriteFile
	osExit      = os.Exit
)

func main() {
	defer handlePanic()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// With arguments, run a single command and exit.
	if len(os.Args) > 1 {
		if err := cmd.Execute(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				// Interrupted runs are a clean exit.
				osExit(0)
			}
			osExit(1)
		}
		return
	}

	runInteractive(ctx)
}

// runInteractive drops into a simple read-eval loop. Each line executes on a
// fresh command tree so flag and config state never leaks between commands.
func runInteractive(ctx context.Context) {
	fmt.Print(banner)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("passgauge > ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		executeInteractiveCommand(ctx, line)

		if ctx.Err() != nil {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading from stdin:", err)
		osExit(1)
	}

	fmt.Println("Exiting passgauge.")
}

// executeInteractiveCommand runs one shell line. A panicking command must not
// take the whole shell down with it.
func executeInteractiveCommand(ctx context.Context, line string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Error: command panicked: %v\n", r)
		}
	}()

	rootCmd := cmd.NewRootCommand()
	rootCmd.SetArgs(strings.Fields(line))

	if err := rootCmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
}

// handlePanic writes crash details to panic.log before exiting non-zero, so
// users have something to attach to a bug report.
func handlePanic() {
	r := recover()
	if r == nil {
		return
	}

	observability.Sync()

	panicMessage := fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())
	if err := osWriteFile(panicLogFile, []byte(panicMessage), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to write panic log: %v\n", err)
		fmt.Fprintf(os.Stderr, "Panic details:\n%s\n", panicMessage)
		osExit(1)
		return
	}

	fmt.Fprintf(os.Stderr, "\nA crash was detected. Details were written to %s\n", panicLogFile)
	osExit(1)
}
