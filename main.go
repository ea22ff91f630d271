package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudposse/cluster-testkit/cmd"
	errUtils "github.com/cloudposse/cluster-testkit/errors"
	log "github.com/cloudposse/cluster-testkit/pkg/logger"
)

func main() {
	// The first signal cancels the command context so a load run can stop
	// and report. A second signal gets the default behavior and kills the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()

	code := run(ctx)
	stop()

	// Use errUtils.OsExit to allow test interception (Go 1.25+ panics on os.Exit in tests).
	errUtils.OsExit(code)
}

// run executes the main application logic and returns an exit code.
// This separation allows proper cleanup via defer before os.Exit in main().
func run(ctx context.Context) int {
	defer cmd.Cleanup()

	err := cmd.Execute(ctx)
	if err != nil {
		// Format and print error using centralized formatter.
		formatted := errUtils.Format(err, errUtils.DefaultFormatterConfig())
		os.Stderr.WriteString(formatted + "\n")

		exitCode := errUtils.GetExitCode(err)
		log.Debug("Exiting with exit code", "code", exitCode)
		return exitCode
	}

	return 0
}
