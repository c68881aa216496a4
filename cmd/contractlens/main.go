// Command contractlens browses public procurement contracts from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/contractlens/contractlens/internal/api"
	"github.com/contractlens/contractlens/internal/cli"
	"github.com/contractlens/contractlens/pkg/version"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitAPIError = 3
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(extractExitCode(err))
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.NewRootCmd(version.GetVersion()).ExecuteContext(ctx)
}

// extractExitCode maps an error to the process exit code. Failures reported by
// the contract API exit with a distinct code so scripts can tell them apart from
// usage errors.
func extractExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return exitAPIError
	}
	return exitFailure
}
