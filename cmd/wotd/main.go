package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-wotd/internal/cli"
	"github.com/alnah/go-wotd/internal/config"
	"github.com/alnah/go-wotd/internal/lang"
	"github.com/alnah/go-wotd/internal/logging"
	"github.com/alnah/go-wotd/internal/prompt"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitGeneral     = 1
	ExitUsage       = 2
	ExitSetup       = 3
	ExitValidation  = 4
	ExitUnavailable = 5
	ExitInterrupt   = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := cli.DefaultEnv()
	rootCmd := newRootCmd(env)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(exitCode(err))
	}
}

// newRootCmd assembles the command tree.
func newRootCmd(env *cli.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "wotd",
		Short:   "Learn a word of the day from an LLM",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(cli.WordCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))
	return rootCmd
}

// exitCode maps errors to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Interrupt wins over whatever the fetch was doing when it stopped.
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Setup errors (ExitSetup = 3).
	if errors.Is(err, cli.ErrAPIKeyMissing) || errors.Is(err, cli.ErrInvalidProvider) ||
		errors.Is(err, config.ErrInvalid) || errors.Is(err, config.ErrUnknownKey) ||
		errors.Is(err, config.ErrNotDirectory) || errors.Is(err, config.ErrNotWritable) ||
		errors.Is(err, logging.ErrInvalidLevel) {
		return ExitSetup
	}

	// Validation errors (ExitValidation = 4).
	if errors.Is(err, lang.ErrInvalid) || errors.Is(err, lang.ErrSamePair) ||
		errors.Is(err, prompt.ErrUnknownStyle) || errors.Is(err, cli.ErrOutputExists) ||
		errors.Is(err, cli.ErrInvalidDuration) || errors.Is(err, cli.ErrInvalidAttempts) {
		return ExitValidation
	}

	// Every candidate failed (ExitUnavailable = 5).
	if errors.Is(err, cli.ErrWordUnavailable) {
		return ExitUnavailable
	}

	// Cobra usage errors carry no sentinel, so they are matched by message
	// only after every typed error has been ruled out.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"unknown command",        // Subcommand doesn't exist
	"unknown flag",           // Flag doesn't exist
	"unknown shorthand",      // Short flag doesn't exist
	"flag needs an argument", // Flag provided without value
	"invalid argument",       // Invalid flag value type
	"accepts ",               // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",      // Too few arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
