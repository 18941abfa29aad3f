package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	verbose := false
	if flags, _, err := parseFlags(os.Args[1:]); err == nil {
		verbose = flags.common.verbose
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], DefaultEnv())
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v%s\n", err, errorHints(err))
	}
	os.Exit(exitCodeFor(err))
}

// run parses args (without the program name) and dispatches.
func run(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	switch {
	case flags.common.help:
		printUsage(env.Stdout)
		return nil
	case flags.common.version:
		fmt.Fprintf(env.Stdout, "outline2html %s\n", Version)
		return nil
	}

	return runConvert(ctx, positional, flags, env)
}
