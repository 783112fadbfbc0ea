package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		// Exit-status errors were already rendered; just propagate the code.
		var exit *domain.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("OLLASH_DEBUG"), "1") || strings.EqualFold(os.Getenv("OLLASH_DEBUG"), "true")
}
