package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"stagedtimer/internal/apperr"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err != nil && !errors.Is(err, apperr.ErrCancelled) && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(apperr.ExitCode(err))
}
