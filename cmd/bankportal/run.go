package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
)

// run starts app, blocks until ctx is cancelled or fx asks to shut down,
// and returns the process exit code.
func run(ctx context.Context, app *fx.App, stderr io.Writer) int {
	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintf(stderr, "failed to start bankportal: %v\n", err)
		return 1
	}

	code := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		code = sig.ExitCode
	}

	stopCtx, cancelStop := context.WithTimeout(context.WithoutCancel(ctx), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "failed to stop bankportal: %v\n", err)
		return 1
	}
	return code
}

func exit(code int) {
	if code != 0 {
		os.Exit(code)
	}
}
