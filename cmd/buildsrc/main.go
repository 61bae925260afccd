// Package main is the entry point for the buildsrc CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildsrc/cmd/buildsrc/commands"
	"go.trai.ch/buildsrc/internal/app"
	"go.trai.ch/buildsrc/internal/core/ports"
	_ "go.trai.ch/buildsrc/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { closeTracer(c.Tracer, os.Stderr) }, nil
	}))
}

// closeTracer flushes the tracer if it holds an open recording.
func closeTracer(tracer ports.Tracer, stderr io.Writer) {
	c, ok := tracer.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error: failed to close tracer: "+err.Error())
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, provider ComponentProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)
	if l, ok := components.Logger.(interface{ SetJSON(bool) }); ok {
		cli.SetJSONHook(l.SetJSON)
	}
	if t, ok := components.Tracer.(interface{ SetOutput(io.Writer) }); ok {
		cli.SetProgressHook(func(enabled bool) {
			if enabled {
				t.SetOutput(stderr)
			}
		})
	}

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
