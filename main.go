// Command skinvault lists the League of Legends skins owned by the logged-in player.
//
// Usage:
//
//	skinvault skins [--summary]
//	skinvault refresh
//	skinvault locate [--show-password]
//	skinvault watch
//	skinvault prices
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	fxmodules "skinvault/internal/fx"
)

func main() {
	root := &cobra.Command{
		Use:           "skinvault",
		Short:         "Inspect your League of Legends skin collection",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(skinsCmd())
	root.AddCommand(refreshCmd())
	root.AddCommand(locateCmd())
	root.AddCommand(watchCmd())
	root.AddCommand(pricesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// withApp wires the application graph and runs fn until it returns or the process is interrupted
func withApp(fn func(ctx context.Context, app *App) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var app *App
	graph := fx.New(
		fxmodules.Module,
		fx.Provide(NewApp),
		fx.NopLogger,
		fx.Populate(&app),
	)
	if err := graph.Err(); err != nil {
		return fmt.Errorf("wire application: %w", err)
	}

	return fn(ctx, app)
}
