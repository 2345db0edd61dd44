package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"skinvault/internal/rarity"
	"skinvault/internal/skins"
)

var errRunFailed = errors.New("skins could not be loaded")

func skinsCmd() *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "skins",
		Short: "List owned skins with rarity, chroma and mastery detail",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				return emit(os.Stdout, app.GetSkins(ctx), summary)
			})
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a short text summary instead of JSON")
	return cmd
}

func refreshCmd() *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the skin list after clearing cached reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				return emit(os.Stdout, app.RefreshSkins(ctx), summary)
			})
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a short text summary instead of JSON")
	return cmd
}

func locateCmd() *cobra.Command {
	var showPassword bool
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Find the running League client and print its connection details",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				creds, err := app.Locate(ctx)
				if err != nil {
					return fmt.Errorf("%s: %w", notRunningMessage, err)
				}
				out := map[string]any{
					"name":      creds.ProcessName,
					"processId": creds.PID,
					"port":      creds.Port,
					"protocol":  creds.Protocol,
					"password":  creds.MaskedPassword(),
				}
				if showPassword {
					out["password"] = creds.Password
				}
				return writeJSON(os.Stdout, out)
			})
		},
	}
	cmd.Flags().BoolVar(&showPassword, "show-password", false, "Print the password unmasked")
	return cmd
}

func watchCmd() *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the skin list again whenever the inventory changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				return app.Watch(ctx, func(resp Response) {
					if err := emit(os.Stdout, resp, summary); err != nil && !errors.Is(err, errRunFailed) {
						fmt.Fprintln(os.Stderr, "Error:", err)
					}
				})
			})
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a short text summary instead of JSON")
	return cmd
}

func pricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Scrape skin prices from the wiki as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				prices, err := app.Prices(ctx)
				if err != nil {
					return err
				}
				return writeJSON(os.Stdout, prices)
			})
		},
	}
}

// emit writes a response. A failed response is still written, then reported as errRunFailed.
func emit(w io.Writer, resp Response, summary bool) error {
	var err error
	if summary && resp.Success {
		err = writeSummary(w, resp.Data)
	} else {
		err = writeJSON(w, resp)
	}
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%w: %s", errRunFailed, resp.Reason)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSummary(w io.Writer, result *skins.Result) error {
	stats := result.Stats
	fmt.Fprintf(w, "%s (level %d), patch %s\n", result.Summoner.DisplayName, result.Summoner.Level, result.Version)
	fmt.Fprintf(w, "Owned skins: %d / %d across %d champions\n", stats.TotalOwned, stats.TotalAvailable, stats.Champions)

	tiers := slices.Clone(rarity.Tiers)
	slices.Reverse(tiers)
	for _, tier := range tiers {
		if n := stats.ByTier[tier]; n > 0 {
			fmt.Fprintf(w, "  %-13s %d\n", tier.Label(), n)
		}
	}

	fmt.Fprintf(w, "Legacy: %d\n", stats.Legacy)
	_, err := fmt.Fprintf(w, "Chromas: %d / %d\n", stats.ChromasOwned, stats.ChromasTotal)
	return err
}
