package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rsned/runeword-tracker/internal/tracker/mcp"
	"github.com/rsned/runeword-tracker/internal/tracker/sync"
	"github.com/rsned/runeword-tracker/pkg/tracker"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := mcp.NewServer(a.engine, a.logger)
			a.logger.Info("starting MCP server", "db", a.cfg.Database)
			if err := server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && ctx.Err() == nil {
				return fmt.Errorf("server error: %w", err)
			}
			a.logger.Info("server stopped")
			return nil
		}),
	}
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the runeword catalog from a JSON file",
		Long:  "Replace the runeword catalog from a JSON file. Without an argument the configured catalog is imported again.",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			path := a.cfg.Catalog
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no catalog file given and none configured")
			}

			report, err := sync.NewSyncer(a.db, a.logger).ImportRunewordsFromFile(cmd.Context(), path)
			if err != nil {
				return err
			}
			renderImport(a.out, report)
			return nil
		}),
	}
}

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "add <rune>...",
		Short:   "Add runes to the inventory",
		Example: "  runeword-tracker add ber ist2 \"jah\"",
		Args:    cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			resp, err := a.engine.AddRunes(cmd.Context(), tracker.RunesRequest{Runes: args})
			if err != nil {
				return err
			}
			renderRunes(a.out, "Added", resp)
			return nil
		}),
	}
}

func newTossCmd(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "toss [rune]...",
		Short: "Remove runes from the inventory",
		Args: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("name at least one rune or pass --all")
			}
			return nil
		},
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			resp, err := a.engine.TossRunes(cmd.Context(), tracker.RunesRequest{Runes: args, AllTossable: all})
			if err != nil {
				return err
			}
			renderRunes(a.out, "Tossed", resp)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&all, "all", false, "toss every rune no shown runeword needs")
	return cmd
}

func newIgnoreCmd(opts *options) *cobra.Command {
	var itemType bool
	cmd := &cobra.Command{
		Use:   "ignore <name>",
		Short: "Toggle ignoring a runeword or item type",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			name := strings.Join(args, " ")
			req := tracker.ToggleIgnoreRequest{Runeword: name}
			if itemType {
				req = tracker.ToggleIgnoreRequest{ItemType: name}
			}

			resp, err := a.engine.ToggleIgnore(cmd.Context(), req)
			if err != nil {
				return err
			}
			state := "no longer ignored"
			if resp.Ignored {
				state = "ignored"
			}
			fmt.Fprintf(a.out, "%s %s\n", strings.Join(resp.Names, ", "), state)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&itemType, "type", "t", false, "toggle an item type instead of a runeword")
	return cmd
}

func newThresholdCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "threshold <value>",
		Short: "Set the minimum progress a runeword needs to be shown",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			v, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
			if err != nil {
				return fmt.Errorf("parsing threshold %q: %w", args[0], err)
			}
			if strings.HasSuffix(args[0], "%") {
				v /= 100
			}

			prefs, err := a.engine.SetThreshold(cmd.Context(), tracker.SetThresholdRequest{Threshold: v})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "threshold set to %s\n", percent(prefs.Threshold))
			return nil
		}),
	}
}

func newSortCmd(opts *options) *cobra.Command {
	keys := make([]string, 0, len(tracker.ValidSortKeys()))
	for _, k := range tracker.ValidSortKeys() {
		keys = append(keys, string(k))
	}

	return &cobra.Command{
		Use:       "sort <key>",
		Short:     "Set the runeword sort key (" + strings.Join(keys, ", ") + ")",
		Args:      cobra.ExactArgs(1),
		ValidArgs: keys,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			prefs, err := a.engine.SetSort(cmd.Context(), tracker.SetSortRequest{Sort: tracker.SortKey(strings.ToLower(args[0]))})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "sorting by %s\n", prefs.Sort)
			return nil
		}),
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show runewords in reach, tossable runes and the inventory",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			resp, err := a.engine.Status(cmd.Context(), tracker.StatusRequest{Limit: limit})
			if err != nil {
				return err
			}
			renderStatus(a.out, resp)
			return nil
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many runewords (0 for all)")
	return cmd
}

func newInventoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Show the owned runes",
		Args:    cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			resp, err := a.engine.Inventory(cmd.Context())
			if err != nil {
				return err
			}
			renderInventory(a.out, *resp)
			return nil
		}),
	}
}

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info <runeword>",
		Short: "Show a runeword and how close the inventory is to it",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app, args []string) error {
			resp, err := a.engine.RunewordInfo(cmd.Context(), tracker.RunewordInfoRequest{Name: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			renderInfo(a.out, resp)
			return nil
		}),
	}
}
