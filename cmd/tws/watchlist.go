package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/render"
)

func newWatchlistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watchlist",
		Aliases: []string{"wl"},
		Short:   "Manage server-side watchlists",
	}
	cmd.AddCommand(
		newWatchlistListCmd(a),
		newWatchlistCreateCmd(a),
		newWatchlistDeleteCmd(a),
		newWatchlistAddCmd(a),
		newWatchlistUpdateCmd(a),
		newWatchlistRemoveItemCmd(a),
	)
	return cmd
}

func newWatchlistListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all watchlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			lists, err := a.client.Watchlists(ctx)
			if err != nil {
				return err
			}
			for i, wl := range lists {
				if err := a.render(render.WatchlistTable(wl)); err != nil {
					return err
				}
				if i < len(lists)-1 {
					fmt.Println()
				}
			}
			return nil
		},
	}
}

func newWatchlistCreateCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.WatchlistCreate{Name: args[0]}
			if description != "" {
				req.Description = &description
			}
			ctx, cancel := a.ctx()
			defer cancel()
			wl, err := a.client.CreateWatchlist(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("created watchlist %d: %s\n", wl.ID, wl.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	return cmd
}

func newWatchlistDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a watchlist and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("watchlist id must be a number: %q", args[0])
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.client.DeleteWatchlist(ctx, id); err != nil {
				return err
			}
			fmt.Printf("deleted watchlist %d\n", id)
			return nil
		},
	}
}

func newWatchlistAddCmd(a *app) *cobra.Command {
	var (
		name  string
		notes string
	)
	cmd := &cobra.Command{
		Use:   "add <watchlist-id> <symbol>",
		Short: "Add a symbol to a watchlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("watchlist id must be a number: %q", args[0])
			}
			req := api.WatchlistItemCreate{Symbol: args[1]}
			if name != "" {
				req.StockName = &name
			}
			if notes != "" {
				req.Notes = &notes
			}
			ctx, cancel := a.ctx()
			defer cancel()
			it, err := a.client.AddWatchlistItem(ctx, id, req)
			if err != nil {
				return err
			}
			fmt.Printf("added item %d: %s\n", it.ID, it.Symbol)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "stock display name")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func newWatchlistUpdateCmd(a *app) *cobra.Command {
	var (
		notes  string
		active bool
	)
	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Update a watchlist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("item id must be a number: %q", args[0])
			}
			var req api.WatchlistItemUpdate
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}
			if cmd.Flags().Changed("active") {
				req.IsActive = &active
			}
			ctx, cancel := a.ctx()
			defer cancel()
			it, err := a.client.UpdateWatchlistItem(ctx, id, req)
			if err != nil {
				return err
			}
			fmt.Printf("updated item %d: %s\n", it.ID, it.Symbol)
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVar(&active, "active", true, "whether alerts fire for this item")
	return cmd
}

func newWatchlistRemoveItemCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item <item-id>",
		Short: "Remove one item from its watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("item id must be a number: %q", args[0])
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.client.DeleteWatchlistItem(ctx, id); err != nil {
				return err
			}
			fmt.Printf("removed item %d\n", id)
			return nil
		},
	}
}
