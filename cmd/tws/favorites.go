package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/render"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage saved filter condition sets",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show saved condition sets",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := a.ctx()
				defer cancel()
				favs, err := a.client.Favorites(ctx)
				if err != nil {
					return err
				}
				return a.render(render.FavoriteTable(favs))
			},
		},
		newFavoritesAddCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a saved condition set",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("favorite id must be a number: %q", args[0])
				}
				ctx, cancel := a.ctx()
				defer cancel()
				if err := a.client.DeleteFavorite(ctx, id); err != nil {
					return err
				}
				fmt.Printf("deleted favorite %d\n", id)
				return nil
			},
		},
	)
	return cmd
}

// newFavoritesAddCmd saves the current persisted filter preferences
// as a named condition set on the server.
func newFavoritesAddCmd(a *app) *cobra.Command {
	var (
		category    string
		description string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save the current filter preferences under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.LoadFilters()
			if err != nil {
				return err
			}
			conditions, err := json.Marshal(c.Filters().Params())
			if err != nil {
				return err
			}
			req := api.FavoriteCreate{Name: args[0], Conditions: conditions}
			if category != "" {
				req.Category = &category
			}
			if description != "" {
				req.Description = &description
			}
			ctx, cancel := a.ctx()
			defer cancel()
			fav, err := a.client.CreateFavorite(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("saved favorite %d: %s\n", fav.ID, fav.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "grouping label")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	return cmd
}

func newQueriesCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "queries",
		Short: "Manage server-side query history",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "Show recent filter executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			items, err := a.client.QueryHistories(ctx, limit)
			if err != nil {
				return err
			}
			return a.render(render.QueryHistoryTable(items))
		},
	}
	list.Flags().IntVar(&limit, "limit", 50, "maximum entries")
	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete one history entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("history id must be a number: %q", args[0])
				}
				ctx, cancel := a.ctx()
				defer cancel()
				if err := a.client.DeleteQueryHistory(ctx, id); err != nil {
					return err
				}
				fmt.Printf("deleted history entry %d\n", id)
				return nil
			},
		},
	)
	return cmd
}
