package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/api"
	"github.com/twsefilter/tws/pkg/tws/render"
	"github.com/twsefilter/tws/pkg/tws/screen"
)

func newStrategiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "Manage saved screening strategies",
	}
	cmd.AddCommand(
		newStrategiesListCmd(a),
		newStrategiesSaveCmd(a),
		newStrategiesUpdateCmd(a),
		newStrategiesDeleteCmd(a),
		newStrategiesToggleAlertCmd(a),
	)
	return cmd
}

func newStrategiesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show saved strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			strategies, err := a.client.Strategies(ctx)
			if err != nil {
				return err
			}
			return a.render(render.StrategyTable(strategies))
		},
	}
}

func newStrategiesSaveCmd(a *app) *cobra.Command {
	var (
		logic     string
		rules     []string
		formulas  []string
		alert     bool
		lineToken string
	)
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a rule set under a name",
		Long: `Save a rule set under a name for later reuse. Rules and formulas
take the same form as "tws screen":

  tws strategies save golden-cross --rule "ma5 cross_up ma20" --alert`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(rules) == 0 {
				return errors.New("at least one --rule is required")
			}
			sc := screen.New(a.client)
			if err := assembleScreen(sc, logic, rules, formulas); err != nil {
				return err
			}
			req := api.StrategyCreate{
				Name:         args[0],
				Rules:        sc.BuildRequest(),
				AlertEnabled: alert,
			}
			if lineToken != "" {
				req.LineNotifyToken = &lineToken
			}
			ctx, cancel := a.ctx()
			defer cancel()
			st, err := a.client.CreateStrategy(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("saved strategy %d: %s\n", st.ID, st.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&logic, "logic", "AND", "combine rules with AND or OR")
	cmd.Flags().StringArrayVar(&rules, "rule", nil, `screening rule, e.g. "close > 100" (repeatable)`)
	cmd.Flags().StringArrayVar(&formulas, "formula", nil, `custom formula "name=expression" (repeatable)`)
	cmd.Flags().BoolVar(&alert, "alert", false, "enable push notifications for this strategy")
	cmd.Flags().StringVar(&lineToken, "line-token", "", "LINE Notify token for alerts")
	return cmd
}

func newStrategiesUpdateCmd(a *app) *cobra.Command {
	var (
		name      string
		logic     string
		rules     []string
		formulas  []string
		alert     bool
		lineToken string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a saved strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("strategy id must be a number: %q", args[0])
			}
			var req api.StrategyUpdate
			fl := cmd.Flags()
			if fl.Changed("name") {
				req.Name = &name
			}
			// Any --rule replaces the whole rule set; partial rule
			// edits would need positions the CLI does not expose.
			if len(rules) > 0 {
				sc := screen.New(a.client)
				if err := assembleScreen(sc, logic, rules, formulas); err != nil {
					return err
				}
				built := sc.BuildRequest()
				req.Rules = &built
			}
			if fl.Changed("alert") {
				req.AlertEnabled = &alert
			}
			if fl.Changed("line-token") {
				req.LineNotifyToken = &lineToken
			}
			ctx, cancel := a.ctx()
			defer cancel()
			st, err := a.client.UpdateStrategy(ctx, id, req)
			if err != nil {
				return err
			}
			fmt.Printf("updated strategy %d: %s\n", st.ID, st.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new strategy name")
	cmd.Flags().StringVar(&logic, "logic", "AND", "combine rules with AND or OR")
	cmd.Flags().StringArrayVar(&rules, "rule", nil, "replacement rule set (repeatable)")
	cmd.Flags().StringArrayVar(&formulas, "formula", nil, "replacement formulas (repeatable)")
	cmd.Flags().BoolVar(&alert, "alert", false, "enable push notifications")
	cmd.Flags().StringVar(&lineToken, "line-token", "", "LINE Notify token for alerts")
	return cmd
}

func newStrategiesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("strategy id must be a number: %q", args[0])
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.client.DeleteStrategy(ctx, id); err != nil {
				return err
			}
			fmt.Printf("deleted strategy %d\n", id)
			return nil
		},
	}
}

func newStrategiesToggleAlertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-alert <id> <on|off>",
		Short: "Switch a strategy's push notifications on or off",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("strategy id must be a number: %q", args[0])
			}
			var enabled bool
			switch args[1] {
			case "on":
				enabled = true
			case "off":
				enabled = false
			default:
				return fmt.Errorf("alert state must be on or off, got %q", args[1])
			}
			ctx, cancel := a.ctx()
			defer cancel()
			st, err := a.client.ToggleStrategyAlert(ctx, id, enabled)
			if err != nil {
				return err
			}
			state := "off"
			if st.AlertEnabled {
				state = "on"
			}
			fmt.Printf("strategy %d alerts %s\n", st.ID, state)
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search tickers by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			hits, err := a.client.SearchTickers(ctx, args[0], limit)
			if err != nil {
				return err
			}
			return a.render(render.SearchTable(hits))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum hits")
	return cmd
}
