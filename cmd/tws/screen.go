package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/render"
	"github.com/twsefilter/tws/pkg/tws/screen"
)

func newScreenCmd(a *app) *cobra.Command {
	var (
		logic    string
		rules    []string
		formulas []string
	)

	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Run a multi-condition screen",
		Long: `Run a multi-condition screen against the backend.

Rules are "<field> <op> <target>" where the target is a number or
another field key:

  tws screen --rule "close > 100" --rule "ma5 cross_up ma20"
  tws screen --logic OR --rule "rsi14 >= 80" --rule "rsi14 <= 20"

Formulas are "name=expression" and come back as extra columns:

  tws screen --rule "close > ma20" --formula "avg=(ma5+ma10)/2"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(rules) == 0 {
				return errors.New("at least one --rule is required")
			}

			sc := screen.New(a.client)
			if err := assembleScreen(sc, logic, rules, formulas); err != nil {
				return err
			}

			ctx, cancel := a.ctx()
			defer cancel()
			if err := sc.Execute(ctx); err != nil {
				return fmt.Errorf("screen failed: %s", sc.ErrMessage())
			}
			return a.render(render.TickerTable(sc.Results(), sc.MatchedCount()))
		},
	}

	cmd.Flags().StringVar(&logic, "logic", "AND", "combine rules with AND or OR")
	cmd.Flags().StringArrayVar(&rules, "rule", nil, `screening rule, e.g. "close > 100" (repeatable)`)
	cmd.Flags().StringArrayVar(&formulas, "formula", nil, `custom formula "name=expression" (repeatable)`)
	return cmd
}

// assembleScreen fills a fresh container from the --logic, --rule and
// --formula flag values. Shared with the strategies commands, which
// save the built request instead of executing it.
func assembleScreen(sc *screen.Container, logic string, rules, formulas []string) error {
	if err := sc.SetLogic(screen.Logic(strings.ToUpper(logic))); err != nil {
		return err
	}
	// The container starts with one default rule; shape the first flag
	// into it and append the rest.
	for i, expr := range rules {
		r, err := screen.ParseRule(expr)
		if err != nil {
			return err
		}
		if i > 0 {
			sc.AddRule()
		}
		if err := applyRule(sc, i, r); err != nil {
			return err
		}
	}
	for i, s := range formulas {
		f, err := screen.ParseFormula(s)
		if err != nil {
			return err
		}
		sc.AddFormula()
		if err := sc.UpdateFormula(i, screen.FormulaPatch{Name: &f.Name, Expression: &f.Expression}); err != nil {
			return err
		}
	}
	return nil
}

// applyRule pushes a parsed rule into the container slot at index
// through the patch interface, so the container's own consistency
// invariants run.
func applyRule(sc *screen.Container, index int, r screen.Rule) error {
	patch := screen.RulePatch{
		Category: &r.Category,
		Field:    &r.Field,
		Operator: &r.Operator,
	}
	kind := r.Target.Kind()
	patch.TargetKind = &kind
	if kind == screen.TargetField {
		key := r.Target.FieldKey()
		patch.TargetField = &key
	} else {
		v := r.Target.Value()
		patch.TargetValue = &v
	}
	return sc.UpdateRule(index, patch)
}
