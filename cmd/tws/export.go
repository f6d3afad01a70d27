package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/twsefilter/tws/pkg/tws/api"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		flags  filterFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "export <csv|excel|json>",
		Short: "Export the filtered stock list to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]
			c, err := a.store.LoadFilters()
			if err != nil {
				return err
			}
			q := c.Filters().Query()
			flags.overlay(cmd, &q)

			path := output
			if path == "" {
				ext := format
				if format == api.ExportExcel {
					ext = "xlsx"
				}
				path = fmt.Sprintf("stocks_%s.%s", time.Now().Format("20060102_150405"), ext)
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()

			ctx, cancel := a.ctx()
			defer cancel()
			n, err := a.client.Export(ctx, format, q, f)
			if err != nil {
				os.Remove(path)
				return err
			}
			fmt.Printf("wrote %s (%d bytes)\n", path, n)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output-file", "o", "", "destination path")
	return cmd
}
