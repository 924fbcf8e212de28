package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/crud-admin/internal/price"
)

func newPriceCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Format or unformat price strings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "format <value>",
		Short:   "Render a raw or masked value as a currency string",
		Example: "  adminctl price format 1500000",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := opts.formatter()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Format(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "unformat <value>",
		Short:   "Strip everything but digits from a price string",
		Example: `  adminctl price unformat "Rp 1.500.000"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), price.Unformat(args[0]))
			return nil
		},
	})

	return cmd
}
