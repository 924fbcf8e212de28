package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/crud-admin/internal/repository"
)

func newProductsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "List or delete products",
	}

	cmd.AddCommand(newProductsListCmd(opts))
	cmd.AddCommand(newProductsDeleteCmd(opts))

	return cmd
}

func newProductsListCmd(opts *options) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatter, err := opts.formatter()
			if err != nil {
				return err
			}

			products, err := opts.repository().GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(products)
			}

			if len(products) == 0 {
				fmt.Fprintln(out, "No products")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRICE")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, formatter.FormatAmount(p.Price))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func newProductsDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid product id: %q", args[0])
			}

			if err := opts.repository().Delete(cmd.Context(), id); err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return fmt.Errorf("product %d not found", id)
				}
				return fmt.Errorf("failed to delete product: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted product: %d\n", id)
			return nil
		},
	}
}
