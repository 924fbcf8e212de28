package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/crud-admin/internal/price"
	"github.com/Lixing-Zhang/crud-admin/internal/repository"
	"github.com/Lixing-Zhang/crud-admin/pkg/logger"
)

const defaultAPIURL = "http://localhost:6400/products"

// options are the persistent flags shared by every subcommand
type options struct {
	apiURL   string
	timeout  time.Duration
	locale   string
	prefix   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "adminctl",
		Short: "adminctl manages the product catalog from a terminal",
		Long: `adminctl talks to the same products REST API as the admin server.
It lists and deletes products and formats or unformats price strings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", apiURL, "Products API base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Products API request timeout")
	cmd.PersistentFlags().StringVar(&opts.locale, "locale", "id-ID", "Locale used for price grouping")
	cmd.PersistentFlags().StringVar(&opts.prefix, "prefix", "Rp", "Currency prefix")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newProductsCmd(opts))
	cmd.AddCommand(newPriceCmd(opts))

	return cmd
}

func (o *options) repository() *repository.HTTPProductRepository {
	log := logger.NewWithFormat(o.logLevel, "text", os.Stderr)
	return repository.NewHTTPProductRepository(o.apiURL, o.timeout, log)
}

func (o *options) formatter() (*price.Formatter, error) {
	return price.NewFormatter(o.locale, o.prefix)
}
