package main

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "server",
		Short: "Storefront gateway for the chat widget and order tracking",
		Long: `Proxies storefront requests to the Anthropic messages API and the
Shopify Admin order API behind an origin allow-list.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "optional config file (yaml, json or toml)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newCandidatesCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
