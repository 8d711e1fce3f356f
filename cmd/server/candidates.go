package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/storefront-gateway/internal/config"
	"github.com/Lixing-Zhang/storefront-gateway/internal/service"
)

func newCandidatesCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "candidates <order-token>",
		Short: "Print the order names tried for a token, in lookup order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("prefix") {
				cfg, err := config.Load(cfgFile)
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				prefix = cfg.Shopify.OrderNamePrefix
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "digit run: %q\n", service.DigitRun(args[0]))
			for i, name := range service.NameCandidates(args[0], prefix) {
				fmt.Fprintf(out, "%d. %s\n", i+1, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "GG-", "store order-name prefix (defaults to SHOPIFY_ORDER_NAME_PREFIX)")

	return cmd
}
