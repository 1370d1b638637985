package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"catalogo/internal/model"
)

func newScrapeCommand() *cobra.Command {
	var urls []string

	cmd := &cobra.Command{
		Use:   "scrape --url <page> [--url <page>...]",
		Short: "Extract product data from manufacturer pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			urls = append(urls, args...)
			if len(urls) == 0 {
				return fmt.Errorf("informe ao menos uma --url")
			}
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			var products []model.Product
			n := a.Scraper.ScrapeBatch(cmd.Context(), urls, func(p model.Product) {
				products = append(products, p)
			})
			if n == 0 {
				return fmt.Errorf("nenhuma página pôde ser lida")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if len(products) == 1 {
				return enc.Encode(products[0])
			}
			return enc.Encode(products)
		},
	}
	cmd.Flags().StringSliceVar(&urls, "url", nil, "product page URL (repeatable)")
	return cmd
}
