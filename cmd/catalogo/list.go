package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"catalogo/internal/catalog"
	"catalogo/internal/layout"
	"catalogo/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newListCommand() *cobra.Command {
	var query, category string
	var refresh, categories bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products from the configured source",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			load := a.Catalog.Products
			if refresh {
				load = a.Catalog.Refresh
			}
			products, err := load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if categories {
				for _, c := range catalog.Categories(products) {
					fmt.Fprintln(out, c)
				}
				return nil
			}
			list := catalog.Search(products, catalog.Query{Text: query, Category: category})
			printTable(out, list)
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d de %d produtos", len(list), len(products))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "text filter (name, code, description)")
	cmd.Flags().StringVar(&category, "category", "", "exact category, accents and case ignored")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload from the source, skipping caches")
	cmd.Flags().BoolVar(&categories, "categories", false, "print the distinct categories only")
	return cmd
}

func printTable(w io.Writer, products []model.Product) {
	cols := []struct {
		title string
		width int
		value func(model.Product) string
	}{
		{"ID", 14, func(p model.Product) string { return p.ID }},
		{"CODE", 14, model.Product.Label},
		{"NAME", 44, func(p model.Product) string { return p.Name }},
		{"CATEGORY", 20, func(p model.Product) string { return p.Category }},
	}

	var head []string
	for _, c := range cols {
		head = append(head, pad(c.title, c.width))
	}
	fmt.Fprintln(w, headerStyle.Render(strings.Join(head, " ")))
	for _, p := range products {
		var row []string
		for _, c := range cols {
			row = append(row, pad(layout.Truncate(c.value(p), c.width), c.width))
		}
		fmt.Fprintln(w, strings.Join(row, " "))
	}
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
