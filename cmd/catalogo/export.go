package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"catalogo/internal/catalog"
	"catalogo/internal/deck"
	"catalogo/internal/model"
)

func newExportCommand() *cobra.Command {
	var (
		format, ids, query, category string
		section, out                 string
		client                       model.ClientInfo
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export selected products as a deck or pick list",
		Example: `  catalogo export --ids WF-100,T1 --project "Casa Azul" --client "Ana Souza"
  catalogo export --category Faucets --format pdf --out faucets.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := deck.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			products, err := a.Catalog.Products(cmd.Context())
			if err != nil {
				return err
			}
			picked, missing := selectProducts(products, splitIDs(ids), catalog.Query{Text: query, Category: category})
			if len(missing) > 0 {
				a.Logger.Warn("[export] produtos não encontrados", zap.Strings("ids", missing))
			}

			req := deck.Request{Format: f, Client: client}
			if section != "" {
				req.Sections = []model.Section{model.NewSection(section, picked...)}
			} else {
				req.Products = picked
			}
			file, err := a.Exporter.Export(cmd.Context(), req)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = file.Name
			}
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("salvar %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d produtos, %d bytes)\n", path, len(picked), len(file.Data))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&format, "format", "pptx", "pptx, pdf or xlsx")
	fl.StringVar(&ids, "ids", "", "comma separated product ids, in slide order")
	fl.StringVarP(&query, "query", "q", "", "select products matching this text")
	fl.StringVar(&category, "category", "", "select products of this category")
	fl.StringVar(&section, "section", "", "section title shown in the slide footers")
	fl.StringVar(&out, "out", "", "output file (default: derived from --project)")
	fl.StringVar(&client.ProjectName, "project", "", "project name on the cover")
	fl.StringVar(&client.ClientName, "client", "", "client name on the cover")
	fl.StringVar(&client.ContactName, "contact", "", "contact name")
	fl.StringVar(&client.ContactEmail, "email", "", "contact email")
	fl.StringVar(&client.ContactPhone, "phone", "", "contact phone")
	fl.StringVar(&client.DateISO, "date", "", "date shown on the cover, YYYY-MM-DD")
	return cmd
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// selectProducts picks ids in the given order, then every product matching q
// when q is not empty. Duplicates keep their first position.
func selectProducts(products []model.Product, ids []string, q catalog.Query) ([]model.Product, []string) {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	sel := catalog.NewSelection()
	var missing []string
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		sel.Add(p)
	}
	if q.Text != "" || q.Category != "" {
		for _, p := range catalog.Search(products, q) {
			if _, ok := sel.Get(p.ID); !ok {
				sel.Add(p)
			}
		}
	}
	return sel.Products(), missing
}
