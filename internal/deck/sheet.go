package deck

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"catalogo/internal/bullets"
)

const (
	productsSheet = "Products"
	clientSheet   = "Client"
	thumbRowPt    = 60
)

var sheetHeader = []any{
	"#", "Section", "Code", "Name", "Category", "Price",
	"Description", "Highlights", "Source", "Spec sheet", "Image",
}

// writeSheet exports the selection as a workbook: one row per product plus a
// sheet with the client details.
func (e *Exporter) writeSheet(ctx context.Context, w io.Writer, req Request, items []item) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(productsSheet, "A1", &sheetHeader); err != nil {
		return err
	}
	th := e.theme()
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: th.OnAccent.Hex()},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{th.Accent.Hex()}},
	})
	if err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(sheetHeader))
	if err := f.SetCellStyle(productsSheet, "A1", lastCol+"1", header); err != nil {
		return err
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	_ = f.SetColWidth(productsSheet, "D", "D", 32)
	_ = f.SetColWidth(productsSheet, "G", "H", 48)
	_ = f.SetColWidth(productsSheet, lastCol, lastCol, 18)
	_ = f.SetPanes(productsSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})

	images := e.prefetch(ctx, items)
	for i, it := range items {
		p := it.Product
		row := i + 2
		var price any
		if p.Price != nil {
			price = *p.Price
		}
		values := []any{
			i + 1, it.Section, p.Label(), p.Name, p.Category, price,
			p.Description, strings.Join(bullets.Extract(p), "\n"), p.SourceURL, p.PDFURL,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(productsSheet, cell, &values); err != nil {
			return err
		}
		first, _ := excelize.CoordinatesToCellName(7, row)
		last, _ := excelize.CoordinatesToCellName(8, row)
		_ = f.SetCellStyle(productsSheet, first, last, wrap)

		if img := images[i]; img != nil {
			_ = f.SetRowHeight(productsSheet, row, thumbRowPt)
			imgCell := fmt.Sprintf("%s%d", lastCol, row)
			err := f.AddPictureFromBytes(productsSheet, imgCell, &excelize.Picture{
				Extension: ".png",
				File:      img.Data,
				Format:    &excelize.GraphicOptions{AutoFit: true, LockAspectRatio: true, AltText: p.Name},
			})
			if err != nil {
				return fmt.Errorf("imagem do produto %s: %w", p.ID, err)
			}
		}
	}

	if err := e.writeClientSheet(f, req, len(items)); err != nil {
		return err
	}
	return f.Write(w)
}

func (e *Exporter) writeClientSheet(f *excelize.File, req Request, n int) error {
	if _, err := f.NewSheet(clientSheet); err != nil {
		return err
	}
	c := req.Client
	rows := [][]any{
		{"Project", c.ProjectName},
		{"Client", c.ClientName},
		{"Contact", c.ContactName},
		{"Email", c.ContactEmail},
		{"Phone", c.ContactPhone},
		{"Date", c.DateISO},
		{"Brand", e.brand()},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(clientSheet, cell, &r); err != nil {
			return err
		}
	}
	total := len(rows) + 1
	if err := f.SetCellStr(clientSheet, fmt.Sprintf("A%d", total), "Products"); err != nil {
		return err
	}
	formula := fmt.Sprintf("COUNTA(%s!A2:A%d)", productsSheet, n+1)
	if err := f.SetCellFormula(clientSheet, fmt.Sprintf("B%d", total), formula); err != nil {
		return err
	}
	return f.SetColWidth(clientSheet, "A", "A", 14)
}
