package source

import (
	"context"
	"fmt"
	"os"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"catalogo/internal/normalizer"
)

// Workbook reads a packaged .xlsx file. Sheet selects a worksheet by name;
// empty means the first one.
type Workbook struct {
	Path  string
	Sheet string
}

func (w *Workbook) Name() string { return "workbook:" + w.Path }

func (w *Workbook) Rows(ctx context.Context) ([][]any, error) {
	if w.Path == "" {
		return nil, ErrNotConfigured
	}
	f, err := os.Open(w.Path)
	if err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	wb, err := spreadsheet.Read(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("workbook %s: %w", w.Path, err)
	}

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s: sem planilhas", w.Path)
	}
	sheet := sheets[0]
	if w.Sheet != "" {
		found := false
		for _, s := range sheets {
			if s.Name() == w.Sheet {
				sheet, found = s, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("workbook %s: planilha %q não encontrada", w.Path, w.Sheet)
		}
	}

	var grid [][]any
	for _, row := range sheet.Rows() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := int(row.RowNumber()) - 1
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for _, cell := range row.Cells() {
			col, err := cell.Column()
			if err != nil {
				continue
			}
			c := int(reference.ColumnToIndex(col))
			for len(grid[r]) <= c {
				grid[r] = append(grid[r], nil)
			}
			grid[r][c] = cellValue(cell)
		}
	}
	return grid, nil
}

// Fórmulas IMAGE viram texto "=IMAGE(...)"; o resto usa o valor em cache.
func cellValue(cell spreadsheet.Cell) any {
	if f := cell.GetFormula(); f != "" {
		if _, ok := normalizer.ImageFormulaURL(f); ok {
			return "=" + f
		}
	}
	if v := cell.GetFormattedValue(); v != "" {
		return v
	}
	return nil
}
