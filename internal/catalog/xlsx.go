package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "products"

var sheetHeader = []interface{}{"id", "name", "description", "price", "cut", "category", "image_url"}

// WriteXLSX writes products as a single-sheet workbook with a header row.
func WriteXLSX(w io.Writer, products []model.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &sheetHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range products {
		cut := p.Cut.Code()
		if cut == "" {
			cut = string(p.Cut)
		}
		row := []interface{}{p.ID, p.Name, p.Description, p.Price, cut, string(p.Category), p.ImageURL}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ReadXLSX reads the first sheet of a workbook written by WriteXLSX or by
// hand with the same columns. Blank rows are skipped.
func ReadXLSX(r io.Reader) ([]model.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: no sheets found", ErrInvalidCatalog)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data found", ErrInvalidCatalog)
	}

	var products []model.Product
	for i, row := range rows {
		// header
		if i == 0 {
			continue
		}
		cols := make([]string, len(sheetHeader))
		for j := range cols {
			if j < len(row) {
				cols[j] = strings.TrimSpace(row[j])
			}
		}
		if cols[0] == "" && cols[1] == "" {
			continue
		}

		e := entry{
			ID:          cols[0],
			Name:        cols[1],
			Description: cols[2],
			Price:       cols[3],
			Cut:         cols[4],
			Category:    cols[5],
			ImageURL:    cols[6],
		}
		p, err := e.toProduct(len(products))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		products = append(products, p)
	}

	if err := Validate(products); err != nil {
		return nil, err
	}
	return products, nil
}
