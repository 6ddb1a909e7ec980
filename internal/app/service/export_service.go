package service

import (
	"context"
	"fmt"
	"io"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const (
	CartExportFilename = "woo-ah-han-cart.xlsx"
	CartExportMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	cartSheetName = "장바구니"
)

var cartSheetHeader = []interface{}{"상품 ID", "상품명", "부위", "단가", "수량", "합계"}

// ExportService renders the cart as a spreadsheet.
type ExportService interface {
	ExportCart(ctx context.Context, sessionID string, w io.Writer) error
}

type exportService struct {
	sessions SessionService
}

func NewExportService(sessions SessionService) ExportService {
	return &exportService{sessions: sessions}
}

// ExportCart writes one row per cart line followed by a totals row.
func (s *exportService) ExportCart(ctx context.Context, sessionID string, w io.Writer) error {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	return WriteCartXLSX(w, session.Cart)
}

func WriteCartXLSX(w io.Writer, cart model.Cart) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), cartSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(cartSheetName, "A1", &cartSheetHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	rowIndex := 2
	for _, line := range cart.Lines {
		row := []interface{}{
			line.Product.ID,
			line.Product.Name,
			string(line.Product.Cut),
			line.Product.PriceValue(),
			line.Quantity,
			line.Subtotal(),
		}
		if err := setRow(f, rowIndex, row); err != nil {
			return err
		}
		rowIndex++
	}

	totals := []interface{}{"", "합계", "", "", cart.TotalItemCount(), cart.TotalPrice()}
	if err := setRow(f, rowIndex, totals); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		logger.Error("Failed to write cart workbook", err)
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, index int, row []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, index)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(cartSheetName, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", index, err)
	}
	return nil
}
