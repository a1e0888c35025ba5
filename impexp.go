package stockkeeper

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// this file contains functions to handle the spreadsheet import/export format.
// It is a single sheet workbook with one position per row and fixed headers,
// meant to be edited by hand in any spreadsheet application.

// SheetName is the name of the exported sheet. Imports read the first sheet whatever its name.
const SheetName = "我的存股清單"

// Column headers of the spreadsheet format.
const (
	HeaderCode             = "股票代號"
	HeaderName             = "股票名稱"
	HeaderQuantity         = "持有股數"
	HeaderCostBasis        = "成本均價"
	HeaderPrice            = "目前股價"
	HeaderCumulativeEPS    = "累計EPS"
	HeaderEPSAsOfMonth     = "資料月份"
	HeaderCashPayoutRatio  = "現金配息率(%)"
	HeaderStockPayoutRatio = "股票配股率(%)"
)

// Headers lists the columns in export order.
var Headers = []string{
	HeaderCode,
	HeaderName,
	HeaderQuantity,
	HeaderCostBasis,
	HeaderPrice,
	HeaderCumulativeEPS,
	HeaderEPSAsOfMonth,
	HeaderCashPayoutRatio,
	HeaderStockPayoutRatio,
}

var (
	// ErrImport is wrapped by every error caused by an unreadable workbook.
	ErrImport = errors.New("cannot import workbook")
	// ErrEmptyImport is returned when the workbook has no position.
	ErrEmptyImport = errors.New("workbook contains no position")
)

// BackupFilename returns the default name of an export made on t.
func BackupFilename(t time.Time) string {
	return fmt.Sprintf("存股管家備份_%s.xlsx", t.Format(time.DateOnly))
}

// ExportWorkbook writes positions to w as an xlsx workbook.
func ExportWorkbook(w io.Writer, positions []Position) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("cannot name sheet: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}

	for i, p := range positions {
		row := []any{
			p.Code,
			p.Name,
			p.Quantity,
			cellValue(p.CostBasis),
			cellValue(p.Price),
			cellValue(p.CumulativeEPS),
			p.EPSAsOfMonth,
			cellValue(p.CashPayoutRatio),
			cellValue(p.StockPayoutRatio),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cannot locate row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("cannot write position %q: %w", p.Code, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

// cellValue returns d as a number cell when a float64 holds it exactly, and
// as a text cell otherwise so that no digit is lost. Imports read both.
func cellValue(d decimal.Decimal) any {
	f := d.InexactFloat64()
	if decimal.NewFromFloat(f).Equal(d) {
		return f
	}
	return d.String()
}

// ImportWorkbook reads positions from the first sheet of an xlsx workbook.
//
// Columns are matched by header. Missing or unreadable cells are read as zero
// (or empty text), except the EPS month that defaults to 12. Every position
// gets a fresh ID and is unverified.
func ImportWorkbook(r io.Reader) ([]Position, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImport, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheet", ErrImport)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read sheet %q: %w", ErrImport, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}

	columns := make(map[string]int)
	for i, h := range rows[0] {
		columns[strings.TrimSpace(h)] = i
	}
	if _, ok := columns[HeaderCode]; !ok {
		if _, ok := columns[HeaderName]; !ok {
			return nil, fmt.Errorf("%w: no %q nor %q column", ErrImport, HeaderCode, HeaderName)
		}
	}

	var positions []Position
	for _, row := range rows[1:] {
		cell := func(header string) string {
			i, ok := columns[header]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if isBlank(row) {
			continue
		}
		month := int(ParseInt(cell(HeaderEPSAsOfMonth)))
		p := Position{
			ID:               NewID(),
			Code:             cell(HeaderCode),
			Name:             cell(HeaderName),
			Quantity:         ParseInt(cell(HeaderQuantity)),
			CostBasis:        ParseDecimal(cell(HeaderCostBasis)),
			Price:            ParseDecimal(cell(HeaderPrice)),
			CumulativeEPS:    ParseDecimal(cell(HeaderCumulativeEPS)),
			EPSAsOfMonth:     month,
			CashPayoutRatio:  ParseDecimal(cell(HeaderCashPayoutRatio)),
			StockPayoutRatio: ParseDecimal(cell(HeaderStockPayoutRatio)),
			Verified:         false,
		}
		positions = append(positions, p.Sanitize())
	}
	if len(positions) == 0 {
		return nil, ErrEmptyImport
	}
	return positions, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
