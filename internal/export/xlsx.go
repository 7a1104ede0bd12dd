// Package export renders a tariff breakdown as a spreadsheet or a PDF receipt.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/tokenwatt/internal/tariff"
)

const breakdownSheet = "Breakdown"

var sheetHeader = []interface{}{"tier", "band", "rate", "units", "cost"}

// WriteXLSX writes b as a workbook. A combined breakdown gets one extra sheet
// per payment.
func WriteXLSX(w io.Writer, title string, b tariff.Breakdown) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), breakdownSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSheet(f, breakdownSheet, title, b); err != nil {
		return err
	}

	if p := b.Payments; p != nil {
		if p.Initial != nil {
			if err := addSheet(f, "Initial payment", *p.Initial); err != nil {
				return err
			}
		}
		if p.New != nil {
			if err := addSheet(f, "New payment", *p.New); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func addSheet(f *excelize.File, name string, b tariff.Breakdown) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	return writeSheet(f, name, name, b)
}

func writeSheet(f *excelize.File, sheet, title string, b tariff.Breakdown) error {
	rows := [][]interface{}{
		{title},
		{"schedule", b.ScheduleID, "currency", b.Currency},
		{},
		sheetHeader,
	}
	for _, line := range b.ActiveTiers() {
		rows = append(rows, []interface{}{
			line.Tier,
			line.Label,
			line.Rate.InexactFloat64(),
			line.Units.InexactFloat64(),
			line.Cost.InexactFloat64(),
		})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"total units", "", "", b.TotalUnits.InexactFloat64()},
		[]interface{}{"subtotal", "", "", "", b.Subtotal.InexactFloat64()},
		[]interface{}{fmt.Sprintf("vat %s%%", b.VATPercent().String()), "", "", "", b.VATAmount.InexactFloat64()},
		[]interface{}{"total", "", "", "", b.Total.InexactFloat64()},
	)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
