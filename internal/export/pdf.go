package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/Simplici0/tokenwatt/internal/tariff"
)

var (
	headerColor     = []int{0, 82, 147}
	headerTextColor = []int{255, 255, 255}
	bodyTextColor   = []int{40, 40, 40}
	lineColor       = []int{200, 200, 200}
)

var columnWidths = []float64{60, 30, 45, 45}

// WritePDF writes b as a one-page receipt. Payment sections follow the main
// table for a combined breakdown.
func WritePDF(w io.Writer, title string, b tariff.Breakdown) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  "+title), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	tierTable(pdf, tr, "Tier breakdown", b)

	if p := b.Payments; p != nil {
		if p.Initial != nil {
			tierTable(pdf, tr, fmt.Sprintf("Initial payment (%s %s)", p.InitialAmount.StringFixed(2), b.Currency), *p.Initial)
		}
		if p.New != nil {
			tierTable(pdf, tr, fmt.Sprintf("New payment (%s %s)", p.NewAmount.StringFixed(2), b.Currency), *p.New)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func tierTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, b tariff.Breakdown) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.Cell(0, 8, tr(title))
	pdf.Ln(7)
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+180, pdf.GetY())
	pdf.Ln(2)

	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.SetFont("Arial", "B", 10)
	for i, h := range []string{"Tier", "Rate (" + b.Currency + "/kWh)", "Units (kWh)", "Cost (" + b.Currency + ")"} {
		pdf.CellFormat(columnWidths[i], 7, tr(h), "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, line := range b.ActiveTiers() {
		row := []string{
			fmt.Sprintf("Tier %d (%s)", line.Tier, line.Label),
			line.Rate.String(),
			line.Units.StringFixed(2),
			line.Cost.StringFixed(2),
		}
		for i, v := range row {
			pdf.CellFormat(columnWidths[i], 6, tr(v), "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	summary := [][2]string{
		{"Total units", b.TotalUnits.StringFixed(2) + " kWh"},
		{"Subtotal", b.Subtotal.StringFixed(2)},
		{"VAT (" + b.VATPercent().String() + "%)", b.VATAmount.StringFixed(2)},
		{"Total", b.Total.StringFixed(2) + " " + b.Currency},
	}
	for i, kv := range summary {
		style := ""
		if i == len(summary)-1 {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(columnWidths[0]+columnWidths[1]+columnWidths[2], 6, tr(kv[0]), "T", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[3], 6, tr(kv[1]), "T", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}
