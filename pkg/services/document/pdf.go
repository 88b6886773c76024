// Package document renders voucher prints and ledger exports.
package document

import (
	"fmt"
	"io"

	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	pageMargin = 15.0
	lineHeight = 7.0
)

// VoucherPDF writes a single-page A4 print of v. The core fonts only cover cp1252,
// so text goes through gofpdf's translator and unsupported runes are dropped.
func VoucherPDF(w io.Writer, company string, v domain.Voucher) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	title := v.Type
	if title == "" {
		title = "Voucher"
	}
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	if company != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, lineHeight, tr(company), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	for _, row := range [][2]string{
		{"Number", v.Number},
		{"Date", v.Date},
		{"Party", v.Party},
	} {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(30, lineHeight, row[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, lineHeight, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if len(v.LineItems) > 0 {
		lineItemsTable(pdf, tr, v.LineItems)
		pdf.Ln(4)
	}
	if len(v.TaxEntries) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, lineHeight, "Taxes", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, tax := range v.TaxEntries {
			pdf.CellFormat(140, lineHeight, tr(tax.Ledger), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, lineHeight, money(tax.Amount), "", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 10)
	for _, row := range []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Debit", v.Debit},
		{"Credit", v.Credit},
		{"Amount", v.Amount},
	} {
		pdf.CellFormat(140, lineHeight, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(0, lineHeight, money(row.amount), "", 1, "R", false, 0, "")
	}

	if v.Narration != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, lineHeight, tr("Narration: "+v.Narration), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render voucher pdf: %w", err)
	}
	return nil
}

func lineItemsTable(pdf *gofpdf.Fpdf, tr func(string) string, items []domain.LineItem) {
	widths := []float64{80, 30, 35, 35}
	headers := []string{"Item", "Quantity", "Rate", "Amount"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], lineHeight, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, item := range items {
		qty := item.Quantity.String()
		if item.Unit != "" {
			qty += " " + item.Unit
		}
		pdf.CellFormat(widths[0], lineHeight, tr(item.StockItem), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], lineHeight, tr(qty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], lineHeight, money(item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], lineHeight, money(item.Amount), "1", 1, "R", false, 0, "")
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
