package document

import (
	"fmt"
	"io"

	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const voucherSheet = "Vouchers"

var voucherColumns = []struct {
	header string
	width  float64
}{
	{"Date", 12},
	{"Type", 16},
	{"Number", 14},
	{"Party", 32},
	{"Debit", 14},
	{"Credit", 14},
	{"Amount", 14},
	{"Narration", 40},
}

// LedgerVouchersXLSX writes the vouchers of one ledger as a workbook with a header
// row, one row per voucher and a totals row.
func LedgerVouchersXLSX(w io.Writer, ledger string, vouchers []domain.Voucher) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", voucherSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: ledger + " vouchers"}); err != nil {
		return fmt.Errorf("failed to set workbook properties: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	amountFmt := "#,##0.00"
	amounts, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	for i, c := range voucherColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(voucherSheet, col, col, c.width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
		if err := f.SetCellValue(voucherSheet, cell(i+1, 1), c.header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.SetCellStyle(voucherSheet, cell(1, 1), cell(len(voucherColumns), 1), bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	debit, credit, total := decimal.Zero, decimal.Zero, decimal.Zero
	for r, v := range vouchers {
		row := []any{
			v.Date, v.Type, v.Number, v.Party,
			v.Debit.InexactFloat64(), v.Credit.InexactFloat64(), v.Amount.InexactFloat64(),
			v.Narration,
		}
		if err := f.SetSheetRow(voucherSheet, cell(1, r+2), &row); err != nil {
			return fmt.Errorf("failed to write voucher row: %w", err)
		}
		debit, credit, total = debit.Add(v.Debit), credit.Add(v.Credit), total.Add(v.Amount)
	}

	totalRow := len(vouchers) + 2
	totals := []any{"Total", "", "", "", debit.InexactFloat64(), credit.InexactFloat64(), total.InexactFloat64()}
	if err := f.SetSheetRow(voucherSheet, cell(1, totalRow), &totals); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}
	if err := f.SetCellStyle(voucherSheet, cell(5, 2), cell(7, totalRow), amounts); err != nil {
		return fmt.Errorf("failed to style amounts: %w", err)
	}
	if err := f.SetCellStyle(voucherSheet, cell(1, totalRow), cell(4, totalRow), bold); err != nil {
		return fmt.Errorf("failed to style totals: %w", err)
	}
	if err := f.SetPanes(voucherSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
