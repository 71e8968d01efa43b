package payments

import (
	"fmt"
	"strings"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/xuri/excelize/v2"
)

// LedgerHeaders are the column names of the client ledger exports.
var LedgerHeaders = []string{"deal_id", "payment_id", "payment_date", "amount", "payment_mode", "payers", "payees", "payment_flow", "notes"}

const (
	ContentTypeCSV  = "text/csv;charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	ledgerSheet = "Ledger"
)

// Export is a generated ledger file.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// LedgerRecord is one export row. Labels come from ParticipantLabel.
type LedgerRecord struct {
	DealID      string
	PaymentID   string
	PaymentDate string
	Amount      string
	PaymentMode string
	Payers      string
	Payees      string
	PaymentFlow string
	Notes       string
	payment     models.Payment
}

func (r LedgerRecord) cells() []string {
	return []string{r.DealID, r.PaymentID, r.PaymentDate, r.Amount, r.PaymentMode, r.Payers, r.Payees, r.PaymentFlow, r.Notes}
}

// BuildLedgerRecords formats ledger rows for export. dealID fills rows that
// carry no deal of their own.
func BuildLedgerRecords(rows []models.Payment, dealID string) []LedgerRecord {
	out := make([]LedgerRecord, 0, len(rows))
	for _, r := range rows {
		deal := r.DealID.String()
		if deal == "" {
			deal = dealID
		}
		out = append(out, LedgerRecord{
			DealID:      deal,
			PaymentID:   r.ID.String(),
			PaymentDate: r.DateOnly(),
			Amount:      r.Amount.String(),
			PaymentMode: r.PaymentMode,
			Payers:      PartyLabels(r.Parties, models.RolePayer),
			Payees:      PartyLabels(r.Parties, models.RolePayee),
			PaymentFlow: PaymentFlow(r.Amount, r.Parties),
			Notes:       r.Notes,
			payment:     r,
		})
	}
	return out
}

// LedgerFilename names a client export: ledger_{deal|all}_{YYYY-MM-DD}.ext.
func LedgerFilename(dealID string, now time.Time, ext string) string {
	scope := dealID
	if scope == "" {
		scope = "all"
	}
	return fmt.Sprintf("ledger_%s_%s.%s", scope, now.UTC().Format("2006-01-02"), ext)
}

// ExportLedgerCSV renders rows as CSV with every cell quoted. It reports
// false and produces nothing when there are no rows.
func ExportLedgerCSV(rows []models.Payment, dealID string, now time.Time) (*Export, bool) {
	if len(rows) == 0 {
		return nil, false
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(LedgerHeaders, ","))
	for _, rec := range BuildLedgerRecords(rows, dealID) {
		cells := rec.cells()
		for i, c := range cells {
			cells[i] = quoteCell(c)
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return &Export{
		Filename:    LedgerFilename(dealID, now, "csv"),
		ContentType: ContentTypeCSV,
		Data:        []byte(strings.Join(lines, "\n")),
	}, true
}

func quoteCell(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportLedgerXLSX renders the same records as ExportLedgerCSV into a
// single-sheet workbook. Amounts are written as numbers.
func ExportLedgerXLSX(rows []models.Payment, dealID string, now time.Time) (*Export, bool, error) {
	if len(rows) == 0 {
		return nil, false, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, false, fmt.Errorf("rename sheet: %w", err)
	}

	for i, header := range LedgerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ledgerSheet, cell, header); err != nil {
			return nil, false, fmt.Errorf("write header: %w", err)
		}
	}

	for i, rec := range BuildLedgerRecords(rows, dealID) {
		row := i + 2
		for col, value := range rec.cells() {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			var v interface{} = value
			if LedgerHeaders[col] == "amount" {
				v = rec.payment.Amount.InexactFloat64()
			}
			if err := f.SetCellValue(ledgerSheet, cell, v); err != nil {
				return nil, false, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, false, fmt.Errorf("write workbook: %w", err)
	}

	return &Export{
		Filename:    LedgerFilename(dealID, now, "xlsx"),
		ContentType: ContentTypeXLSX,
		Data:        buf.Bytes(),
	}, true, nil
}
