// Package xlsx exports the payout queue as a spreadsheet for the account team.
package xlsx

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

// ContentType is the media type of the exported workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheet = "Redemptions"

var headings = []string{
	"Redemption ID", "Employee", "Email", "Amount", "Currency", "Status",
	"Requested At", "Credit Transaction", "Reference", "Notes",
}

// Exporter writes redemption rows to an .xlsx workbook.
type Exporter struct{}

// NewExporter creates an Exporter.
func NewExporter() *Exporter { return &Exporter{} }

// ExportRedemptions writes one row per redemption. users resolves employee
// names; a missing user leaves the name cells empty.
func (e *Exporter) ExportRedemptions(w io.Writer, rows []domain.RedemptionRequest, users map[uuid.UUID]domain.User) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headings {
		if err := f.SetCellValue(sheet, cell(i, 1), h); err != nil {
			return err
		}
	}

	for r, rr := range rows {
		u := users[rr.UserID]
		values := []any{
			rr.ID.String(),
			u.Name,
			u.Email,
			rr.Amount.InexactFloat64(),
			string(rr.Currency),
			string(rr.Status),
			rr.CreatedAt.UTC().Format("2006-01-02 15:04"),
			rr.CreditTransactionID.String(),
			deref(rr.TransactionReference),
			rr.Notes,
		}
		for c, v := range values {
			if err := f.SetCellValue(sheet, cell(c, r+2), v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
