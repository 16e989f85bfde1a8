// Package proof renders the redemption proof PDF: the request, the payout
// details and the full timeline from credit request to debit.
package proof

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	"golang.org/x/crypto/blake2b"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

const (
	pageWidth  = 190.0
	lineHeight = 6.0
	labelWidth = 50.0
	timeLayout = "2006-01-02 15:04 MST"
)

// Renderer produces proof documents. The output is deterministic for a given
// document, so regenerating a proof yields the same checksum.
type Renderer struct {
	issuer string
}

// NewRenderer creates a Renderer. issuer is printed in the header.
func NewRenderer(issuer string) *Renderer {
	return &Renderer{issuer: issuer}
}

// RenderTimelineProof renders doc as an A4 PDF.
func (r *Renderer) RenderTimelineProof(doc domain.ProofDocument) ([]byte, error) {
	sum, err := Checksum(doc.Redemption)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(doc.IssuedAt)
	pdf.SetModificationDate(doc.IssuedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Redemption "+doc.Redemption.ID.String(), true)
	pdf.SetAuthor(r.issuer, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth, 10, tr(r.issuer+" - Redemption proof"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(pageWidth, 5, "Issued "+doc.IssuedAt.UTC().Format(timeLayout), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	rr := doc.Redemption
	section(pdf, "Request")
	field(pdf, tr, "Redemption", rr.ID.String())
	field(pdf, tr, "Employee", doc.Employee.Name+" <"+doc.Employee.Email+">")
	field(pdf, tr, "Amount", rr.Amount.StringFixed(2)+" "+string(rr.Currency))
	field(pdf, tr, "Status", string(rr.Status))
	field(pdf, tr, "Credit transaction", rr.CreditTransactionID.String())
	if rr.DebitTransactionID != nil {
		field(pdf, tr, "Debit transaction", rr.DebitTransactionID.String())
	}
	field(pdf, tr, "Requested", rr.CreatedAt.UTC().Format(timeLayout))
	if rr.Notes != "" {
		field(pdf, tr, "Notes", rr.Notes)
	}
	if rr.TransactionReference != nil {
		field(pdf, tr, "Payment reference", *rr.TransactionReference)
	}
	if rr.RejectionReason != nil {
		field(pdf, tr, "Rejection reason", *rr.RejectionReason)
	}
	pdf.Ln(4)

	section(pdf, "Timeline")
	for i, e := range rr.TimelineLog {
		pdf.SetFont("Helvetica", "B", 10)
		head := fmt.Sprintf("%d. %s", i+1, e.Step)
		pdf.CellFormat(pageWidth, lineHeight, tr(head), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		who := e.Actor.Name
		if who == "" {
			who = e.Actor.ID.String()
		}
		line := e.At.UTC().Format(timeLayout) + " by " + who + " (" + string(e.Role) + ")"
		pdf.CellFormat(pageWidth, 5, tr(line), "", 1, "L", false, 0, "")
		if e.Message != "" {
			pdf.MultiCell(pageWidth, 5, tr(e.Message), "", "L", false)
		}
		if e.SignatureID != nil {
			pdf.CellFormat(pageWidth, 5, "Signature fingerprint "+Fingerprint(*e.SignatureID), "", 1, "L", false, 0, "")
		}
		if len(e.Metadata) > 0 {
			pdf.MultiCell(pageWidth, 5, tr(formatMetadata(e.Metadata)), "", "L", false)
		}
		pdf.Ln(2)
	}

	pdf.Ln(4)
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(pageWidth, 5, "BLAKE2b-256 "+sum, "T", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render proof %s: %w", rr.ID, err)
	}
	return buf.Bytes(), nil
}

// Checksum is the BLAKE2b-256 digest of the redemption's identifying fields
// and timeline. It is printed on the proof so a copy can be checked against
// the stored record.
func Checksum(rr domain.RedemptionRequest) (string, error) {
	payload, err := json.Marshal(struct {
		ID       string                 `json:"id"`
		UserID   string                 `json:"userId"`
		Amount   string                 `json:"amount"`
		Currency string                 `json:"currency"`
		Credit   string                 `json:"creditTransactionId"`
		Timeline []domain.TimelineEntry `json:"timeline"`
	}{
		ID:       rr.ID.String(),
		UserID:   rr.UserID.String(),
		Amount:   rr.Amount.StringFixed(2),
		Currency: string(rr.Currency),
		Credit:   rr.CreditTransactionID.String(),
		Timeline: rr.TimelineLog,
	})
	if err != nil {
		return "", fmt.Errorf("encode checksum payload: %w", err)
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Fingerprint shortens a signature id to a printable digest.
func Fingerprint(signatureID string) string {
	sum := blake2b.Sum256([]byte(signatureID))
	return hex.EncodeToString(sum[:8])
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(pageWidth, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func field(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelWidth, lineHeight, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(pageWidth-labelWidth, lineHeight, tr(value), "", "L", false)
}

func formatMetadata(md map[string]any) string {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b bytes.Buffer
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, md[k])
	}
	return b.String()
}

