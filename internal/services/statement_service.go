package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"paymentapi/internal/domain"
	"paymentapi/internal/domain/dto"
	"paymentapi/internal/utils"

	"github.com/phpdave11/gofpdf"
)

type TransactionLister interface {
	List(ctx context.Context, req dto.TransactionListRequest) (dto.TransactionListResponse, error)
}

// StatementService renders a transaction listing as a PDF statement.
type StatementService struct {
	Listing   TransactionLister
	RequestID string
}

func (s StatementService) Generate(ctx context.Context, req dto.TransactionListRequest) ([]byte, string, error) {
	resp, err := s.Listing.List(ctx, req)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "statement", "generate",
		fmt.Sprintf("merchant_id=%s rows=%d", resp.MerchantID, len(resp.Transactions)))
	return s.Render(resp)
}

func (s StatementService) Render(resp dto.TransactionListResponse) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Transaction Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "TRANSACTION STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Merchant : "+resp.MerchantID)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Period   : "+formatBound(resp.DateRange.Start)+" - "+formatBound(resp.DateRange.End))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Page     : "+pageLine(resp.Pagination))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Summary")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Total transactions: %d", resp.Summary.TotalTransactions))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Total amount: "+resp.Summary.TotalAmount.String()+" "+resp.Summary.Currency)
	pdf.Ln(6)
	statuses := make([]string, 0, len(resp.Summary.ByStatus))
	for st := range resp.Summary.ByStatus {
		statuses = append(statuses, st)
	}
	sort.Strings(statuses)
	for _, st := range statuses {
		pdf.Cell(0, 6, fmt.Sprintf("  %s: %d", st, resp.Summary.ByStatus[st]))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	widths := []float64{22, 40, 28, 25, 30, 45}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"ID", "Time (UTC)", "Amount", "Status", "Card", "Acquirer/Issuer"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range resp.Transactions {
		cells := []string{
			fmt.Sprintf("%d", t.ID),
			utils.FormatDateTime(t.Timestamp),
			t.Amount.String() + " " + t.Currency,
			t.Status,
			strings.TrimSpace(t.CardType + " " + t.CardLast4),
			deref(t.AcquirerName) + "/" + deref(t.IssuerName),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		for _, d := range t.Details {
			pdf.CellFormat(widths[0], 5, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, fmt.Sprintf("%s %s %s", d.Type, d.Amount.String(), d.Description), "", 0, "L", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render statement", Err: err}
	}
	filename := fmt.Sprintf("statement-%s-p%d.pdf", resp.MerchantID, resp.Pagination.Page)
	return buf.Bytes(), filename, nil
}

// pageLine never reports fewer than one page, so an empty listing reads
// "1 of 1".
func pageLine(p dto.Pagination) string {
	return fmt.Sprintf("%d of %d (%d transactions)", p.Page+1, max(p.TotalPages, 1), p.TotalElements)
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return utils.FormatDateTime(*t)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
