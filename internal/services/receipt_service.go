package services

import (
	"bytes"
	"fmt"
	"time"

	"boardinghouse-backend/internal/repositories"
	"boardinghouse-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders payment receipts as PDF for the admin payment
// surface.
type ReceiptService struct {
	Payments  repositories.PaymentRepository
	RequestID string
}

func (s ReceiptService) GenerateReceipt(paymentID int64) ([]byte, string, error) {
	p, err := s.Payments.GetByID(paymentID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("payment_id=%d", paymentID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	receiptNo := fmt.Sprintf("RCPT-%06d", p.ID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Receipt No : "+receiptNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Received from:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Tenant : "+safe(p.TenantName, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Room   : "+safe(p.RoomNumber, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		"Payment date : " + safe(p.PaymentDate, "-"),
		"Method       : " + safe(p.Method, "-"),
		"Reference    : " + safe(p.ReferenceNo, "-"),
		"Status       : " + string(p.Status),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 9, fmt.Sprintf("Amount: %s %s", p.Currency, utils.FormatMoney(p.Amount)))
	pdf.Ln(12)

	if p.Notes != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Notes: "+p.Notes, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), receiptNo + ".pdf", nil
}

func safe(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
