// pkg/document/invoice.go

package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	StatusUnpaid        InvoiceStatus = "Unpaid"
	StatusPartiallyPaid InvoiceStatus = "Partially Paid"
	StatusPaid          InvoiceStatus = "Paid"
)

// Invoice represents the invoice data model. Financial fields are frozen at
// creation; only Status changes afterwards.
type Invoice struct {
	Key       uuid.UUID `json:"_id" db:"id"`
	InvoiceID string    `json:"invoiceId" db:"invoice_id"`
	// QuotationID is empty for invoices created directly.
	QuotationID string `json:"quotationId,omitempty" db:"quotation_id"`

	Client

	Services    LineItems       `json:"services" db:"services"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
	Discount    decimal.Decimal `json:"discount" db:"discount"`
	Tax         decimal.Decimal `json:"tax" db:"tax"`
	TotalAmount decimal.Decimal `json:"totalAmount" db:"total_amount"`

	Status    InvoiceStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}

// StatusFor derives an invoice status from the cumulative amount paid
// against it. Overpayment is reported as Paid.
func StatusFor(paid, total decimal.Decimal) InvoiceStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return StatusPaid
	case paid.IsPositive():
		return StatusPartiallyPaid
	default:
		return StatusUnpaid
	}
}

// Outstanding is the amount still owed after paid, never negative.
func (inv *Invoice) Outstanding(paid decimal.Decimal) decimal.Decimal {
	rest := inv.TotalAmount.Sub(paid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
