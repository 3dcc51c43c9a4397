// pkg/document/receipt.go

package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod is recorded when a receipt is derived from an invoice.
const DefaultPaymentMethod = "Cash"

// Receipt acknowledges one payment against one invoice. Receipts are immutable.
type Receipt struct {
	Key       uuid.UUID `json:"_id" db:"id"`
	ReceiptID string    `json:"receiptId" db:"receipt_id"`
	InvoiceID string    `json:"invoiceId" db:"invoice_id"`

	Client

	AmountPaid    decimal.Decimal `json:"amountPaid" db:"amount_paid"`
	PaymentMethod string          `json:"paymentMethod" db:"payment_method"`
	TransactionID string          `json:"transactionId,omitempty" db:"transaction_id"`
	Date          time.Time       `json:"date" db:"date"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// TotalPaid sums AmountPaid over receipts.
func TotalPaid(receipts []Receipt) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range receipts {
		sum = sum.Add(r.AmountPaid)
	}
	return sum
}
