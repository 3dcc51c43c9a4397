// pkg/document/quotation.go

package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus is reserved for future transitions; quotations are created Pending.
type QuotationStatus string

// QuotationPending is the only status a quotation ever has.
const QuotationPending QuotationStatus = "Pending"

// Quotation is an offer sent to a client before any work is invoiced.
type Quotation struct {
	Key         uuid.UUID `json:"_id" db:"id"`
	QuotationID string    `json:"quotationId" db:"quotation_id"`

	Client

	Services    LineItems       `json:"services" db:"services"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
	Discount    decimal.Decimal `json:"discount" db:"discount"`
	Tax         decimal.Decimal `json:"tax" db:"tax"`
	TotalAmount decimal.Decimal `json:"totalAmount" db:"total_amount"`

	ValidityDate *time.Time      `json:"validityDate,omitempty" db:"validity_date"`
	Terms        string          `json:"terms,omitempty" db:"terms"`
	Status       QuotationStatus `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}
