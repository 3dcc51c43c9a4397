// pkg/lifecycle/input.go

package lifecycle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/arbeit-tech/billing-service/pkg/document"
)

// totalsTolerance is the largest accepted gap between a supplied total and
// the one computed from the line items.
var totalsTolerance = decimal.New(1, -2)

// Date accepts either a calendar date ("2006-01-02") or an RFC 3339 timestamp.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// ClientInput is the client identity supplied with a quotation or invoice.
type ClientInput struct {
	Name    string `json:"clientName" validate:"required,max=200"`
	Address string `json:"clientAddress" validate:"max=500"`
	Phone   string `json:"clientPhone" validate:"max=50"`
	Email   string `json:"clientEmail" validate:"omitempty,email"`
}

func (c ClientInput) client() document.Client {
	return document.Client{
		Name:    strings.TrimSpace(c.Name),
		Address: strings.TrimSpace(c.Address),
		Phone:   strings.TrimSpace(c.Phone),
		Email:   strings.TrimSpace(c.Email),
	}
}

// LineItemInput is one services row. A supplied row total is ignored.
type LineItemInput struct {
	Description string          `json:"description" validate:"max=500"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
}

// QuotationInput is the body accepted by CreateQuotation. Subtotal and
// TotalAmount are optional and computed from Services when omitted.
type QuotationInput struct {
	ClientInput
	Services     []LineItemInput     `json:"services" validate:"dive"`
	Subtotal     decimal.NullDecimal `json:"subtotal"`
	Discount     decimal.Decimal     `json:"discount" validate:"gte=0"`
	Tax          decimal.Decimal     `json:"tax" validate:"gte=0,lte=100"`
	TotalAmount  decimal.NullDecimal `json:"totalAmount"`
	ValidityDate *Date               `json:"validityDate"`
	Terms        string              `json:"terms" validate:"max=5000"`
}

// InvoiceInput is the body accepted by CreateInvoice.
type InvoiceInput struct {
	ClientInput
	QuotationID string              `json:"quotationId" validate:"max=64"`
	Services    []LineItemInput     `json:"services" validate:"dive"`
	Subtotal    decimal.NullDecimal `json:"subtotal"`
	Discount    decimal.Decimal     `json:"discount" validate:"gte=0"`
	Tax         decimal.Decimal     `json:"tax" validate:"gte=0,lte=100"`
	TotalAmount decimal.NullDecimal `json:"totalAmount"`
	Status      string              `json:"status" validate:"omitempty,oneof=Unpaid 'Partially Paid' Paid"`
}

// ReceiptInput is the body accepted by CreateReceipt. Client fields left
// empty are copied from the referenced invoice when it exists.
type ReceiptInput struct {
	InvoiceID     string          `json:"invoiceId" validate:"required,max=64"`
	ClientName    string          `json:"clientName" validate:"max=200"`
	ClientAddress string          `json:"clientAddress" validate:"max=500"`
	ClientPhone   string          `json:"clientPhone" validate:"max=50"`
	ClientEmail   string          `json:"clientEmail" validate:"omitempty,email"`
	AmountPaid    decimal.Decimal `json:"amountPaid" validate:"gte=0"`
	PaymentMethod string          `json:"paymentMethod" validate:"max=100"`
	TransactionID string          `json:"transactionId" validate:"max=200"`
	Date          *Date           `json:"date"`
}

func lineItems(in []LineItemInput) document.LineItems {
	items := make([]document.LineItem, len(in))
	for i, row := range in {
		items[i] = document.LineItem{
			Description: strings.TrimSpace(row.Description),
			Quantity:    row.Quantity,
			Price:       row.Price,
		}
	}
	return document.WithLineTotals(items)
}

// reconcileTotals returns the subtotal and total to persist. With line items
// present, omitted values are computed and supplied values must match the
// computed ones. Without line items, supplied values are kept as given.
func reconcileTotals(items []document.LineItem, subtotal, total decimal.NullDecimal, discount, tax decimal.Decimal, verr *ValidationError) (decimal.Decimal, decimal.Decimal) {
	if subtotal.Valid && subtotal.Decimal.IsNegative() {
		verr.add("subtotal", "must be greater than or equal to 0")
	}

	if len(items) == 0 {
		sub := subtotal.Decimal
		if total.Valid {
			return sub, total.Decimal
		}
		return sub, document.Total(sub, discount, tax)
	}

	sub := document.Subtotal(items)
	if subtotal.Valid && subtotal.Decimal.Sub(sub).Abs().GreaterThan(totalsTolerance) {
		verr.add("subtotal", fmt.Sprintf("does not match line items (expected %s)", sub.StringFixed(2)))
	}

	tot := document.Total(sub, discount, tax)
	if total.Valid && total.Decimal.Sub(tot).Abs().GreaterThan(totalsTolerance) {
		verr.add("totalAmount", fmt.Sprintf("does not match subtotal, tax and discount (expected %s)", tot.StringFixed(2)))
	}
	return sub, tot
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct runs tag validation and converts failures to *ValidationError.
func checkStruct(ctx context.Context, v *validator.Validate, in any) *ValidationError {
	verr := &ValidationError{}

	err := v.StructCtx(ctx, in)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("body", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.add(fieldPath(fe), fieldMessage(fe))
	}
	return verr
}

// fieldPath strips the top-level type name and embedded struct names from
// the validator namespace, e.g. "QuotationInput.services[1].price" -> "services[1].price".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.TrimPrefix(ns, "ClientInput.")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "failed " + fe.Tag() + " validation"
}
