// pkg/document/document.go

// Package document holds the billing document model shared by the lifecycle
// engine, the stores and the PDF renderer: quotations, invoices and receipts,
// their line items and the identifier scheme.
package document

import (
	"database/sql/driver"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as plain JSON numbers, the way the web client sends them.
	decimal.MarshalJSONWithoutQuotes = true
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind is one of the three billing document kinds.
type Kind int

const (
	KindQuotation Kind = iota + 1
	KindInvoice
	KindReceipt
)

// Kinds lists every document kind in lifecycle order.
var Kinds = []Kind{KindQuotation, KindInvoice, KindReceipt}

var kindNames = map[Kind]string{
	KindQuotation: "quotation",
	KindInvoice:   "invoice",
	KindReceipt:   "receipt",
}

var kindPrefixes = map[Kind]string{
	KindQuotation: "AT-Q",
	KindInvoice:   "AT-I",
	KindReceipt:   "AT-R",
}

// String returns the lower-case name used in paths and log fields.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Title returns the capitalized name, e.g. "Invoice".
func (k Kind) Title() string {
	name := k.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Prefix returns the business id prefix for the kind.
func (k Kind) Prefix() string {
	return kindPrefixes[k]
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind accepts the singular or plural lower-case name of a kind.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown document kind %q", s)
}

// Client is the identity snapshot copied onto every document.
type Client struct {
	Name    string `json:"clientName" db:"client_name"`
	Address string `json:"clientAddress,omitempty" db:"client_address"`
	Phone   string `json:"clientPhone,omitempty" db:"client_phone"`
	Email   string `json:"clientEmail" db:"client_email"`
}

// LineItem is one billable row of a services table.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// LineTotal is quantity * price. The stored Total is informational only.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// LineItems is stored as a jsonb column.
type LineItems []LineItem

// Value implements driver.Valuer.
func (items LineItems) Value() (driver.Value, error) {
	if items == nil {
		items = LineItems{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (items *LineItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*items = LineItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LineItems", src)
	}
	return json.Unmarshal(raw, items)
}

// Subtotal sums quantity * price over items.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// TaxAmount is subtotal * taxPercent / 100.
func TaxAmount(subtotal, taxPercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxPercent).Shift(-2)
}

// Total is subtotal + tax amount - discount.
func Total(subtotal, discount, taxPercent decimal.Decimal) decimal.Decimal {
	return subtotal.Add(TaxAmount(subtotal, taxPercent)).Sub(discount)
}

// WithLineTotals returns a copy of items whose Total field is quantity * price.
func WithLineTotals(items []LineItem) LineItems {
	out := make(LineItems, len(items))
	for i, item := range items {
		item.Total = item.LineTotal()
		out[i] = item
	}
	return out
}
