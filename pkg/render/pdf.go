// pkg/render/pdf.go

// Package render lays out billing documents as A4 PDFs and stores the
// resulting artifacts.
//
// Rendering is deterministic: the same Document always produces the same
// bytes. Coordinates are PDF points measured from the top-left corner.
package render

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/arbeit-tech/billing-service/pkg/document"
)

const (
	margin       = 50.0
	contentRight = 545.0
	contentWidth = contentRight - margin

	lineHeight = 14.0
	rowStep    = 20.0

	// A row ending past pageBreakY starts a new page when rows remain.
	pageBreakY = 700.0
	// Blocks that would extend past bottomLimit move to a new page.
	bottomLimit = 792.0
	footerY     = 750.0

	colDescription   = 50.0
	colQty           = 300.0
	colRate          = 350.0
	colAmount        = 445.0
	amountWidth      = 100.0
	descriptionWidth = colQty - colDescription - 10

	summaryX      = 400.0
	summaryHeight = 18 + 70 + lineHeight

	fontFamily = "Helvetica"
)

var (
	black      = rgb{0, 0, 0}
	footerGrey = rgb{102, 102, 102}
)

type rgb struct{ r, g, b int }

// DefaultBrand and the footer lines are used unless overridden with options.
const (
	DefaultBrand   = "Arbeit Tech"
	DefaultThanks  = "Thank you for your business!"
	DefaultContact = "Arbeit • Dhaka, Bangladesh • Contact: 01747579362"
)

// RowPlacement is where one line item was drawn.
type RowPlacement struct {
	Index  int
	Page   int
	Top    float64
	Bottom float64
}

// Summary holds the figures printed in the totals block.
type Summary struct {
	Page     int
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	// BalanceDue is zero when no balance line is drawn.
	BalanceDue decimal.Decimal
}

// Layout describes the placement decisions of a render.
type Layout struct {
	Pages        int
	Rows         []RowPlacement
	FooterPage   int
	RunningTotal decimal.Decimal
	Summary      Summary
}

// Output is a rendered PDF.
type Output struct {
	Bytes  []byte
	Layout Layout
}

// Renderer turns normalized documents into PDFs. It holds no per-render
// state and is safe for concurrent use.
type Renderer struct {
	brand   string
	thanks  string
	contact string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBrand sets the company name printed in the header.
func WithBrand(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.brand = name
		}
	}
}

// WithContact sets the contact line printed in the footer.
func WithContact(line string) Option {
	return func(r *Renderer) {
		if line != "" {
			r.contact = line
		}
	}
}

// NewRenderer returns a Renderer using the default brand and footer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{brand: DefaultBrand, thanks: DefaultThanks, contact: DefaultContact}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays out doc. Missing numeric values render as zero.
func (r *Renderer) Render(doc Document) (*Output, error) {
	kl, ok := layouts[doc.Kind]
	if !ok {
		return nil, &RenderError{Op: "layout", Err: ErrUnknownKind}
	}

	created := doc.Date
	if created.IsZero() {
		created = time.Unix(0, 0).UTC()
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle(doc.Kind.Title()+" "+doc.ID, true)
	pdf.SetCreator(r.brand, true)

	c := &canvas{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		fmt: newFormatter(),
	}
	c.newPage()

	c.header(r.brand, kl.label)
	c.metadata(doc, kl)
	kl.party(c, doc)

	layout := Layout{RunningTotal: decimal.Zero}
	if len(doc.Items) > 0 {
		c.items(doc.Items, &layout)
	}
	c.summary(doc, kl, &layout)
	if kl.trailer != nil {
		kl.trailer(c, doc)
	}
	c.footer(r.thanks, r.contact)

	layout.FooterPage = pdf.PageNo()
	layout.Pages = pdf.PageCount()

	if err := pdf.Error(); err != nil {
		return nil, &RenderError{Op: "layout", Err: err}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Op: "encode", Err: err}
	}
	return &Output{Bytes: buf.Bytes(), Layout: layout}, nil
}

// canvas tracks the vertical cursor while a document is drawn.
type canvas struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	fmt formatter
	y   float64
}

func (c *canvas) newPage() {
	c.pdf.AddPage()
	c.y = margin
}

func (c *canvas) font(style string, size float64) {
	c.pdf.SetFont(fontFamily, style, size)
}

func (c *canvas) color(col rgb) {
	c.pdf.SetTextColor(col.r, col.g, col.b)
}

// textAt draws s in a single-line cell at (x, y).
func (c *canvas) textAt(x, y, w float64, s, align string) {
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(w, lineHeight, c.tr(s), "", 0, align, false, 0, "")
}

// line draws s at the left margin and advances the cursor.
func (c *canvas) line(s string) {
	c.textAt(margin, c.y, contentWidth, s, "L")
	c.y += lineHeight
}

func (c *canvas) heading(s string) {
	c.font("BU", 12)
	c.textAt(margin, c.y, contentWidth, s, "L")
	c.y += 18
	c.font("", 10)
}

// pair draws a label at x and a right-aligned value ending at the right margin.
func (c *canvas) pair(x, y float64, label, value string) {
	c.textAt(x, y, contentRight-x, label, "L")
	c.textAt(colAmount, y, amountWidth, value, "R")
}

func (c *canvas) header(brand, label string) {
	c.font("B", 20)
	c.pdf.SetXY(margin, c.y)
	c.pdf.CellFormat(contentWidth, 24, c.tr(brand), "", 0, "C", false, 0, "")
	c.y += 28

	c.font("B", 16)
	c.pdf.SetXY(margin, c.y)
	c.pdf.CellFormat(contentWidth, 20, label, "", 0, "C", false, 0, "")
	c.y += 30
}

func (c *canvas) metadata(doc Document, kl kindLayout) {
	c.font("", 10)
	c.line(doc.Kind.Title() + " ID: " + doc.ID)
	c.line("Date: " + formatDate(doc.Date))
	if kl.meta != nil {
		kl.meta(c, doc)
	}

	c.y += 10
	c.pdf.Line(margin, c.y, contentRight, c.y)
	c.y += 15
}

func (c *canvas) client(label string, cl document.Client) {
	c.line(label + cl.Name)
	if cl.Email != "" {
		c.line("Email: " + cl.Email)
	}
	if cl.Address != "" {
		c.line("Address: " + cl.Address)
	}
	if cl.Phone != "" {
		c.line("Phone: " + cl.Phone)
	}
	c.y += 10
}

func (c *canvas) items(items []document.LineItem, layout *Layout) {
	c.heading("SERVICES / ITEMS")
	top := c.y + 2

	c.font("B", 10)
	c.textAt(colDescription, top, descriptionWidth, "Description", "L")
	c.textAt(colQty, top, colRate-colQty, "Qty", "L")
	c.textAt(colRate, top, colAmount-colRate, "Rate", "L")
	c.textAt(colAmount, top, amountWidth, "Amount", "R")
	c.pdf.Line(margin, top+15, contentRight, top+15)

	c.font("", 10)
	c.y = top + 25
	running := decimal.Zero
	for i, item := range items {
		amount := decimal.NewFromInt(int64(item.Quantity)).Mul(item.Price)
		running = running.Add(amount)

		desc := strings.TrimSpace(item.Description)
		if desc == "" {
			desc = "Service"
		}
		c.textAt(colDescription, c.y, descriptionWidth, c.clip(desc, descriptionWidth), "L")
		c.textAt(colQty, c.y, colRate-colQty, strconv.Itoa(item.Quantity), "L")
		c.textAt(colRate, c.y, colAmount-colRate, c.fmt.amount(item.Price), "L")
		c.textAt(colAmount, c.y, amountWidth, c.fmt.amount(amount), "R")

		layout.Rows = append(layout.Rows, RowPlacement{
			Index:  i,
			Page:   c.pdf.PageNo(),
			Top:    c.y,
			Bottom: c.y + lineHeight,
		})

		c.y += rowStep
		if c.y > pageBreakY && i < len(items)-1 {
			c.newPage()
		}
	}
	layout.RunningTotal = running
}

// clip shortens s with a trailing "..." so it fits in w at the current font.
func (c *canvas) clip(s string, w float64) string {
	if c.pdf.GetStringWidth(c.tr(s)) <= w {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		cut := strings.TrimRight(string(runes[:n]), " ") + "..."
		if c.pdf.GetStringWidth(c.tr(cut)) <= w {
			return cut
		}
	}
	return "..."
}

// summary draws the totals block, moving it whole to a new page if it would
// not fit above the bottom margin.
func (c *canvas) summary(doc Document, kl kindLayout, layout *Layout) {
	c.y += 10
	if c.y+summaryHeight+kl.summaryExtraHeight > bottomLimit {
		c.newPage()
	}

	subtotal := doc.Subtotal
	if subtotal.IsZero() {
		subtotal = layout.RunningTotal
	}
	total := doc.TotalAmount
	if total.IsZero() {
		total = layout.RunningTotal
	}
	tax := document.TaxAmount(subtotal, doc.TaxPercent)
	layout.Summary = Summary{
		Page:     c.pdf.PageNo(),
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
	}

	c.heading("SUMMARY")
	top := c.y
	c.pair(summaryX, top, "Subtotal:", c.fmt.amount(subtotal))
	c.pair(summaryX, top+20, "Discount:", c.fmt.negative(doc.Discount))
	c.pair(summaryX, top+40, "Tax ("+c.fmt.percent(doc.TaxPercent)+"):", c.fmt.amount(tax))
	c.pdf.Line(summaryX, top+60, contentRight, top+60)

	c.font("B", 10)
	c.pair(summaryX, top+70, "Total:", c.fmt.amount(total))
	c.font("", 10)
	c.y = top + 70 + lineHeight

	if kl.summaryExtra != nil {
		kl.summaryExtra(c, doc, &layout.Summary)
	}
}

// footer is anchored at a fixed offset on the current, last page.
func (c *canvas) footer(thanks, contact string) {
	c.font("", 8)
	c.color(footerGrey)
	c.pdf.SetXY(margin, footerY)
	c.pdf.CellFormat(contentWidth, 10, c.tr(thanks), "", 0, "C", false, 0, "")
	c.pdf.SetXY(margin, footerY+15)
	c.pdf.CellFormat(contentWidth, 10, c.tr(contact), "", 0, "C", false, 0, "")
	c.color(black)
}
