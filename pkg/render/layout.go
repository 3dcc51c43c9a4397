// pkg/render/layout.go

package render

import (
	"strings"

	"github.com/arbeit-tech/billing-service/pkg/document"
)

// kindLayout holds the parts of a page that differ between document kinds.
type kindLayout struct {
	label string

	meta  func(c *canvas, doc Document)
	party func(c *canvas, doc Document)

	summaryExtra       func(c *canvas, doc Document, sum *Summary)
	summaryExtraHeight float64

	trailer func(c *canvas, doc Document)
}

var layouts = map[document.Kind]kindLayout{
	document.KindQuotation: {
		label:   "QUOTATION",
		meta:    validUntil,
		party:   billTo,
		trailer: terms,
	},
	document.KindInvoice: {
		label: "INVOICE",
		party: billTo,
	},
	document.KindReceipt: {
		label:              "RECEIPT",
		meta:               paidInvoice,
		party:              receivedFrom,
		summaryExtra:       paymentTotals,
		summaryExtraHeight: 10 + rowStep + lineHeight,
	},
}

var (
	paidGreen   = rgb{21, 87, 36}
	badgeFill   = rgb{212, 237, 218}
	badgeStroke = rgb{195, 230, 203}
	dueAmber    = rgb{133, 100, 4}
)

func validUntil(c *canvas, doc Document) {
	if doc.ValidUntil != nil {
		c.line("Valid until: " + formatDate(*doc.ValidUntil))
	}
}

func paidInvoice(c *canvas, doc Document) {
	c.line("Invoice ID: " + doc.RelatedID)
}

func billTo(c *canvas, doc Document) {
	c.heading("BILL TO")
	c.client("", doc.Client)
}

func receivedFrom(c *canvas, doc Document) {
	c.heading("RECEIPT DETAILS")
	c.client("Received from: ", doc.Client)

	c.heading("PAYMENT INFORMATION")
	c.pair(margin, c.y, "Amount Paid:", c.fmt.amount(doc.AmountPaid))
	c.y += rowStep
	c.pair(margin, c.y, "Payment Method:", doc.PaymentMethod)
	c.y += rowStep
	if doc.TransactionID != "" {
		c.pair(margin, c.y, "Transaction ID:", doc.TransactionID)
		c.y += rowStep
	}
	c.y += 10

	c.pdf.SetFillColor(badgeFill.r, badgeFill.g, badgeFill.b)
	c.pdf.SetDrawColor(badgeStroke.r, badgeStroke.g, badgeStroke.b)
	c.pdf.Rect(summaryX, c.y, contentRight-summaryX, 30, "FD")
	c.pdf.SetDrawColor(black.r, black.g, black.b)

	c.font("B", 12)
	c.color(paidGreen)
	c.pdf.SetXY(summaryX, c.y+8)
	c.pdf.CellFormat(contentRight-summaryX, lineHeight, "PAID", "", 0, "C", false, 0, "")
	c.color(black)
	c.font("", 10)
	c.y += 45
}

func paymentTotals(c *canvas, doc Document, sum *Summary) {
	c.y += 10

	c.font("B", 10)
	c.color(paidGreen)
	c.pair(summaryX, c.y, "Amount Paid:", c.fmt.amount(doc.AmountPaid))

	if doc.AmountPaid.LessThan(sum.Total) {
		sum.BalanceDue = sum.Total.Sub(doc.AmountPaid)
		c.font("", 10)
		c.color(dueAmber)
		c.y += rowStep
		c.pair(summaryX, c.y, "Balance Due:", c.fmt.amount(sum.BalanceDue))
	}
	c.y += lineHeight

	c.font("", 10)
	c.color(black)
}

func terms(c *canvas, doc Document) {
	text := strings.TrimSpace(doc.Terms)
	if text == "" {
		return
	}

	c.y += 20
	if c.y+18+12 > bottomLimit {
		c.newPage()
	}
	c.heading("TERMS & CONDITIONS")

	c.font("", 9)
	for _, l := range c.pdf.SplitLines([]byte(c.tr(text)), contentWidth) {
		if c.y+12 > bottomLimit {
			c.newPage()
		}
		c.pdf.SetXY(margin, c.y)
		c.pdf.CellFormat(contentWidth, 12, string(l), "", 0, "L", false, 0, "")
		c.y += 12
	}
	c.font("", 10)
}
