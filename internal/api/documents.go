// internal/api/documents.go

package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/lifecycle"
)

// createQuotation godoc
// @Summary Create a quotation
// @Tags quotations
// @Accept json
// @Produce json
// @Param quotation body lifecycle.QuotationInput true "Quotation"
// @Success 201 {object} document.Quotation
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/quotations [post]
func (s *Server) createQuotation(w http.ResponseWriter, r *http.Request) {
	var in lifecycle.QuotationInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	q, err := s.docs.CreateQuotation(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// getQuotation godoc
// @Summary Get a quotation by business id
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} document.Quotation
// @Failure 404 {object} errorResponse
// @Router /api/quotations/{id} [get]
func (s *Server) getQuotation(w http.ResponseWriter, r *http.Request) {
	q, err := s.docs.GetQuotation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// createInvoice godoc
// @Summary Create an invoice directly
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body lifecycle.InvoiceInput true "Invoice"
// @Success 201 {object} document.Invoice
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/invoices [post]
func (s *Server) createInvoice(w http.ResponseWriter, r *http.Request) {
	var in lifecycle.InvoiceInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	inv, err := s.docs.CreateInvoice(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

// getInvoice godoc
// @Summary Get an invoice by business id
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} document.Invoice
// @Failure 404 {object} errorResponse
// @Router /api/invoices/{id} [get]
func (s *Server) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := s.docs.GetInvoice(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// invoiceFromQuotation godoc
// @Summary Derive an invoice from a quotation
// @Tags invoices
// @Produce json
// @Param quotationId path string true "Quotation ID"
// @Success 201 {object} document.Invoice
// @Failure 404 {object} errorResponse
// @Router /api/invoices/from-quotation/{quotationId} [get]
func (s *Server) invoiceFromQuotation(w http.ResponseWriter, r *http.Request) {
	inv, err := s.docs.DeriveInvoiceFromQuotation(r.Context(), mux.Vars(r)["quotationId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

// invoiceReceipts godoc
// @Summary List receipts recorded against an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {array} document.Receipt
// @Failure 404 {object} errorResponse
// @Router /api/invoices/{id}/receipts [get]
func (s *Server) invoiceReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := s.docs.ReceiptsForInvoice(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	if receipts == nil {
		receipts = []document.Receipt{}
	}
	writeJSON(w, http.StatusOK, receipts)
}

// createReceipt godoc
// @Summary Record a payment against an invoice
// @Description Updates the invoice status from the sum of its receipts when the invoice exists.
// @Tags receipts
// @Accept json
// @Produce json
// @Param receipt body lifecycle.ReceiptInput true "Receipt"
// @Success 201 {object} document.Receipt
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/receipts [post]
func (s *Server) createReceipt(w http.ResponseWriter, r *http.Request) {
	var in lifecycle.ReceiptInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	rec, err := s.docs.CreateReceipt(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// receiptFromInvoice godoc
// @Summary Derive a full-payment receipt and mark the invoice paid
// @Tags receipts
// @Produce json
// @Param invoiceId path string true "Invoice ID"
// @Success 201 {object} document.Receipt
// @Failure 404 {object} errorResponse
// @Router /api/receipts/from-invoice/{invoiceId} [get]
func (s *Server) receiptFromInvoice(w http.ResponseWriter, r *http.Request) {
	rec, err := s.docs.DeriveReceiptFromInvoice(r.Context(), mux.Vars(r)["invoiceId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// getReceipt godoc
// @Summary Get a receipt by business id
// @Tags receipts
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 200 {object} document.Receipt
// @Failure 404 {object} errorResponse
// @Router /api/receipts/{id} [get]
func (s *Server) getReceipt(w http.ResponseWriter, r *http.Request) {
	rec, err := s.docs.GetReceipt(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
