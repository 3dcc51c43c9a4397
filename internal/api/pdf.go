// internal/api/pdf.go

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/render"
)

type invoiceEmailResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ClientEmail string `json:"clientEmail"`
	InvoiceID   string `json:"invoiceId"`
	PDFPath     string `json:"pdfPath"`
}

type receiptEmailResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ReceiptID string `json:"receiptId"`
	PDFPath   string `json:"pdfPath"`
}

// documentPDF godoc
// @Summary Render a document and download it as PDF
// @Tags pdf
// @Produce application/pdf
// @Param id path string true "Business ID"
// @Success 200 {file} file
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/quotations/{id}/pdf [get]
// @Router /api/invoices/{id}/pdf [get]
// @Router /api/receipts/{id}/pdf [get]
func (s *Server) documentPDF(kind document.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		art, err := s.publisher.Publish(r.Context(), kind, mux.Vars(r)["id"])
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.sendPDF(w, r, art)
	}
}

// sendPDF streams the stored artifact, falling back to the rendered bytes
// when the file cannot be opened.
func (s *Server) sendPDF(w http.ResponseWriter, r *http.Request, art *render.Artifact) {
	name := fmt.Sprintf("%s-%s.pdf", art.Kind.Title(), art.ID)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	f, err := s.publisher.Files().Open(art.Kind, art.ID)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("path", art.Path).Msg("sending rendered bytes instead of stored file")
		w.Header().Set("Content-Length", strconv.Itoa(len(art.Output.Bytes)))
		_, _ = w.Write(art.Output.Bytes)
		return
	}
	defer f.Close()

	http.ServeContent(w, r, name, time.Time{}, f)
}

// emailInvoice godoc
// @Summary Render an invoice and hand it to the mailer
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} invoiceEmailResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/invoices/{id}/email [post]
func (s *Server) emailInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	inv, err := s.docs.GetInvoice(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	art, err := s.publisher.Publish(ctx, document.KindInvoice, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = s.mailer.Send(ctx, Message{
		To:             inv.Email,
		Subject:        "Invoice " + inv.InvoiceID,
		Body:           "Please find your invoice attached.",
		AttachmentPath: art.Path,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, invoiceEmailResponse{
		Success:     true,
		Message:     "Invoice would be emailed here",
		ClientEmail: inv.Email,
		InvoiceID:   inv.InvoiceID,
		PDFPath:     art.Path,
	})
}

// emailReceipt godoc
// @Summary Render a receipt and hand it to the mailer
// @Tags receipts
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 200 {object} receiptEmailResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/receipts/{id}/email [post]
func (s *Server) emailReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	rec, err := s.docs.GetReceipt(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	art, err := s.publisher.Publish(ctx, document.KindReceipt, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = s.mailer.Send(ctx, Message{
		To:             rec.Email,
		Subject:        "Receipt " + rec.ReceiptID,
		Body:           "Thank you for your payment. Your receipt is attached.",
		AttachmentPath: art.Path,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, receiptEmailResponse{
		Success:   true,
		Message:   "Receipt PDF generated successfully",
		ReceiptID: rec.ReceiptID,
		PDFPath:   art.Path,
	})
}
