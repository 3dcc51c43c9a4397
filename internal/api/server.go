// internal/api/server.go

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/arbeit-tech/billing-service/pkg/document"
	"github.com/arbeit-tech/billing-service/pkg/lifecycle"
	"github.com/arbeit-tech/billing-service/pkg/render"

	_ "github.com/arbeit-tech/billing-service/docs"
)

// Documents is the lifecycle surface the handlers call into.
type Documents interface {
	render.Source

	CreateQuotation(ctx context.Context, in lifecycle.QuotationInput) (*document.Quotation, error)
	CreateInvoice(ctx context.Context, in lifecycle.InvoiceInput) (*document.Invoice, error)
	DeriveInvoiceFromQuotation(ctx context.Context, quotationID string) (*document.Invoice, error)
	CreateReceipt(ctx context.Context, in lifecycle.ReceiptInput) (*document.Receipt, error)
	DeriveReceiptFromInvoice(ctx context.Context, invoiceID string) (*document.Receipt, error)
	ReceiptsForInvoice(ctx context.Context, invoiceID string) ([]document.Receipt, error)
}

// Server serves the JSON and PDF routes under /api.
type Server struct {
	docs      Documents
	publisher *render.Publisher
	mailer    Mailer
	log       zerolog.Logger
	router    *mux.Router
}

// NewServer builds the router. A nil mailer falls back to a LogMailer.
func NewServer(docs Documents, publisher *render.Publisher, mailer Mailer, log zerolog.Logger) *Server {
	if mailer == nil {
		mailer = NewLogMailer(log)
	}
	s := &Server{
		docs:      docs,
		publisher: publisher,
		mailer:    mailer,
		log:       log,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(
		hlog.NewHandler(s.log),
		hlog.RequestIDHandler("request_id", "X-Request-Id"),
		hlog.RemoteAddrHandler("remote"),
		hlog.AccessHandler(accessLog),
	)

	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/quotations", s.createQuotation).Methods(http.MethodPost)
	api.HandleFunc("/quotations/{id}", s.getQuotation).Methods(http.MethodGet)
	api.HandleFunc("/quotations/{id}/pdf", s.documentPDF(document.KindQuotation)).Methods(http.MethodGet)

	api.HandleFunc("/invoices", s.createInvoice).Methods(http.MethodPost)
	api.HandleFunc("/invoices/from-quotation/{quotationId}", s.invoiceFromQuotation).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}", s.getInvoice).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}/pdf", s.documentPDF(document.KindInvoice)).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id}/email", s.emailInvoice).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{id}/receipts", s.invoiceReceipts).Methods(http.MethodGet)

	api.HandleFunc("/receipts", s.createReceipt).Methods(http.MethodPost)
	api.HandleFunc("/receipts/from-invoice/{invoiceId}", s.receiptFromInvoice).Methods(http.MethodGet)
	api.HandleFunc("/receipts/{id}", s.getReceipt).Methods(http.MethodGet)
	api.HandleFunc("/receipts/{id}/pdf", s.documentPDF(document.KindReceipt)).Methods(http.MethodGet)
	api.HandleFunc("/receipts/{id}/email", s.emailReceipt).Methods(http.MethodPost)
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// within grace.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	s.log.Info().Msg("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// index godoc
// @Summary Liveness message
// @Produce plain
// @Success 200 {string} string "API is running..."
// @Router / [get]
func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("API is running..."))
}
