package accounting

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/de-tools/tally-gateway/pkg/adapters"
	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/services/accounting"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc     accounting.Service
	company string
}

// NewHandler serves the read routes. company only labels rendered documents.
func NewHandler(svc accounting.Service, company string) *Handler {
	return &Handler{svc: svc, company: company}
}

// Routes mounts every read route on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/companies", h.ListCompanies)
	r.Get("/companies/test", h.TestConnection)

	r.Get("/ledgers", h.ListLedgers)
	r.Get("/ledgers/{name}", h.GetLedger)
	r.Get("/ledgers/{name}/vouchers", h.LedgerVouchers)

	r.Get("/vouchers", h.ListVouchers)
	r.Get("/vouchers/{vchkey}", h.GetVoucher)
	r.Get("/vouchers/{vchkey}/pdf", h.VoucherPDF)

	r.Get("/stock", h.ListStock)
	r.Get("/stock/{name}", h.GetStockItem)

	r.Get("/reports/outstanding", h.Outstanding)
	r.Get("/reports/trial-balance", h.TrialBalance)
}

// pathParam returns the unescaped URL parameter. chi matches on RawPath when the
// request carried escapes Go would not produce itself (such as %26 for "&"), and then
// hands back the raw segment; otherwise the segment is already decoded.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(v)
		if err != nil {
			return "", &domain.ValidationError{Message: "invalid " + key + ": " + err.Error()}
		}
		v = unescaped
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", &domain.ValidationError{Message: key + " is required"}
	}
	return v, nil
}

// period reads fromDate and toDate. Either may be omitted.
func period(r *http.Request) (domain.Period, error) {
	var p domain.Period
	q := r.URL.Query()
	if from := q.Get("fromDate"); from != "" {
		t, err := adapters.ParseDate(from)
		if err != nil {
			return p, &domain.ValidationError{Message: "fromDate: " + err.Error()}
		}
		p.From = t
	}
	if to := q.Get("toDate"); to != "" {
		t, err := adapters.ParseDate(to)
		if err != nil {
			return p, &domain.ValidationError{Message: "toDate: " + err.Error()}
		}
		p.To = t
	}
	if !p.From.IsZero() && !p.To.IsZero() && p.To.Before(p.From) {
		return p, &domain.ValidationError{Message: "toDate is before fromDate"}
	}
	return p, nil
}
