package accounting

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/de-tools/tally-gateway/pkg/adapters"
	"github.com/de-tools/tally-gateway/pkg/handlers/response"
	"github.com/de-tools/tally-gateway/pkg/models/api"
	"github.com/de-tools/tally-gateway/pkg/services/document"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) ListLedgers(w http.ResponseWriter, r *http.Request) {
	ledgers, err := h.svc.ListLedgers(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]api.Ledger, 0, len(ledgers))
	for _, l := range ledgers {
		out = append(out, adapters.MapDomainLedgerToApiLedger(l))
	}
	response.List(w, r, out)
}

func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	ledger, err := h.svc.GetLedger(r.Context(), name)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, adapters.MapDomainLedgerToApiLedger(ledger))
}

// LedgerVouchers answers JSON by default and an XLSX download for format=xlsx.
func (h *Handler) LedgerVouchers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name, err := pathParam(r, "name")
	if err != nil {
		response.Error(w, r, err)
		return
	}
	p, err := period(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	vouchers, err := h.svc.LedgerVouchers(ctx, name, p)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if !strings.EqualFold(r.URL.Query().Get("format"), "xlsx") {
		response.List(w, r, adapters.MapDomainVouchersToApi(vouchers))
		return
	}

	var buf bytes.Buffer
	if err := document.LedgerVouchersXLSX(&buf, name, vouchers); err != nil {
		response.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName(name)+"-vouchers.xlsx"))
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("ledger", name).Msg("failed to write workbook")
	}
}

// fileName keeps a name safe for a Content-Disposition header.
func fileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
