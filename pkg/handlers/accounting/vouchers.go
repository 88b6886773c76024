package accounting

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/de-tools/tally-gateway/pkg/adapters"
	"github.com/de-tools/tally-gateway/pkg/handlers/response"
	"github.com/de-tools/tally-gateway/pkg/services/document"
	"github.com/rs/zerolog"
)

func (h *Handler) ListVouchers(w http.ResponseWriter, r *http.Request) {
	p, err := period(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	vouchers, err := h.svc.ListVouchers(r.Context(), r.URL.Query().Get("type"), p)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.List(w, r, adapters.MapDomainVouchersToApi(vouchers))
}

func (h *Handler) GetVoucher(w http.ResponseWriter, r *http.Request) {
	key, err := pathParam(r, "vchkey")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	voucher, err := h.svc.GetVoucher(r.Context(), key)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, adapters.MapDomainVoucherToApiVoucher(voucher))
}

func (h *Handler) VoucherPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, err := pathParam(r, "vchkey")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	voucher, err := h.svc.GetVoucher(ctx, key)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := document.VoucherPDF(&buf, h.company, voucher); err != nil {
		response.Error(w, r, err)
		return
	}
	name := voucher.Number
	if name == "" {
		name = voucher.Key
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "voucher-"+fileName(name)+".pdf"))
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("vchkey", key).Msg("failed to write voucher pdf")
	}
}
