package accounting

import (
	"net/http"

	"github.com/de-tools/tally-gateway/pkg/adapters"
	"github.com/de-tools/tally-gateway/pkg/handlers/response"
	"github.com/de-tools/tally-gateway/pkg/models/api"
)

func (h *Handler) Outstanding(w http.ResponseWriter, r *http.Request) {
	p, err := period(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	bills, err := h.svc.Outstanding(r.Context(), p)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]api.OutstandingBill, 0, len(bills))
	for _, b := range bills {
		out = append(out, adapters.MapDomainOutstandingBillToApi(b))
	}
	response.List(w, r, out)
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	p, err := period(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	groups, err := h.svc.TrialBalance(r.Context(), p)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]api.TrialBalanceGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, adapters.MapDomainTrialBalanceGroupToApi(g))
	}
	response.List(w, r, out)
}

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.svc.ListCompanies(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]api.Company, 0, len(companies))
	for _, c := range companies {
		out = append(out, adapters.MapDomainCompanyToApiCompany(c))
	}
	response.List(w, r, out)
}

func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.TestConnection(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, adapters.MapDomainConnectionStatusToApi(status))
}
