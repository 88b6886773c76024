package accounting

import (
	"net/http"

	"github.com/de-tools/tally-gateway/pkg/adapters"
	"github.com/de-tools/tally-gateway/pkg/handlers/response"
	"github.com/de-tools/tally-gateway/pkg/models/api"
)

func (h *Handler) ListStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListStock(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]api.StockItem, 0, len(items))
	for _, s := range items {
		out = append(out, adapters.MapDomainStockItemToApi(s))
	}
	response.List(w, r, out)
}

func (h *Handler) GetStockItem(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	item, err := h.svc.GetStockItem(r.Context(), name)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, adapters.MapDomainStockItemToApi(item))
}
