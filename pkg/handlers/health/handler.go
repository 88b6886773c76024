package health

import (
	"net/http"
	"time"

	"github.com/de-tools/tally-gateway/pkg/handlers/response"
	"github.com/de-tools/tally-gateway/pkg/models/api"
)

type Handler struct {
	host string
	port int
	now  func() time.Time
}

// NewHandler reports the gateway as up without contacting Tally; use
// /api/companies/test for a live check.
func NewHandler(host string, port int) *Handler {
	return &Handler{host: host, port: port, now: time.Now}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, api.Health{
		Status:    "ok",
		Tally:     api.TallyAddr{Host: h.host, Port: h.port},
		Timestamp: h.now().UTC(),
	})
}
