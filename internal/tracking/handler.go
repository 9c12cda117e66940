package tracking

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"passportal/pkg/platform/httputil"
)

// Handler exposes the public tracking endpoint.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the tracking endpoint. It is public: applicants share
// tracking IDs with family, so no session is required.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/track/{id}", h.HandleTrack)
}

type trackResponse struct {
	Status   string        `json:"status"`
	Tracking *TrackingData `json:"tracking"`
}

// HandleTrack handles GET /api/track/{id} requests.
func (h *Handler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Track(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, trackResponse{Status: "success", Tracking: data})
}
