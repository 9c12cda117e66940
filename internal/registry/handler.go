package registry

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"passportal/pkg/platform/httputil"
	"passportal/pkg/requestcontext"
)

// Handler exposes the registry lookups.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts registry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/fetch-details/{nidNumber}", h.HandleFetchDetails)
}

// fetchDetailsResponse wraps PersonDetails in the portal envelope.
type fetchDetailsResponse struct {
	Status  string         `json:"status"`
	Details *PersonDetails `json:"details"`
}

// HandleFetchDetails handles GET /api/fetch-details/{nidNumber} requests.
func (h *Handler) HandleFetchDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nidNumber := chi.URLParam(r, "nidNumber")

	details, err := h.service.FetchDetails(ctx, nidNumber)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "person details fetched",
		"request_id", requestcontext.RequestID(ctx),
		"eligible_for_renewal", details.IsEligibleForRenewal,
	)
	httputil.WriteJSON(w, http.StatusOK, fetchDetailsResponse{Status: "success", Details: details})
}
