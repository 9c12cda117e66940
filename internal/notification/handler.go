package notification

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"passportal/pkg/platform/httputil"
	"passportal/pkg/requestcontext"
)

// Handler exposes the notification stub endpoints.
type Handler struct {
	service *Service
	prefs   *PreferencesStore
	logger  *slog.Logger
}

func NewHandler(service *Service, prefs *PreferencesStore, logger *slog.Logger) *Handler {
	return &Handler{service: service, prefs: prefs, logger: logger}
}

// Register mounts notification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/notifications/send", h.HandleSend)
	r.Put("/api/notifications/preferences/{userID}", h.HandleUpdatePreferences)
}

type sendResponse struct {
	Status string `json:"status"`
}

type preferencesResponse struct {
	Status      string      `json:"status"`
	Preferences Preferences `json:"preferences"`
}

// HandleSend handles POST /api/notifications/send requests.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SendRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.Send(ctx, req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sendResponse{Status: "success"})
}

// HandleUpdatePreferences handles PUT /api/notifications/preferences/{userID}.
func (h *Handler) HandleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PreferencesPatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	prefs := h.prefs.Update(chi.URLParam(r, "userID"), req)
	httputil.WriteJSON(w, http.StatusOK, preferencesResponse{Status: "success", Preferences: prefs})
}
