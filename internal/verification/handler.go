package verification

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"passportal/internal/application/models"
	"passportal/internal/registry"
	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/httputil"
	"passportal/pkg/requestcontext"
)

// Handler exposes the back-office verification workflow.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdmin mounts the workflow actions. Callers must have passed the
// admin token check.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/api/admin/applications/{id}/verify", h.HandleVerify)
	r.Post("/api/admin/applications/{id}/approve", h.HandleApprove)
	r.Post("/api/admin/applications/{id}/reject", h.HandleReject)
	r.Post("/api/admin/applications/{id}/proceed-biometrics", h.HandleProceedToBiometrics)
	r.Get("/api/validate/{kind}", h.HandleValidate)
}

type verifyResponse struct {
	Status       string   `json:"status"`
	Verification *Outcome `json:"verification"`
}

type applicationResponse struct {
	Status      string                    `json:"status"`
	Application *models.ApplicationRecord `json:"application"`
}

type fieldComparison struct {
	Value   string `json:"value"`
	Matches bool   `json:"matches"`
}

type validateResponse struct {
	Status     string                     `json:"status"`
	Comparison map[string]fieldComparison `json:"comparison"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// HandleVerify handles POST /api/admin/applications/{id}/verify requests.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	outcome, err := h.service.Verify(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, verifyResponse{Status: "success", Verification: outcome})
}

// HandleApprove handles POST /api/admin/applications/{id}/approve requests.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, applicationResponse{Status: "success", Application: record})
}

// HandleReject handles POST /api/admin/applications/{id}/reject requests.
// The body is optional; an empty reason is allowed.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req rejectRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoded, ok := httputil.DecodeAndPrepare[rejectRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
		if !ok {
			return
		}
		req = decoded
	}

	record, err := h.service.Reject(ctx, chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, applicationResponse{Status: "success", Application: record})
}

// HandleProceedToBiometrics handles POST /api/admin/applications/{id}/proceed-biometrics.
func (h *Handler) HandleProceedToBiometrics(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.ProceedToBiometrics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, applicationResponse{Status: "success", Application: record})
}

// HandleValidate handles GET /api/validate/{kind}?applicationId=... requests.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind := registry.Kind(chi.URLParam(r, "kind"))
	switch kind {
	case registry.KindNID, registry.KindBirthCertificate, registry.KindPassport:
	default:
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "unknown document kind %q", kind))
		return
	}

	applicationID := r.URL.Query().Get("applicationId")
	if applicationID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "applicationId query parameter is required"))
		return
	}

	comparison, err := h.service.ValidateDocument(ctx, kind, applicationID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	fields := make(map[string]fieldComparison, len(comparison.Results))
	for _, result := range comparison.Results {
		fields[result.Field] = fieldComparison{Value: result.Applied, Matches: result.Matched}
	}
	httputil.WriteJSON(w, http.StatusOK, validateResponse{Status: "success", Comparison: fields})
}
