package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"passportal/internal/application/models"
	"passportal/internal/application/service"
	"passportal/internal/application/wizard"
	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/httputil"
	"passportal/pkg/requestcontext"
)

// Service defines the application operations the handler depends on.
type Service interface {
	Submit(ctx context.Context, userID string, state wizard.State) (*models.ApplicationRecord, error)
	Get(ctx context.Context, id string) (*models.ApplicationRecord, error)
	GetForUser(ctx context.Context, id, userID string) (*models.ApplicationRecord, error)
	List(ctx context.Context) ([]*models.ApplicationRecord, error)
	ListForUser(ctx context.Context, userID string) ([]*models.ApplicationRecord, error)
	UpdateStatus(ctx context.Context, id string, to models.Status, opts service.UpdateOptions) (*models.ApplicationRecord, error)
}

// Handler wires the wizard and application endpoints to the service.
type Handler struct {
	service Service
	wizard  *wizard.Manager
	logger  *slog.Logger
}

// New constructs an application handler with its dependencies.
func New(svc Service, manager *wizard.Manager, logger *slog.Logger) *Handler {
	return &Handler{service: svc, wizard: manager, logger: logger}
}

// Register mounts applicant-facing endpoints. Callers must have passed
// session auth: the wizard is keyed by the caller's session.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/wizard", h.HandleWizardState)
	r.Put("/api/wizard/steps/{step}", h.HandleStepUpdate)
	r.Post("/api/wizard/next", h.HandleNext)
	r.Post("/api/wizard/prev", h.HandlePrev)
	r.Post("/api/wizard/goto", h.HandleGoTo)
	r.Post("/api/wizard/reset", h.HandleReset)

	r.Post("/api/applications", h.HandleSubmit)
	r.Get("/api/applications", h.HandleListMine)
	r.Get("/api/applications/{id}", h.HandleGet)
}

// RegisterAdmin mounts back-office endpoints. Callers must have passed the
// admin token check.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/api/admin/applications", h.HandleListAll)
	r.Get("/api/admin/applications/{id}", h.HandleGetAdmin)
	r.Post("/api/applications/update-status", h.HandleUpdateStatus)
}

// HandleWizardState handles GET /api/wizard requests.
func (h *Handler) HandleWizardState(w http.ResponseWriter, r *http.Request) {
	state := h.wizard.Snapshot(requestcontext.SessionID(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, WizardResponse{Status: "success", State: state})
}

// HandleStepUpdate handles PUT /api/wizard/steps/{step} requests. The payload
// is a partial update: absent fields leave stored values untouched. The
// response carries field errors for the step, but the merge is applied either
// way so applicants never lose typed input.
func (h *Handler) HandleStepUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	step, ok := stepParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[StepRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	state := h.wizard.Mutate(requestcontext.SessionID(ctx), func(s *wizard.State) {
		s.GoToStep(step)
		if req.PersonalInfo != nil {
			s.UpdatePersonalInfo(*req.PersonalInfo)
		}
		if req.ContactInfo != nil {
			s.UpdateContactInfo(*req.ContactInfo)
		}
		if req.PassportDetails != nil {
			s.UpdatePassportDetails(*req.PassportDetails)
		}
		if req.Documents != nil {
			s.UpdateDocuments(*req.Documents)
		}
		if req.Payment != nil {
			s.UpdatePayment(*req.Payment)
		}
	})

	errs := wizard.ValidateStep(step, &state)
	httputil.WriteJSON(w, http.StatusOK, WizardResponse{Status: "success", State: state, Errors: errs})
}

// HandleNext handles POST /api/wizard/next requests. Advancing is refused
// while the current step has validation errors.
func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := requestcontext.SessionID(ctx)

	state := h.wizard.Snapshot(sessionID)
	if errs := wizard.ValidateStep(state.CurrentStep, &state); !errs.Empty() {
		httputil.WriteJSON(w, http.StatusBadRequest, WizardResponse{Status: "error", State: state, Errors: errs})
		return
	}
	state = h.wizard.Mutate(sessionID, func(s *wizard.State) { s.NextStep() })
	httputil.WriteJSON(w, http.StatusOK, WizardResponse{Status: "success", State: state})
}

// HandlePrev handles POST /api/wizard/prev requests. Going back never
// validates: typed input survives the round trip.
func (h *Handler) HandlePrev(w http.ResponseWriter, r *http.Request) {
	state := h.wizard.Mutate(requestcontext.SessionID(r.Context()), func(s *wizard.State) { s.PrevStep() })
	httputil.WriteJSON(w, http.StatusOK, WizardResponse{Status: "success", State: state})
}

// HandleGoTo handles POST /api/wizard/goto requests.
func (h *Handler) HandleGoTo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[GoToStepRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	state := h.wizard.Mutate(requestcontext.SessionID(ctx), func(s *wizard.State) { s.GoToStep(req.Step) })
	httputil.WriteJSON(w, http.StatusOK, WizardResponse{Status: "success", State: state})
}

// HandleReset handles POST /api/wizard/reset requests.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	state := h.wizard.Mutate(requestcontext.SessionID(r.Context()), func(s *wizard.State) { s.Reset() })
	httputil.WriteJSON(w, http.StatusOK, WizardResponse{Status: "success", State: state})
}

// HandleSubmit handles POST /api/applications requests: it freezes the
// caller's wizard session into a persistent record and clears the session.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID := requestcontext.UserID(ctx)
	sessionID := requestcontext.SessionID(ctx)

	state := h.wizard.Snapshot(sessionID)
	record, err := h.service.Submit(ctx, userID, state)
	if err != nil {
		h.logger.WarnContext(ctx, "application submission refused",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.wizard.Drop(sessionID)

	httputil.WriteJSON(w, http.StatusCreated, successApplication(record))
}

// HandleGet handles GET /api/applications/{id} requests for applicants.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	record, err := h.service.GetForUser(ctx, chi.URLParam(r, "id"), requestcontext.UserID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, successApplication(record))
}

// HandleListMine handles GET /api/applications requests for applicants.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, err := h.service.ListForUser(ctx, requestcontext.UserID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, successList(records))
}

// HandleListAll handles GET /api/admin/applications requests.
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, successList(records))
}

// HandleGetAdmin handles GET /api/admin/applications/{id} requests.
func (h *Handler) HandleGetAdmin(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, successApplication(record))
}

// HandleUpdateStatus handles POST /api/applications/update-status requests.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.ApplicationID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "applicationId is required"))
		return
	}

	opts := service.UpdateOptions{Comment: req.Comment}
	if req.AppointmentDate != "" {
		opts.Appointment = &models.Appointment{Date: req.AppointmentDate}
	}

	record, err := h.service.UpdateStatus(ctx, req.ApplicationID, req.ParsedStatus(), opts)
	if err != nil {
		h.logger.WarnContext(ctx, "status update failed",
			"request_id", requestID,
			"application_id", req.ApplicationID,
			"status", req.Status,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, successApplication(record))
}

func stepParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "step must be a number"))
		return 0, false
	}
	if step < wizard.FirstStep || step > wizard.LastStep {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "step must be between %d and %d", wizard.FirstStep, wizard.LastStep))
		return 0, false
	}
	return step, true
}
