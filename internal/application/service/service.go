package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"passportal/internal/application/metrics"
	"passportal/internal/application/models"
	"passportal/internal/application/store"
	"passportal/internal/application/wizard"
	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/audit"
	"passportal/pkg/platform/sentinel"
	"passportal/pkg/requestcontext"
)

// AuditPublisher records domain events emitted by the service.
type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Notifier is told about every status change so channels can fan out.
type Notifier interface {
	StatusChanged(ctx context.Context, record *models.ApplicationRecord, previous models.Status)
}

// Service orchestrates application submission and lifecycle transitions.
// Every status change in the system goes through UpdateStatus so the
// transition graph is enforced in exactly one place.
type Service struct {
	store          store.Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
	notifier       Notifier
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit freezes a completed wizard state into a persistent application
// record. The record starts in the submitted status regardless of what the
// wizard session claimed.
func (s *Service) Submit(ctx context.Context, userID string, state wizard.State) (*models.ApplicationRecord, error) {
	start := time.Now()

	if state.HasMissingInfo() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "application is incomplete")
	}

	record := state.ToRecord(userID)
	now := requestcontext.Now(ctx)
	record.Status = models.StatusSubmitted
	record.SubmissionDate = now
	record.LastUpdated = now

	if err := s.store.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "application id already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist application")
	}

	s.logAudit(ctx, audit.Event{
		Action:        string(audit.EventApplicationSubmitted),
		UserID:        userID,
		ApplicationID: record.ID,
		ToStatus:      string(record.Status),
	})
	s.metrics.IncrementSubmitted()
	s.metrics.ObserveSubmit(start)

	s.logger.InfoContext(ctx, "application submitted",
		"request_id", requestcontext.RequestID(ctx),
		"application_id", record.ID,
		"user_id", userID,
	)

	if s.notifier != nil {
		s.notifier.StatusChanged(ctx, record, models.StatusDraft)
	}
	return record, nil
}

// Get returns one application by id.
func (s *Service) Get(ctx context.Context, id string) (*models.ApplicationRecord, error) {
	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load application")
	}
	return record, nil
}

// GetForUser returns one application, refusing access when it belongs to a
// different applicant.
func (s *Service) GetForUser(ctx context.Context, id, userID string) (*models.ApplicationRecord, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, dErrors.New(dErrors.CodeForbidden, "application belongs to another applicant")
	}
	return record, nil
}

// List returns every application, newest submission first.
func (s *Service) List(ctx context.Context) ([]*models.ApplicationRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return records, nil
}

// ListForUser returns the applications owned by one applicant.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*models.ApplicationRecord, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.ApplicationRecord
	for _, record := range records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

// UpdateOptions carries optional fields attached to a status change.
type UpdateOptions struct {
	Comment     string
	Appointment *models.Appointment
}

// UpdateStatus moves an application to a new status. The transition graph is
// the single gatekeeper: requests that skip steps or move backwards are
// refused with an invalid_transition error naming the allowed next statuses.
func (s *Service) UpdateStatus(ctx context.Context, id string, to models.Status, opts UpdateOptions) (*models.ApplicationRecord, error) {
	if !to.Valid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown status %q", to)
	}

	var from models.Status
	record, err := s.store.Execute(ctx, id,
		func(r *models.ApplicationRecord) error {
			from = r.Status
			if !models.CanTransition(r.Status, to) {
				return dErrors.Newf(dErrors.CodeInvalidTransition,
					"cannot move from %s to %s; allowed: %v", r.Status, to, models.NextStatuses(r.Status))
			}
			return nil
		},
		func(r *models.ApplicationRecord) {
			r.Status = to
			r.LastUpdated = requestcontext.Now(ctx)
			if opts.Appointment != nil {
				r.Appointment = opts.Appointment
			}
		},
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		if dErrors.HasCode(err, dErrors.CodeInvalidTransition) {
			s.metrics.IncrementInvalidTransition()
			s.logger.WarnContext(ctx, "status transition refused",
				"request_id", requestcontext.RequestID(ctx),
				"application_id", id,
				"from", from,
				"to", to,
			)
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update application")
	}

	s.logAudit(ctx, audit.Event{
		Action:        string(audit.EventStatusChanged),
		UserID:        record.UserID,
		ApplicationID: record.ID,
		FromStatus:    string(from),
		ToStatus:      string(to),
		Reason:        opts.Comment,
		ActorID:       requestcontext.UserID(ctx),
	})
	s.metrics.IncrementTransition(string(to))

	s.logger.InfoContext(ctx, "application status updated",
		"request_id", requestcontext.RequestID(ctx),
		"application_id", record.ID,
		"from", from,
		"to", to,
	)

	if s.notifier != nil {
		s.notifier.StatusChanged(ctx, record, from)
	}
	return record, nil
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"application_id", event.ApplicationID,
			"error", err,
		)
	}
}
