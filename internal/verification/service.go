package verification

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"passportal/internal/application/models"
	"passportal/internal/application/service"
	"passportal/internal/registry"
	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/audit"
	"passportal/pkg/platform/sentinel"
	"passportal/pkg/requestcontext"
)

// demoBypassIdentifier force-matches every field, but only when demo mode is
// enabled in config. Production deployments never honor it.
const demoBypassIdentifier = "9999999999"

// Applications is the slice of the application service the workflow needs.
type Applications interface {
	Get(ctx context.Context, id string) (*models.ApplicationRecord, error)
	UpdateStatus(ctx context.Context, id string, to models.Status, opts service.UpdateOptions) (*models.ApplicationRecord, error)
}

// AuditPublisher records verification events.
type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Outcome is the result of running verification over one application.
type Outcome struct {
	ApplicationID string               `json:"applicationId"`
	Comparisons   []DocumentComparison `json:"comparisons"`
	Verified      bool                 `json:"verified"`
	Appointment   *models.Appointment  `json:"appointment,omitempty"`
	VerifiedAt    time.Time            `json:"verifiedAt"`
}

// Service runs the cross-check workflow and the approval actions. Outcomes
// are held in memory per application so approval can be gated on an actual
// verification run.
type Service struct {
	apps           Applications
	registry       *registry.Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
	demoMode       bool

	mu       sync.Mutex
	outcomes map[string]*Outcome
}

type Option func(*Service)

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithDemoMode(on bool) Option {
	return func(s *Service) { s.demoMode = on }
}

func New(apps Applications, reg *registry.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		apps:     apps,
		registry: reg,
		logger:   logger,
		outcomes: make(map[string]*Outcome),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify cross-checks every identifier present on the application against the
// registries. The overall outcome is derived: the application is verified
// when any compared document is.
func (s *Service) Verify(ctx context.Context, applicationID string) (*Outcome, error) {
	record, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if record.PersonalInfo == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "application has no personal information to verify")
	}
	pi := record.PersonalInfo

	outcome := &Outcome{ApplicationID: applicationID, VerifiedAt: requestcontext.Now(ctx)}

	if pi.NIDNumber != "" {
		comparison, err := s.compareAgainstNID(pi)
		if err != nil {
			return nil, err
		}
		outcome.Comparisons = append(outcome.Comparisons, comparison)
	}
	if pi.BirthCertificateNumber != "" {
		comparison, err := s.compareAgainstBirthCertificate(pi)
		if err != nil {
			return nil, err
		}
		outcome.Comparisons = append(outcome.Comparisons, comparison)
	}
	if record.PassportOpts != nil && record.PassportOpts.OldPassportNumber != "" {
		comparison, err := s.compareAgainstPassport(pi, record.PassportOpts.OldPassportNumber)
		if err != nil {
			return nil, err
		}
		outcome.Comparisons = append(outcome.Comparisons, comparison)
	}
	if len(outcome.Comparisons) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "application carries no verifiable identifier")
	}

	for _, c := range outcome.Comparisons {
		if c.DocumentVerified {
			outcome.Verified = true
			break
		}
	}
	if outcome.Verified {
		outcome.Appointment = GenerateAppointment(requestcontext.Now(ctx))
	}

	s.mu.Lock()
	s.outcomes[applicationID] = outcome
	s.mu.Unlock()

	decision := "unverified"
	if outcome.Verified {
		decision = "verified"
	}
	s.logAudit(ctx, audit.Event{
		Action:        string(audit.EventVerificationRun),
		UserID:        record.UserID,
		ApplicationID: applicationID,
		Decision:      decision,
	})
	s.logger.InfoContext(ctx, "verification run completed",
		"request_id", requestcontext.RequestID(ctx),
		"application_id", applicationID,
		"verified", outcome.Verified,
		"documents", len(outcome.Comparisons),
	)
	return outcome, nil
}

func (s *Service) compareAgainstNID(pi *models.PersonalInfo) (DocumentComparison, error) {
	force := s.demoMode && pi.NIDNumber == demoBypassIdentifier
	fixture, err := s.registry.FindNID(pi.NIDNumber)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return DocumentComparison{}, dErrors.Wrap(err, dErrors.CodeInternal, "NID lookup failed")
		}
		// No registry record: every field fails unless the demo bypass is on.
		fixture = &registry.NIDRecord{NIDNumber: pi.NIDNumber}
	}
	return compareNID(pi, fixture, force), nil
}

func (s *Service) compareAgainstBirthCertificate(pi *models.PersonalInfo) (DocumentComparison, error) {
	force := s.demoMode && pi.BirthCertificateNumber == demoBypassIdentifier
	fixture, err := s.registry.FindBirthCertificate(pi.BirthCertificateNumber)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return DocumentComparison{}, dErrors.Wrap(err, dErrors.CodeInternal, "birth certificate lookup failed")
		}
		fixture = &registry.BirthCertificateRecord{CertificateNumber: pi.BirthCertificateNumber}
	}
	return compareBirthCertificate(pi, fixture, force), nil
}

func (s *Service) compareAgainstPassport(pi *models.PersonalInfo, passportNumber string) (DocumentComparison, error) {
	force := s.demoMode && passportNumber == demoBypassIdentifier
	fixture, err := s.registry.FindPassport(passportNumber)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return DocumentComparison{}, dErrors.Wrap(err, dErrors.CodeInternal, "passport lookup failed")
		}
		fixture = &registry.PassportRecord{PassportNumber: passportNumber}
	}
	return comparePassport(pi, fixture, force), nil
}

// ValidateDocument runs a single document cross-check for the validate
// endpoints. Unlike Verify it does not record an outcome.
func (s *Service) ValidateDocument(ctx context.Context, kind registry.Kind, applicationID string) (DocumentComparison, error) {
	record, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return DocumentComparison{}, err
	}
	if record.PersonalInfo == nil {
		return DocumentComparison{}, dErrors.New(dErrors.CodeInvalidInput, "application has no personal information to verify")
	}
	pi := record.PersonalInfo

	switch kind {
	case registry.KindNID:
		if pi.NIDNumber == "" {
			return DocumentComparison{}, dErrors.New(dErrors.CodeInvalidInput, "application has no NID number")
		}
		return s.compareAgainstNID(pi)
	case registry.KindBirthCertificate:
		if pi.BirthCertificateNumber == "" {
			return DocumentComparison{}, dErrors.New(dErrors.CodeInvalidInput, "application has no birth certificate number")
		}
		return s.compareAgainstBirthCertificate(pi)
	case registry.KindPassport:
		if record.PassportOpts == nil || record.PassportOpts.OldPassportNumber == "" {
			return DocumentComparison{}, dErrors.New(dErrors.CodeInvalidInput, "application has no old passport number")
		}
		return s.compareAgainstPassport(pi, record.PassportOpts.OldPassportNumber)
	default:
		return DocumentComparison{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown document kind %q", kind)
	}
}

// Approve moves a verified application on to biometrics. Outside demo mode
// it requires a prior Verify run that actually verified a document.
func (s *Service) Approve(ctx context.Context, applicationID string) (*models.ApplicationRecord, error) {
	if !s.demoMode {
		s.mu.Lock()
		outcome, ok := s.outcomes[applicationID]
		s.mu.Unlock()
		if !ok || !outcome.Verified {
			return nil, dErrors.New(dErrors.CodeConflict, "application has not passed verification")
		}
	}
	record, err := s.apps.UpdateStatus(ctx, applicationID, models.StatusBiometricsCompleted, service.UpdateOptions{})
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, audit.Event{
		Action:        string(audit.EventApplicationApproved),
		UserID:        record.UserID,
		ApplicationID: applicationID,
		ToStatus:      string(record.Status),
	})
	return record, nil
}

// Reject moves the application to the absorbing rejected status.
func (s *Service) Reject(ctx context.Context, applicationID, reason string) (*models.ApplicationRecord, error) {
	record, err := s.apps.UpdateStatus(ctx, applicationID, models.StatusRejected, service.UpdateOptions{Comment: reason})
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, audit.Event{
		Action:        string(audit.EventApplicationRejected),
		UserID:        record.UserID,
		ApplicationID: applicationID,
		Reason:        reason,
	})
	return record, nil
}

// ProceedToBiometrics moves a scheduled application to biometrics completed.
func (s *Service) ProceedToBiometrics(ctx context.Context, applicationID string) (*models.ApplicationRecord, error) {
	return s.apps.UpdateStatus(ctx, applicationID, models.StatusBiometricsCompleted, service.UpdateOptions{})
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	event.ActorID = requestcontext.UserID(ctx)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"application_id", event.ApplicationID,
			"error", err,
		)
	}
}
