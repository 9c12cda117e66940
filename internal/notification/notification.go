// Package notification formats status messages and "delivers" them through a
// structured log, standing in for real email/SMS/push gateways.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"passportal/internal/application/models"
	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/audit"
	"passportal/pkg/requestcontext"
)

// Channel is a delivery channel.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

// Preferences records which channels an applicant wants.
type Preferences struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	Push  bool `json:"push"`
}

// DefaultPreferences applies until the applicant changes anything.
func DefaultPreferences() Preferences {
	return Preferences{Email: true, SMS: true, Push: false}
}

// PreferencesPatch is a partial update; nil fields keep the stored value.
type PreferencesPatch struct {
	Email *bool `json:"email,omitempty"`
	SMS   *bool `json:"sms,omitempty"`
	Push  *bool `json:"push,omitempty"`
}

// PreferencesStore holds per-user channel preferences in memory.
type PreferencesStore struct {
	mu    sync.RWMutex
	prefs map[string]Preferences
}

func NewPreferencesStore() *PreferencesStore {
	return &PreferencesStore{prefs: make(map[string]Preferences)}
}

// Get returns the stored preferences, or the defaults for unseen users.
func (s *PreferencesStore) Get(userID string) Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.prefs[userID]; ok {
		return p
	}
	return DefaultPreferences()
}

// Update merges a partial update over the user's current preferences.
func (s *PreferencesStore) Update(userID string, patch PreferencesPatch) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prefs[userID]
	if !ok {
		p = DefaultPreferences()
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.SMS != nil {
		p.SMS = *patch.SMS
	}
	if patch.Push != nil {
		p.Push = *patch.Push
	}
	s.prefs[userID] = p
	return p
}

// Enabled reports whether the user accepts the channel.
func (p Preferences) Enabled(ch Channel) bool {
	switch ch {
	case ChannelEmail:
		return p.Email
	case ChannelSMS:
		return p.SMS
	case ChannelPush:
		return p.Push
	default:
		return false
	}
}

// AuditPublisher records sent notifications.
type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service formats and delivers status notifications.
type Service struct {
	prefs          *PreferencesStore
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func New(prefs *PreferencesStore, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{prefs: prefs, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendRequest asks for a status notification over explicit channels.
type SendRequest struct {
	ApplicationID string    `json:"applicationId"`
	UserID        string    `json:"userId,omitempty"`
	Status        string    `json:"status"`
	Channels      []Channel `json:"channels"`
}

// Send formats a status message and delivers it over each requested channel.
// Delivery is a structured log line per channel.
func (s *Service) Send(ctx context.Context, req SendRequest) error {
	status := models.Status(req.Status)
	if !status.Valid() {
		return dErrors.Newf(dErrors.CodeInvalidInput, "unknown status %q", req.Status)
	}
	if req.ApplicationID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "applicationId is required")
	}
	if len(req.Channels) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "at least one channel is required")
	}
	for _, ch := range req.Channels {
		switch ch {
		case ChannelEmail, ChannelSMS, ChannelPush:
		default:
			return dErrors.Newf(dErrors.CodeInvalidInput, "unknown channel %q", ch)
		}
	}

	message := Message(req.ApplicationID, status)
	for _, ch := range req.Channels {
		s.deliver(ctx, ch, req.ApplicationID, req.UserID, message)
	}
	return nil
}

// StatusChanged implements the application service's notifier hook: it sends
// over every channel the applicant has enabled.
func (s *Service) StatusChanged(ctx context.Context, record *models.ApplicationRecord, _ models.Status) {
	prefs := s.prefs.Get(record.UserID)
	message := Message(record.ID, record.Status)
	for _, ch := range []Channel{ChannelEmail, ChannelSMS, ChannelPush} {
		if prefs.Enabled(ch) {
			s.deliver(ctx, ch, record.ID, record.UserID, message)
		}
	}
}

func (s *Service) deliver(ctx context.Context, ch Channel, applicationID, userID, message string) {
	s.logger.InfoContext(ctx, "notification sent",
		"request_id", requestcontext.RequestID(ctx),
		"channel", string(ch),
		"application_id", applicationID,
		"user_id", userID,
		"message", message,
	)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Action:        string(audit.EventNotificationSent),
		UserID:        userID,
		ApplicationID: applicationID,
		Decision:      string(ch),
		RequestID:     requestcontext.RequestID(ctx),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", audit.EventNotificationSent,
			"application_id", applicationID,
			"error", err,
		)
	}
}

// Message builds the applicant-facing text for one status.
func Message(applicationID string, status models.Status) string {
	switch status {
	case models.StatusDraft:
		return fmt.Sprintf("Your passport application %s is saved as a draft.", applicationID)
	case models.StatusSubmitted:
		return fmt.Sprintf("Your passport application %s has been submitted successfully.", applicationID)
	case models.StatusProcessing:
		return fmt.Sprintf("Your passport application %s is now being processed.", applicationID)
	case models.StatusPaymentPending:
		return fmt.Sprintf("Payment is due for your passport application %s.", applicationID)
	case models.StatusOfflinePaymentPending:
		return fmt.Sprintf("Your offline payment for application %s is awaiting confirmation.", applicationID)
	case models.StatusPaymentConfirmed:
		return fmt.Sprintf("Payment received for your passport application %s.", applicationID)
	case models.StatusAppointmentScheduled:
		return fmt.Sprintf("A biometric appointment has been scheduled for application %s.", applicationID)
	case models.StatusBiometricsCompleted:
		return fmt.Sprintf("Biometric enrollment completed for application %s.", applicationID)
	case models.StatusApproved:
		return fmt.Sprintf("Good news: your passport application %s has been approved.", applicationID)
	case models.StatusRejected:
		return fmt.Sprintf("Your passport application %s has been rejected. Please check your dashboard.", applicationID)
	case models.StatusPendingFinalApproval:
		return fmt.Sprintf("Your passport application %s is awaiting final approval.", applicationID)
	case models.StatusPassportInQueue:
		return fmt.Sprintf("Your passport for application %s is being printed.", applicationID)
	case models.StatusReadyForDelivery:
		return fmt.Sprintf("Your passport for application %s is ready for delivery.", applicationID)
	case models.StatusDelivered:
		return fmt.Sprintf("Your passport for application %s has been delivered.", applicationID)
	default:
		return fmt.Sprintf("Your passport application %s has been updated.", applicationID)
	}
}
