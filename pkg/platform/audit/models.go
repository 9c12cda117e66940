package audit

import "time"

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal significance: submissions,
	// approvals, rejections. These require long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to monitoring and forensics.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category      EventCategory `json:"category"`
	Timestamp     time.Time     `json:"timestamp"`
	UserID        string        `json:"userId,omitempty"`
	ApplicationID string        `json:"applicationId,omitempty"`
	Action        string        `json:"action"`
	FromStatus    string        `json:"fromStatus,omitempty"`
	ToStatus      string        `json:"toStatus,omitempty"`
	Decision      string        `json:"decision,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	RequestID     string        `json:"requestId,omitempty"`
	// ActorID tracks who performed the action when different from UserID.
	// Used for back-office operations where an officer acts on an applicant's
	// application.
	ActorID string `json:"actorId,omitempty"`
}

type AuditEvent string

const (
	// Applicant events
	EventSessionCreated       AuditEvent = "session_created"
	EventApplicationSubmitted AuditEvent = "application_submitted"
	EventDocumentUploaded     AuditEvent = "document_uploaded"

	// Back-office events
	EventStatusChanged       AuditEvent = "status_changed"
	EventVerificationRun     AuditEvent = "verification_run"
	EventApplicationApproved AuditEvent = "application_approved"
	EventApplicationRejected AuditEvent = "application_rejected"

	// Notification events
	EventNotificationSent AuditEvent = "notification_sent"

	// Security events
	EventAuthFailed AuditEvent = "auth_failed"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventApplicationSubmitted: CategoryCompliance,
	EventStatusChanged:        CategoryCompliance,
	EventVerificationRun:      CategoryCompliance,
	EventApplicationApproved:  CategoryCompliance,
	EventApplicationRejected:  CategoryCompliance,

	EventAuthFailed: CategorySecurity,

	EventSessionCreated:   CategoryOperations,
	EventDocumentUploaded: CategoryOperations,
	EventNotificationSent: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
