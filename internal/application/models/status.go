package models

// Status is the closed set of application lifecycle states. The wire values
// are snake_case strings persisted in stores and shown to clients, so they
// must never change.
type Status string

const (
	StatusDraft                 Status = "draft"
	StatusSubmitted             Status = "submitted"
	StatusProcessing            Status = "processing"
	StatusPaymentPending        Status = "payment_pending"
	StatusOfflinePaymentPending Status = "offline_payment_pending"
	StatusPaymentConfirmed      Status = "payment_confirmed"
	StatusAppointmentScheduled  Status = "appointment_scheduled"
	StatusBiometricsCompleted   Status = "biometrics_completed"
	StatusApproved              Status = "approved"
	StatusRejected              Status = "rejected"
	StatusPendingFinalApproval  Status = "pending_final_approval"
	StatusPassportInQueue       Status = "passport_in_queue"
	StatusReadyForDelivery      Status = "ready_for_delivery"
	StatusDelivered             Status = "delivered"
)

// AllStatuses returns every lifecycle state. Tests iterate this to prove
// status-keyed switches are exhaustive.
func AllStatuses() []Status {
	return []Status{
		StatusDraft,
		StatusSubmitted,
		StatusProcessing,
		StatusPaymentPending,
		StatusOfflinePaymentPending,
		StatusPaymentConfirmed,
		StatusAppointmentScheduled,
		StatusBiometricsCompleted,
		StatusApproved,
		StatusRejected,
		StatusPendingFinalApproval,
		StatusPassportInQueue,
		StatusReadyForDelivery,
		StatusDelivered,
	}
}

// Valid reports whether s is one of the fourteen known states.
func (s Status) Valid() bool {
	for _, known := range AllStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusRejected
}

// transitions is the forward-only lifecycle graph. Rejection is an absorbing
// state reachable from every admin review point; delivered is the happy-path
// terminal.
var transitions = map[Status][]Status{
	StatusDraft:                 {StatusSubmitted},
	StatusSubmitted:             {StatusProcessing, StatusPaymentPending, StatusRejected},
	StatusProcessing:            {StatusPaymentPending, StatusAppointmentScheduled, StatusBiometricsCompleted, StatusRejected},
	StatusPaymentPending:        {StatusOfflinePaymentPending, StatusPaymentConfirmed, StatusRejected},
	StatusOfflinePaymentPending: {StatusPaymentConfirmed, StatusRejected},
	StatusPaymentConfirmed:      {StatusAppointmentScheduled},
	StatusAppointmentScheduled:  {StatusBiometricsCompleted, StatusRejected},
	StatusBiometricsCompleted:   {StatusApproved, StatusRejected},
	StatusApproved:              {StatusPendingFinalApproval},
	StatusPendingFinalApproval:  {StatusPassportInQueue, StatusRejected},
	StatusPassportInQueue:       {StatusReadyForDelivery},
	StatusReadyForDelivery:      {StatusDelivered},
	StatusDelivered:             nil,
	StatusRejected:              nil,
}

// CanTransition reports whether the lifecycle graph permits moving from one
// status to another. The service layer enforces this on every status write;
// the UI merely hides buttons.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the allowed successor states of s.
func NextStatuses(s Status) []Status {
	return append([]Status{}, transitions[s]...)
}
