// Package tracking resolves an application ID to a status snapshot with
// human-readable guidance for the applicant.
package tracking

import "passportal/internal/application/models"

// StatusDescription returns the applicant-facing summary for a status. The
// switch is exhaustive over the closed status set.
func StatusDescription(status models.Status) string {
	switch status {
	case models.StatusDraft:
		return "Your application is in progress and has not been submitted yet."
	case models.StatusSubmitted:
		return "Your application has been received and is waiting for initial review."
	case models.StatusProcessing:
		return "Your application is being reviewed and your documents are being verified."
	case models.StatusPaymentPending:
		return "Your application has passed initial review. Payment is now due."
	case models.StatusOfflinePaymentPending:
		return "Your offline payment is awaiting bank confirmation."
	case models.StatusPaymentConfirmed:
		return "Your payment has been confirmed."
	case models.StatusAppointmentScheduled:
		return "Your biometric enrollment appointment has been scheduled."
	case models.StatusBiometricsCompleted:
		return "Your biometric enrollment is complete and under final review."
	case models.StatusApproved:
		return "Your application has been approved."
	case models.StatusRejected:
		return "Your application has been rejected. Please review the officer comments."
	case models.StatusPendingFinalApproval:
		return "Your application is awaiting final approval from the regional office."
	case models.StatusPassportInQueue:
		return "Your passport is in the printing queue."
	case models.StatusReadyForDelivery:
		return "Your passport is ready and will be dispatched through your chosen delivery method."
	case models.StatusDelivered:
		return "Your passport has been delivered."
	default:
		return "Your application status is being determined."
	}
}

// NextSteps returns the ordered guidance for a status. Non-empty for every
// status, including terminal ones.
func NextSteps(status models.Status) []string {
	switch status {
	case models.StatusDraft:
		return []string{
			"Complete the remaining application steps.",
			"Review your information and submit the application.",
		}
	case models.StatusSubmitted:
		return []string{
			"Wait for the initial review to complete.",
			"Check your notifications for payment instructions.",
		}
	case models.StatusProcessing:
		return []string{
			"No action is needed while your documents are verified.",
			"Keep your NID and birth certificate available in case of queries.",
		}
	case models.StatusPaymentPending:
		return []string{
			"Pay the passport fee online or at a designated bank branch.",
			"Keep your payment receipt or transaction ID.",
		}
	case models.StatusOfflinePaymentPending:
		return []string{
			"Wait for the bank to confirm your deposit.",
			"Contact support if confirmation takes more than three working days.",
		}
	case models.StatusPaymentConfirmed:
		return []string{
			"Wait for your biometric appointment to be scheduled.",
		}
	case models.StatusAppointmentScheduled:
		return []string{
			"Attend your appointment at the assigned office and time slot.",
			"Bring your original NID, birth certificate and payment receipt.",
		}
	case models.StatusBiometricsCompleted:
		return []string{
			"No action is needed while your enrollment is reviewed.",
		}
	case models.StatusApproved:
		return []string{
			"Wait for final approval and passport printing.",
		}
	case models.StatusRejected:
		return []string{
			"Read the rejection comments in your dashboard.",
			"Correct the issues and submit a new application.",
		}
	case models.StatusPendingFinalApproval:
		return []string{
			"No action is needed; final approval is in progress.",
		}
	case models.StatusPassportInQueue:
		return []string{
			"Wait for printing to complete.",
		}
	case models.StatusReadyForDelivery:
		return []string{
			"Track your delivery or collect your passport as instructed.",
			"Carry your original NID when collecting in person.",
		}
	case models.StatusDelivered:
		return []string{
			"Check the printed details on your passport immediately.",
			"Report any errors to the passport office within 7 days.",
		}
	default:
		return []string{"Contact support for the current state of your application."}
	}
}
