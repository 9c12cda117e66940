package handler

import (
	"passportal/internal/application/models"
	"passportal/internal/application/wizard"
)

// StepRequest carries a partial update for one wizard step. Absent fields
// leave the stored section untouched.
type StepRequest struct {
	PersonalInfo    *wizard.PersonalInfoPatch    `json:"personalInfo,omitempty"`
	ContactInfo     *wizard.ContactInfoPatch     `json:"contactInfo,omitempty"`
	PassportDetails *wizard.PassportDetailsPatch `json:"passportDetails,omitempty"`
	Documents       *wizard.DocumentsPatch       `json:"documents,omitempty"`
	Payment         *wizard.PaymentPatch         `json:"payment,omitempty"`
}

// GoToStepRequest jumps the wizard to a specific step.
type GoToStepRequest struct {
	Step int `json:"step"`
}

// UpdateStatusRequest is the admin status-change payload.
type UpdateStatusRequest struct {
	ApplicationID   string `json:"applicationId"`
	Status          string `json:"status"`
	Comment         string `json:"comment,omitempty"`
	AppointmentDate string `json:"appointmentDate,omitempty"`
}

// ParsedStatus returns the target status as a domain value.
func (r UpdateStatusRequest) ParsedStatus() models.Status {
	return models.Status(r.Status)
}
