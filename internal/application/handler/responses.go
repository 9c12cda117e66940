package handler

import (
	"passportal/internal/application/models"
	"passportal/internal/application/wizard"
)

// ApplicationResponse wraps a single record in the success envelope the
// dashboard and back-office expect.
type ApplicationResponse struct {
	Status      string                    `json:"status"`
	Application *models.ApplicationRecord `json:"application"`
}

// ApplicationListResponse wraps a record list.
type ApplicationListResponse struct {
	Status       string                      `json:"status"`
	Applications []*models.ApplicationRecord `json:"applications"`
}

// WizardResponse returns the current wizard state, with field errors when the
// latest step payload failed validation.
type WizardResponse struct {
	Status string             `json:"status"`
	State  wizard.State       `json:"state"`
	Errors wizard.FieldErrors `json:"errors,omitempty"`
}

func successApplication(record *models.ApplicationRecord) ApplicationResponse {
	return ApplicationResponse{Status: "success", Application: record}
}

func successList(records []*models.ApplicationRecord) ApplicationListResponse {
	if records == nil {
		records = []*models.ApplicationRecord{}
	}
	return ApplicationListResponse{Status: "success", Applications: records}
}
