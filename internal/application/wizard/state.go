// Package wizard holds the session-scoped application state store behind the
// six-step application form. The store only merges and navigates; validation
// is the step handler's job before it calls an update.
package wizard

import (
	"passportal/internal/application/models"
)

// Step bounds. Steps are 1 Personal Info, 2 Contact Details, 3 Passport
// Options, 4 Documents, 5 Payment, 6 Review & Submit.
const (
	FirstStep = 1
	LastStep  = 6
)

// State is one session's in-progress application. It exists only in memory
// and is destroyed on reset or server restart.
type State struct {
	CurrentStep  int                     `json:"currentStep"`
	PersonalInfo models.PersonalInfo     `json:"personalInfo"`
	ContactInfo  models.ContactInfo      `json:"contactInfo"`
	PassportOpts models.PassportDetails  `json:"passportDetails"`
	Documents    models.Documents        `json:"documents"`
	Payment      models.Payment          `json:"payment"`
	Status       models.Status           `json:"applicationStatus"`
}

// NewState returns the wizard defaults: step 1, draft status, empty sections.
func NewState() *State {
	return &State{CurrentStep: FirstStep, Status: models.StatusDraft}
}

// NextStep advances one step, clamped to LastStep.
func (s *State) NextStep() {
	s.GoToStep(s.CurrentStep + 1)
}

// PrevStep goes back one step, clamped to FirstStep. Going back never
// re-validates or drops entered data.
func (s *State) PrevStep() {
	s.GoToStep(s.CurrentStep - 1)
}

// GoToStep jumps to step n, clamped to [FirstStep, LastStep] for any input.
func (s *State) GoToStep(n int) {
	if n < FirstStep {
		n = FirstStep
	}
	if n > LastStep {
		n = LastStep
	}
	s.CurrentStep = n
}

// Reset restores the defaults, discarding all entered data.
func (s *State) Reset() {
	*s = *NewState()
}

// UpdateStatus records a status value on the wizard state. Transition rules
// are enforced by the application service once a record exists; the wizard
// itself only ever holds draft or submitted.
func (s *State) UpdateStatus(status models.Status) {
	s.Status = status
}

// UpdatePersonalInfo shallow-merges a partial update into the section.
func (s *State) UpdatePersonalInfo(p PersonalInfoPatch) {
	p.apply(&s.PersonalInfo)
}

// UpdateContactInfo shallow-merges a partial update into the section.
//
// When the patch turns SameAsPresent on, the present address (after the patch
// is applied) is copied field-for-field into the permanent address. Turning
// the flag off does not restore the overwritten permanent address.
func (s *State) UpdateContactInfo(p ContactInfoPatch) {
	p.apply(&s.ContactInfo)
	if p.SameAsPresent != nil && *p.SameAsPresent {
		s.ContactInfo.PermanentAddress = s.ContactInfo.PresentAddress
	}
}

// UpdatePassportDetails shallow-merges a partial update into the section.
func (s *State) UpdatePassportDetails(p PassportDetailsPatch) {
	p.apply(&s.PassportOpts)
}

// UpdateDocuments shallow-merges a partial update into the section.
func (s *State) UpdateDocuments(p DocumentsPatch) {
	p.apply(&s.Documents)
}

// UpdatePayment shallow-merges a partial update into the section.
func (s *State) UpdatePayment(p PaymentPatch) {
	p.apply(&s.Payment)
}

// HasMissingInfo recomputes the review-step completeness check across all
// sections. Submission stays disabled while it returns true.
func (s *State) HasMissingInfo() bool {
	pi := s.PersonalInfo
	if pi.Name == "" || pi.DateOfBirth == "" || pi.PlaceOfBirth == "" ||
		pi.FatherName == "" || pi.MotherName == "" || pi.Gender == "" {
		return true
	}
	if pi.NIDNumber == "" && pi.BirthCertificateNumber == "" {
		return true
	}
	ci := s.ContactInfo
	if ci.Email == "" || ci.Phone == "" ||
		ci.PresentAddress.City == "" || ci.PermanentAddress.City == "" {
		return true
	}
	po := s.PassportOpts
	if po.PassportType == "" || po.Pages == 0 || po.ValidityYears == 0 || po.DeliveryType == "" {
		return true
	}
	d := s.Documents
	if d.PhotoFileID == "" || (d.NIDCopyFileID == "" && d.BirthCertificateFileID == "") {
		return true
	}
	if s.Payment.Method == "" || s.Payment.Amount == 0 {
		return true
	}
	return false
}

// ToRecord freezes the wizard state into an application record aggregate.
func (s *State) ToRecord(userID string) *models.ApplicationRecord {
	personal := s.PersonalInfo
	contact := s.ContactInfo
	opts := s.PassportOpts
	docs := s.Documents
	payment := s.Payment
	return &models.ApplicationRecord{
		ID:           models.GenerateApplicationID(),
		UserID:       userID,
		Status:       s.Status,
		PersonalInfo: &personal,
		ContactInfo:  &contact,
		PassportOpts: &opts,
		Documents:    &docs,
		Payment:      &payment,
	}
}
