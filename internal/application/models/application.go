package models

import "time"

// ApplicationRecord is one passport application. Sections are filled in
// independently as the applicant completes wizard steps, so all of them are
// optional until review.
type ApplicationRecord struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId,omitempty"`
	Status         Status           `json:"status"`
	PersonalInfo   *PersonalInfo    `json:"personalInfo,omitempty"`
	ContactInfo    *ContactInfo     `json:"contactInfo,omitempty"`
	PassportOpts   *PassportDetails `json:"passportDetails,omitempty"`
	Documents      *Documents       `json:"documents,omitempty"`
	Payment        *Payment         `json:"payment,omitempty"`
	Appointment    *Appointment     `json:"appointment,omitempty"`
	SubmissionDate time.Time        `json:"submissionDate"`
	// LastUpdated is rewritten on every status change.
	LastUpdated time.Time `json:"lastUpdated"`
}

// PersonalInfo carries the identity fields cross-checked against government
// records during verification.
type PersonalInfo struct {
	Name                   string `json:"name"`
	DateOfBirth            string `json:"dateOfBirth"`
	PlaceOfBirth           string `json:"placeOfBirth"`
	FatherName             string `json:"fatherName"`
	MotherName             string `json:"motherName"`
	Gender                 string `json:"gender"`
	MaritalStatus          string `json:"maritalStatus"`
	Profession             string `json:"profession"`
	NIDNumber              string `json:"nidNumber"`
	BirthCertificateNumber string `json:"birthCertificateNumber"`
}

// Address is a postal address used for both present and permanent residence.
type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	District string `json:"district"`
	PostCode string `json:"postCode"`
}

// ContactInfo groups the applicant's reachability details.
type ContactInfo struct {
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	PresentAddress   Address `json:"presentAddress"`
	PermanentAddress Address `json:"permanentAddress"`
	// SameAsPresent records the checkbox state; toggling it on copies
	// PresentAddress into PermanentAddress at that moment.
	SameAsPresent    bool   `json:"sameAsPresent"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
}

// PassportDetails captures the passport options step.
type PassportDetails struct {
	PassportType      string `json:"passportType"` // ordinary, official, diplomatic
	Pages             int    `json:"pages"`        // 48 or 64
	ValidityYears     int    `json:"validityYears"`
	DeliveryType      string `json:"deliveryType"` // regular, express
	OldPassportNumber string `json:"oldPassportNumber,omitempty"`
	IsRenewal         bool   `json:"isRenewal"`
}

// Documents tracks the fabricated file IDs returned by the upload endpoint.
// Nothing is stored server-side; the IDs only prove the step was walked.
type Documents struct {
	NIDCopyFileID          string `json:"nidCopyFileId,omitempty"`
	BirthCertificateFileID string `json:"birthCertificateFileId,omitempty"`
	PhotoFileID            string `json:"photoFileId,omitempty"`
	OldPassportFileID      string `json:"oldPassportFileId,omitempty"`
}

// Payment records the simulated payment step.
type Payment struct {
	Method        string     `json:"method"` // online, offline
	Amount        int        `json:"amount"`
	TransactionID string     `json:"transactionId,omitempty"`
	// PaidAt stays nil until the payment is confirmed, so pending offline
	// payments serialize without a bogus zero timestamp.
	PaidAt *time.Time `json:"paidAt,omitempty"`
}

// Appointment is the biometrics enrolment slot assigned after verification.
type Appointment struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Slot   string `json:"slot"`
	Office string `json:"office"`
}
