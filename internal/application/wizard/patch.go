package wizard

import "passportal/internal/application/models"

// Patches are the wire shape of step updates: absent JSON fields stay nil and
// leave the stored value untouched, so partially filled forms never clobber
// sibling fields.

type PersonalInfoPatch struct {
	Name                   *string `json:"name,omitempty"`
	DateOfBirth            *string `json:"dateOfBirth,omitempty"`
	PlaceOfBirth           *string `json:"placeOfBirth,omitempty"`
	FatherName             *string `json:"fatherName,omitempty"`
	MotherName             *string `json:"motherName,omitempty"`
	Gender                 *string `json:"gender,omitempty"`
	MaritalStatus          *string `json:"maritalStatus,omitempty"`
	Profession             *string `json:"profession,omitempty"`
	NIDNumber              *string `json:"nidNumber,omitempty"`
	BirthCertificateNumber *string `json:"birthCertificateNumber,omitempty"`
}

func (p PersonalInfoPatch) apply(dst *models.PersonalInfo) {
	setString(&dst.Name, p.Name)
	setString(&dst.DateOfBirth, p.DateOfBirth)
	setString(&dst.PlaceOfBirth, p.PlaceOfBirth)
	setString(&dst.FatherName, p.FatherName)
	setString(&dst.MotherName, p.MotherName)
	setString(&dst.Gender, p.Gender)
	setString(&dst.MaritalStatus, p.MaritalStatus)
	setString(&dst.Profession, p.Profession)
	setString(&dst.NIDNumber, p.NIDNumber)
	setString(&dst.BirthCertificateNumber, p.BirthCertificateNumber)
}

type AddressPatch struct {
	Street   *string `json:"street,omitempty"`
	City     *string `json:"city,omitempty"`
	District *string `json:"district,omitempty"`
	PostCode *string `json:"postCode,omitempty"`
}

func (p *AddressPatch) apply(dst *models.Address) {
	if p == nil {
		return
	}
	setString(&dst.Street, p.Street)
	setString(&dst.City, p.City)
	setString(&dst.District, p.District)
	setString(&dst.PostCode, p.PostCode)
}

type ContactInfoPatch struct {
	Email            *string       `json:"email,omitempty"`
	Phone            *string       `json:"phone,omitempty"`
	PresentAddress   *AddressPatch `json:"presentAddress,omitempty"`
	PermanentAddress *AddressPatch `json:"permanentAddress,omitempty"`
	SameAsPresent    *bool         `json:"sameAsPresent,omitempty"`
	EmergencyContact *string       `json:"emergencyContact,omitempty"`
	EmergencyPhone   *string       `json:"emergencyPhone,omitempty"`
}

func (p ContactInfoPatch) apply(dst *models.ContactInfo) {
	setString(&dst.Email, p.Email)
	setString(&dst.Phone, p.Phone)
	p.PresentAddress.apply(&dst.PresentAddress)
	p.PermanentAddress.apply(&dst.PermanentAddress)
	if p.SameAsPresent != nil {
		dst.SameAsPresent = *p.SameAsPresent
	}
	setString(&dst.EmergencyContact, p.EmergencyContact)
	setString(&dst.EmergencyPhone, p.EmergencyPhone)
}

type PassportDetailsPatch struct {
	PassportType      *string `json:"passportType,omitempty"`
	Pages             *int    `json:"pages,omitempty"`
	ValidityYears     *int    `json:"validityYears,omitempty"`
	DeliveryType      *string `json:"deliveryType,omitempty"`
	OldPassportNumber *string `json:"oldPassportNumber,omitempty"`
	IsRenewal         *bool   `json:"isRenewal,omitempty"`
}

func (p PassportDetailsPatch) apply(dst *models.PassportDetails) {
	setString(&dst.PassportType, p.PassportType)
	if p.Pages != nil {
		dst.Pages = *p.Pages
	}
	if p.ValidityYears != nil {
		dst.ValidityYears = *p.ValidityYears
	}
	setString(&dst.DeliveryType, p.DeliveryType)
	setString(&dst.OldPassportNumber, p.OldPassportNumber)
	if p.IsRenewal != nil {
		dst.IsRenewal = *p.IsRenewal
	}
}

type DocumentsPatch struct {
	NIDCopyFileID          *string `json:"nidCopyFileId,omitempty"`
	BirthCertificateFileID *string `json:"birthCertificateFileId,omitempty"`
	PhotoFileID            *string `json:"photoFileId,omitempty"`
	OldPassportFileID      *string `json:"oldPassportFileId,omitempty"`
}

func (p DocumentsPatch) apply(dst *models.Documents) {
	setString(&dst.NIDCopyFileID, p.NIDCopyFileID)
	setString(&dst.BirthCertificateFileID, p.BirthCertificateFileID)
	setString(&dst.PhotoFileID, p.PhotoFileID)
	setString(&dst.OldPassportFileID, p.OldPassportFileID)
}

type PaymentPatch struct {
	Method        *string `json:"method,omitempty"`
	Amount        *int    `json:"amount,omitempty"`
	TransactionID *string `json:"transactionId,omitempty"`
}

func (p PaymentPatch) apply(dst *models.Payment) {
	setString(&dst.Method, p.Method)
	if p.Amount != nil {
		dst.Amount = *p.Amount
	}
	setString(&dst.TransactionID, p.TransactionID)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
