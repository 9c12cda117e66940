package wizard

import (
	"time"

	"github.com/asaskevich/govalidator"

	"passportal/internal/application/models"
)

// FieldErrors maps field name to a human-readable message, rendered inline
// next to the offending input. Validation failures never reach the network
// error envelope.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool { return len(e) == 0 }

const dateLayout = "2006-01-02"

// ValidateStep checks the section a step is about to save. The wizard only
// advances when the returned map is empty.
func ValidateStep(step int, s *State) FieldErrors {
	switch step {
	case 1:
		return validatePersonalInfo(s.PersonalInfo)
	case 2:
		return validateContactInfo(s.ContactInfo)
	case 3:
		return validatePassportDetails(s.PassportOpts)
	case 4:
		return validateDocuments(s.Documents)
	case 5:
		return validatePayment(s.Payment)
	default:
		return FieldErrors{}
	}
}

func validatePersonalInfo(pi models.PersonalInfo) FieldErrors {
	errs := FieldErrors{}
	if pi.Name == "" {
		errs["name"] = "Full name is required"
	}
	if pi.DateOfBirth == "" {
		errs["dateOfBirth"] = "Date of birth is required"
	} else if _, err := time.Parse(dateLayout, pi.DateOfBirth); err != nil {
		errs["dateOfBirth"] = "Date of birth must be YYYY-MM-DD"
	}
	if pi.PlaceOfBirth == "" {
		errs["placeOfBirth"] = "Place of birth is required"
	}
	if pi.FatherName == "" {
		errs["fatherName"] = "Father's name is required"
	}
	if pi.MotherName == "" {
		errs["motherName"] = "Mother's name is required"
	}
	if pi.Gender == "" {
		errs["gender"] = "Gender is required"
	}
	if pi.NIDNumber == "" && pi.BirthCertificateNumber == "" {
		errs["nidNumber"] = "Either NID or birth certificate number is required"
	}
	if pi.NIDNumber != "" && !validNIDNumber(pi.NIDNumber) {
		errs["nidNumber"] = "NID number must be 10, 13, or 17 digits"
	}
	if pi.BirthCertificateNumber != "" && !govalidator.IsNumeric(pi.BirthCertificateNumber) {
		errs["birthCertificateNumber"] = "Birth certificate number must be numeric"
	}
	return errs
}

func validNIDNumber(nid string) bool {
	if !govalidator.IsNumeric(nid) {
		return false
	}
	n := len(nid)
	return n == 10 || n == 13 || n == 17
}

func validateContactInfo(ci models.ContactInfo) FieldErrors {
	errs := FieldErrors{}
	if ci.Email == "" {
		errs["email"] = "Email is required"
	} else if !govalidator.IsEmail(ci.Email) {
		errs["email"] = "Email address is not valid"
	}
	if ci.Phone == "" {
		errs["phone"] = "Phone number is required"
	} else if !govalidator.IsNumeric(trimPhonePrefix(ci.Phone)) {
		errs["phone"] = "Phone number must contain digits only"
	}
	if ci.PresentAddress.City == "" {
		errs["presentAddress.city"] = "Present address city is required"
	}
	if ci.PresentAddress.District == "" {
		errs["presentAddress.district"] = "Present address district is required"
	}
	if ci.PermanentAddress.City == "" {
		errs["permanentAddress.city"] = "Permanent address city is required"
	}
	return errs
}

func trimPhonePrefix(phone string) string {
	if len(phone) > 0 && phone[0] == '+' {
		return phone[1:]
	}
	return phone
}

func validatePassportDetails(po models.PassportDetails) FieldErrors {
	errs := FieldErrors{}
	switch po.PassportType {
	case "ordinary", "official", "diplomatic":
	case "":
		errs["passportType"] = "Passport type is required"
	default:
		errs["passportType"] = "Passport type must be ordinary, official, or diplomatic"
	}
	if po.Pages != 48 && po.Pages != 64 {
		errs["pages"] = "Pages must be 48 or 64"
	}
	if po.ValidityYears != 5 && po.ValidityYears != 10 {
		errs["validityYears"] = "Validity must be 5 or 10 years"
	}
	switch po.DeliveryType {
	case "regular", "express":
	case "":
		errs["deliveryType"] = "Delivery type is required"
	default:
		errs["deliveryType"] = "Delivery type must be regular or express"
	}
	if po.IsRenewal && po.OldPassportNumber == "" {
		errs["oldPassportNumber"] = "Old passport number is required for renewals"
	}
	return errs
}

func validateDocuments(d models.Documents) FieldErrors {
	errs := FieldErrors{}
	if d.PhotoFileID == "" {
		errs["photo"] = "A photo upload is required"
	}
	if d.NIDCopyFileID == "" && d.BirthCertificateFileID == "" {
		errs["nidCopy"] = "An NID copy or birth certificate upload is required"
	}
	return errs
}

func validatePayment(p models.Payment) FieldErrors {
	errs := FieldErrors{}
	switch p.Method {
	case "online", "offline":
	case "":
		errs["method"] = "Payment method is required"
	default:
		errs["method"] = "Payment method must be online or offline"
	}
	if p.Amount <= 0 {
		errs["amount"] = "Payment amount must be positive"
	}
	if p.Method == "online" && p.TransactionID == "" {
		errs["transactionId"] = "Transaction ID is required for online payment"
	}
	return errs
}
