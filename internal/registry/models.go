// Package registry serves government record fixtures: national IDs, birth
// certificates and previously issued passports. Lookups are exact string
// matches against flat JSON datasets, standing in for the real upstream
// systems.
package registry

// Kind names one fixture dataset.
type Kind string

const (
	KindNID              Kind = "nid"
	KindBirthCertificate Kind = "birth-certificate"
	KindPassport         Kind = "passport"
)

// NIDRecord mirrors one national ID entry.
type NIDRecord struct {
	NIDNumber        string `json:"nidNumber"`
	Name             string `json:"name"`
	DateOfBirth      string `json:"dateOfBirth"`
	PlaceOfBirth     string `json:"placeOfBirth"`
	FatherName       string `json:"fatherName"`
	MotherName       string `json:"motherName"`
	PermanentAddress string `json:"permanentAddress,omitempty"`
}

// BirthCertificateRecord mirrors one birth registration entry.
type BirthCertificateRecord struct {
	CertificateNumber string `json:"certificateNumber"`
	Name              string `json:"name"`
	DateOfBirth       string `json:"dateOfBirth"`
	PlaceOfBirth      string `json:"placeOfBirth"`
	FatherName        string `json:"fatherName"`
	MotherName        string `json:"motherName"`
}

// PassportRecord mirrors one previously issued passport.
type PassportRecord struct {
	PassportNumber string `json:"passportNumber"`
	NIDNumber      string `json:"nidNumber"`
	Name           string `json:"name"`
	IssueDate      string `json:"issueDate"`
	ExpiryDate     string `json:"expiryDate"`
	PassportType   string `json:"passportType"`
}

// PersonDetails aggregates everything the registries know about one person.
type PersonDetails struct {
	NID                  *NIDRecord              `json:"nid"`
	BirthCertificate     *BirthCertificateRecord `json:"birthCertificate,omitempty"`
	Passports            []PassportRecord        `json:"passports"`
	IsEligibleForRenewal bool                    `json:"isEligibleForRenewal"`
}
