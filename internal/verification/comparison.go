// Package verification implements the back-office cross-check of applicant
// data against registry fixtures, and the approval actions gated on it.
package verification

import (
	"passportal/internal/application/models"
	"passportal/internal/registry"
)

// FieldResult records one field comparison. Results are computed on demand
// and never stored on the application.
type FieldResult struct {
	Field   string `json:"field"`
	Applied string `json:"applied"`
	Record  string `json:"record"`
	Matched bool   `json:"matched"`
}

// DocumentComparison aggregates the field results for one document type.
type DocumentComparison struct {
	Kind             registry.Kind `json:"kind"`
	Identifier       string        `json:"identifier"`
	Results          []FieldResult `json:"results"`
	DocumentVerified bool          `json:"documentVerified"`
	MatchPercentage  float64       `json:"matchPercentage"`
}

// comparedFields is the fixed field set cross-checked for every document.
// name and dateOfBirth are the essential pair: both must match for the
// document to count as verified.
var comparedFields = []string{"name", "dateOfBirth", "placeOfBirth", "fatherName", "motherName"}

type fieldPair struct {
	applied string
	record  string
}

func compare(kind registry.Kind, identifier string, fields []string, pairs map[string]fieldPair, forceMatch bool) DocumentComparison {
	c := DocumentComparison{Kind: kind, Identifier: identifier}
	matched := 0
	essentialOK := true
	for _, field := range fields {
		pair := pairs[field]
		ok := forceMatch || pair.applied == pair.record
		if ok {
			matched++
		}
		if (field == "name" || field == "dateOfBirth") && !ok {
			essentialOK = false
		}
		c.Results = append(c.Results, FieldResult{
			Field:   field,
			Applied: pair.applied,
			Record:  pair.record,
			Matched: ok,
		})
	}
	c.DocumentVerified = essentialOK
	c.MatchPercentage = float64(matched) / float64(len(fields)) * 100
	return c
}

// compareNID cross-checks applicant personal info against a national ID record.
func compareNID(applied *models.PersonalInfo, record *registry.NIDRecord, forceMatch bool) DocumentComparison {
	return compare(registry.KindNID, record.NIDNumber, comparedFields, map[string]fieldPair{
		"name":         {applied.Name, record.Name},
		"dateOfBirth":  {applied.DateOfBirth, record.DateOfBirth},
		"placeOfBirth": {applied.PlaceOfBirth, record.PlaceOfBirth},
		"fatherName":   {applied.FatherName, record.FatherName},
		"motherName":   {applied.MotherName, record.MotherName},
	}, forceMatch)
}

// compareBirthCertificate cross-checks against a birth registration record.
func compareBirthCertificate(applied *models.PersonalInfo, record *registry.BirthCertificateRecord, forceMatch bool) DocumentComparison {
	return compare(registry.KindBirthCertificate, record.CertificateNumber, comparedFields, map[string]fieldPair{
		"name":         {applied.Name, record.Name},
		"dateOfBirth":  {applied.DateOfBirth, record.DateOfBirth},
		"placeOfBirth": {applied.PlaceOfBirth, record.PlaceOfBirth},
		"fatherName":   {applied.FatherName, record.FatherName},
		"motherName":   {applied.MotherName, record.MotherName},
	}, forceMatch)
}

// comparePassport cross-checks against an old passport. Passports carry no
// birth or parentage fields, so only the holder name is compared and it alone
// decides the verified outcome.
func comparePassport(applied *models.PersonalInfo, record *registry.PassportRecord, forceMatch bool) DocumentComparison {
	return compare(registry.KindPassport, record.PassportNumber, []string{"name"}, map[string]fieldPair{
		"name": {applied.Name, record.Name},
	}, forceMatch)
}
