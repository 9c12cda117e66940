package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"passportal/pkg/platform/sentinel"
)

// Fixture file names inside the data directory.
const (
	nidFile              = "nid.json"
	birthCertificateFile = "birth-certificates.json"
	passportFile         = "passports.json"
)

// Store holds the loaded fixture datasets. Datasets are immutable after
// load, so reads need no locking.
type Store struct {
	nids         []NIDRecord
	certificates []BirthCertificateRecord
	passports    []PassportRecord
}

// NewStore builds a store from in-memory records, used by tests and seeding.
func NewStore(nids []NIDRecord, certs []BirthCertificateRecord, passports []PassportRecord) *Store {
	return &Store{nids: nids, certificates: certs, passports: passports}
}

// LoadFromDir reads the three fixture files from dataDir. A missing file
// yields an empty dataset rather than an error: the registries are mocks and
// a deployment may seed only the kinds it needs.
func LoadFromDir(dataDir string) (*Store, error) {
	s := &Store{}
	if err := loadFixture(filepath.Join(dataDir, nidFile), &s.nids); err != nil {
		return nil, err
	}
	if err := loadFixture(filepath.Join(dataDir, birthCertificateFile), &s.certificates); err != nil {
		return nil, err
	}
	if err := loadFixture(filepath.Join(dataDir, passportFile), &s.passports); err != nil {
		return nil, err
	}
	return s, nil
}

func loadFixture[T any](path string, dst *[]T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read fixture %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return nil
}

// FindNID returns the national ID record with the exact identifier. No
// normalization: "01234" and "1234" are different identifiers.
func (s *Store) FindNID(identifier string) (*NIDRecord, error) {
	for i := range s.nids {
		if s.nids[i].NIDNumber == identifier {
			record := s.nids[i]
			return &record, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindBirthCertificate returns the birth registration with the exact number.
func (s *Store) FindBirthCertificate(identifier string) (*BirthCertificateRecord, error) {
	for i := range s.certificates {
		if s.certificates[i].CertificateNumber == identifier {
			record := s.certificates[i]
			return &record, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindPassport returns the issued passport with the exact number.
func (s *Store) FindPassport(identifier string) (*PassportRecord, error) {
	for i := range s.passports {
		if s.passports[i].PassportNumber == identifier {
			record := s.passports[i]
			return &record, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// PassportsByNID returns every issued passport linked to a national ID.
func (s *Store) PassportsByNID(nid string) []PassportRecord {
	var out []PassportRecord
	for _, p := range s.passports {
		if p.NIDNumber == nid {
			out = append(out, p)
		}
	}
	return out
}
