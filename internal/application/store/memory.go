package store

import (
	"context"
	"sort"
	"sync"

	"passportal/internal/application/models"
	"passportal/pkg/platform/sentinel"
)

// Memory keeps records in a map. It favors clarity over performance and is
// the default store for unit tests.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*models.ApplicationRecord
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]*models.ApplicationRecord)}
}

func (s *Memory) Create(_ context.Context, record *models.ApplicationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; exists {
		return sentinel.ErrConflict
	}
	clone := cloneRecord(record)
	s.records[record.ID] = clone
	return nil
}

func (s *Memory) FindByID(_ context.Context, id string) (*models.ApplicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRecord(record), nil
}

func (s *Memory) List(_ context.Context) ([]*models.ApplicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ApplicationRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, cloneRecord(record))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmissionDate.After(out[j].SubmissionDate)
	})
	return out, nil
}

func (s *Memory) Execute(_ context.Context, id string,
	validate func(*models.ApplicationRecord) error,
	mutate func(*models.ApplicationRecord)) (*models.ApplicationRecord, error) {

	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(record); err != nil {
		return nil, err
	}
	mutate(record)
	return cloneRecord(record), nil
}

// cloneRecord deep-copies a record so callers never share section pointers
// with the store.
func cloneRecord(r *models.ApplicationRecord) *models.ApplicationRecord {
	clone := *r
	if r.PersonalInfo != nil {
		v := *r.PersonalInfo
		clone.PersonalInfo = &v
	}
	if r.ContactInfo != nil {
		v := *r.ContactInfo
		clone.ContactInfo = &v
	}
	if r.PassportOpts != nil {
		v := *r.PassportOpts
		clone.PassportOpts = &v
	}
	if r.Documents != nil {
		v := *r.Documents
		clone.Documents = &v
	}
	if r.Payment != nil {
		v := *r.Payment
		clone.Payment = &v
	}
	if r.Appointment != nil {
		v := *r.Appointment
		clone.Appointment = &v
	}
	return &clone
}
