package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"passportal/internal/application/models"
	"passportal/pkg/platform/sentinel"
)

const applicationsFile = "applications.json"

// File persists records as one flat JSON array, rewritten wholesale on every
// write. A mutex makes the process the single writer, and writes go through a
// temp file plus atomic rename so a crash never leaves a torn file. Multiple
// processes sharing the file still race; use the Postgres store for that.
type File struct {
	path string
	mu   sync.RWMutex
}

// NewFile opens (or creates) the applications file under dataDir.
func NewFile(dataDir string) (*File, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f := &File{path: filepath.Join(dataDir, applicationsFile)}
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		if err := f.write([]*models.ApplicationRecord{}); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (s *File) Create(_ context.Context, record *models.ApplicationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.read()
	if err != nil {
		return err
	}
	for _, existing := range records {
		if existing.ID == record.ID {
			return sentinel.ErrConflict
		}
	}
	records = append(records, cloneRecord(record))
	return s.write(records)
}

func (s *File) FindByID(_ context.Context, id string) (*models.ApplicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *File) List(_ context.Context) ([]*models.ApplicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, err := s.read()
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].SubmissionDate.After(records[j].SubmissionDate)
	})
	return records, nil
}

func (s *File) Execute(_ context.Context, id string,
	validate func(*models.ApplicationRecord) error,
	mutate func(*models.ApplicationRecord)) (*models.ApplicationRecord, error) {

	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.ID != id {
			continue
		}
		if err := validate(record); err != nil {
			return nil, err
		}
		mutate(record)
		if err := s.write(records); err != nil {
			return nil, err
		}
		return cloneRecord(record), nil
	}
	return nil, sentinel.ErrNotFound
}

// read loads the whole file. Callers must hold at least the read lock.
func (s *File) read() ([]*models.ApplicationRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read applications file: %w", err)
	}
	var records []*models.ApplicationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal applications file: %w", err)
	}
	return records, nil
}

// write rewrites the whole file through a temp file and atomic rename.
// Callers must hold the write lock.
func (s *File) write(records []*models.ApplicationRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal applications: %w", err)
	}
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("write applications file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replace applications file: %w", err)
	}
	return nil
}
