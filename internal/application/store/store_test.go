package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passportal/internal/application/models"
	"passportal/pkg/platform/sentinel"
)

// storeUnderTest lets the same contract run against every implementation.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	file, err := NewFile(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemory(),
		"file":   file,
	}
}

func sampleRecord(id string) *models.ApplicationRecord {
	return &models.ApplicationRecord{
		ID:     id,
		UserID: "user-123",
		Status: models.StatusSubmitted,
		PersonalInfo: &models.PersonalInfo{
			Name:        "Mohammed Rahman",
			DateOfBirth: "1990-05-15",
			NIDNumber:   "1234567890",
		},
		SubmissionDate: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		LastUpdated:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestStore_CreateAndFind(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Create(ctx, sampleRecord("BD-0000000001")))

			got, err := s.FindByID(ctx, "BD-0000000001")
			require.NoError(t, err)
			assert.Equal(t, models.StatusSubmitted, got.Status)
			require.NotNil(t, got.PersonalInfo)
			assert.Equal(t, "Mohammed Rahman", got.PersonalInfo.Name)
		})
	}
}

func TestStore_CreateDuplicateConflicts(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Create(ctx, sampleRecord("BD-0000000001")))
			err := s.Create(ctx, sampleRecord("BD-0000000001"))
			assert.True(t, errors.Is(err, sentinel.ErrConflict), "got %v", err)
		})
	}
}

func TestStore_FindMissing(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.FindByID(context.Background(), "BD-0000000404")
			assert.True(t, errors.Is(err, sentinel.ErrNotFound), "got %v", err)
		})
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			older := sampleRecord("BD-0000000001")
			older.SubmissionDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			newer := sampleRecord("BD-0000000002")
			newer.SubmissionDate = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
			require.NoError(t, s.Create(ctx, older))
			require.NoError(t, s.Create(ctx, newer))

			records, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, "BD-0000000002", records[0].ID)
		})
	}
}

func TestStore_ExecuteValidateThenMutate(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Create(ctx, sampleRecord("BD-0000000001")))

			updated, err := s.Execute(ctx, "BD-0000000001",
				func(r *models.ApplicationRecord) error {
					if r.Status != models.StatusSubmitted {
						return sentinel.ErrInvalidState
					}
					return nil
				},
				func(r *models.ApplicationRecord) {
					r.Status = models.StatusProcessing
					r.LastUpdated = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
				},
			)
			require.NoError(t, err)
			assert.Equal(t, models.StatusProcessing, updated.Status)

			persisted, err := s.FindByID(ctx, "BD-0000000001")
			require.NoError(t, err)
			assert.Equal(t, models.StatusProcessing, persisted.Status)
			assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), persisted.LastUpdated.UTC())
		})
	}
}

func TestStore_ExecuteValidationFailureLeavesRecord(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Create(ctx, sampleRecord("BD-0000000001")))

			_, err := s.Execute(ctx, "BD-0000000001",
				func(*models.ApplicationRecord) error { return sentinel.ErrInvalidState },
				func(r *models.ApplicationRecord) { r.Status = models.StatusDelivered },
			)
			require.Error(t, err)

			persisted, err := s.FindByID(ctx, "BD-0000000001")
			require.NoError(t, err)
			assert.Equal(t, models.StatusSubmitted, persisted.Status)
		})
	}
}

func TestStore_ExecuteMissing(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Execute(context.Background(), "BD-0000000404",
				func(*models.ApplicationRecord) error { return nil },
				func(*models.ApplicationRecord) {},
			)
			assert.True(t, errors.Is(err, sentinel.ErrNotFound), "got %v", err)
		})
	}
}

func TestMemory_ReturnsDetachedCopies(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, sampleRecord("BD-0000000001")))

	first, err := s.FindByID(ctx, "BD-0000000001")
	require.NoError(t, err)
	first.PersonalInfo.Name = "Tampered"

	second, err := s.FindByID(ctx, "BD-0000000001")
	require.NoError(t, err)
	assert.Equal(t, "Mohammed Rahman", second.PersonalInfo.Name)
}

func TestFile_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Create(ctx, sampleRecord("BD-0000000001")))

	reopened, err := NewFile(dir)
	require.NoError(t, err)
	got, err := reopened.FindByID(ctx, "BD-0000000001")
	require.NoError(t, err)
	assert.Equal(t, "Mohammed Rahman", got.PersonalInfo.Name)
}
