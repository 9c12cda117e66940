package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/sentinel"
	"passportal/pkg/requestcontext"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureStore() *Store {
	return NewStore(
		[]NIDRecord{{
			NIDNumber:    "1234567890",
			Name:         "Mohammed Rahman",
			DateOfBirth:  "1990-05-15",
			PlaceOfBirth: "Dhaka",
			FatherName:   "Abdul Rahman",
			MotherName:   "Fatema Begum",
		}},
		[]BirthCertificateRecord{{
			CertificateNumber: "19901234567890123",
			Name:              "Mohammed Rahman",
			DateOfBirth:       "1990-05-15",
			PlaceOfBirth:      "Dhaka",
			FatherName:        "Abdul Rahman",
			MotherName:        "Fatema Begum",
		}},
		[]PassportRecord{{
			PassportNumber: "BP1234567",
			NIDNumber:      "1234567890",
			Name:           "Mohammed Rahman",
			IssueDate:      "2015-08-01",
			ExpiryDate:     "2025-08-01",
			PassportType:   "ordinary",
		}},
	)
}

func TestLookupExactMatch(t *testing.T) {
	store := fixtureStore()

	record, err := store.FindNID("1234567890")
	require.NoError(t, err)
	assert.Equal(t, "Mohammed Rahman", record.Name)

	_, err = store.FindNID("0000000000")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestLookupDoesNotNormalize(t *testing.T) {
	store := fixtureStore()

	for _, identifier := range []string{" 1234567890", "1234567890 ", "01234567890"} {
		_, err := store.FindNID(identifier)
		assert.True(t, errors.Is(err, sentinel.ErrNotFound), "identifier %q matched", identifier)
	}
}

func TestFetchDetailsAggregates(t *testing.T) {
	svc := NewService(fixtureStore(), discard())
	ctx := requestcontext.WithTime(context.Background(),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	details, err := svc.FetchDetails(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "Mohammed Rahman", details.NID.Name)
	require.NotNil(t, details.BirthCertificate)
	assert.Equal(t, "19901234567890123", details.BirthCertificate.CertificateNumber)
	require.Len(t, details.Passports, 1)
	// Passport expires 2025-08-01, two months out: within the renewal window.
	assert.True(t, details.IsEligibleForRenewal)
}

func TestFetchDetailsNotEligibleWhenExpiryFar(t *testing.T) {
	svc := NewService(fixtureStore(), discard())
	ctx := requestcontext.WithTime(context.Background(),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	details, err := svc.FetchDetails(ctx, "1234567890")
	require.NoError(t, err)
	assert.False(t, details.IsEligibleForRenewal)
}

func TestFetchDetailsUnknownNID(t *testing.T) {
	svc := NewService(fixtureStore(), discard())
	_, err := svc.FetchDetails(context.Background(), "0000000000")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound), "got %v", err)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	nids := []NIDRecord{{NIDNumber: "1234567890", Name: "Mohammed Rahman"}}
	raw, err := json.Marshal(nids)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nid.json"), raw, 0o600))

	// Only nid.json exists; the other datasets load empty.
	store, err := LoadFromDir(dir)
	require.NoError(t, err)

	record, err := store.FindNID("1234567890")
	require.NoError(t, err)
	assert.Equal(t, "Mohammed Rahman", record.Name)

	_, err = store.FindBirthCertificate("anything")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestLoadFromDirMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nid.json"), []byte("{not json"), 0o600))
	_, err := LoadFromDir(dir)
	assert.Error(t, err)
}

func TestHandleFetchDetails(t *testing.T) {
	h := NewHandler(NewService(fixtureStore(), discard()), discard())
	r := chi.NewRouter()
	h.Register(r)

	req := httptest.NewRequest(http.MethodGet, "/api/fetch-details/1234567890", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp fetchDetailsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Mohammed Rahman", resp.Details.NID.Name)

	req = httptest.NewRequest(http.MethodGet, "/api/fetch-details/0000000000", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
