package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passportal/internal/application/models"
	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/audit"
	auditmemory "passportal/pkg/platform/audit/store/memory"
)

func boolp(b bool) *bool { return &b }

func TestDefaultPreferences(t *testing.T) {
	store := NewPreferencesStore()
	prefs := store.Get("never-seen")
	assert.True(t, prefs.Email)
	assert.True(t, prefs.SMS)
	assert.False(t, prefs.Push)
}

func TestUpdatePreferencesMergesOverDefaults(t *testing.T) {
	store := NewPreferencesStore()

	prefs := store.Update("user-123", PreferencesPatch{Email: boolp(false)})
	assert.False(t, prefs.Email)
	assert.True(t, prefs.SMS, "untouched channel keeps its default")
	assert.False(t, prefs.Push)

	// A later partial update keeps the earlier change.
	prefs = store.Update("user-123", PreferencesPatch{Push: boolp(true)})
	assert.False(t, prefs.Email)
	assert.True(t, prefs.Push)
}

func TestSendLogsEachChannel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	svc := New(NewPreferencesStore(), logger)

	err := svc.Send(context.Background(), SendRequest{
		ApplicationID: "BD-0000000001",
		Status:        "approved",
		Channels:      []Channel{ChannelEmail, ChannelSMS},
	})
	require.NoError(t, err)

	lines := strings.Count(buf.String(), "notification sent")
	assert.Equal(t, 2, lines)
	assert.Contains(t, buf.String(), "has been approved")
}

func TestSendValidation(t *testing.T) {
	svc := New(NewPreferencesStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := svc.Send(context.Background(), SendRequest{
		ApplicationID: "BD-0000000001", Status: "launched", Channels: []Channel{ChannelEmail},
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "got %v", err)

	err = svc.Send(context.Background(), SendRequest{
		Status: "approved", Channels: []Channel{ChannelEmail},
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest), "got %v", err)

	err = svc.Send(context.Background(), SendRequest{
		ApplicationID: "BD-0000000001", Status: "approved",
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest), "got %v", err)

	err = svc.Send(context.Background(), SendRequest{
		ApplicationID: "BD-0000000001", Status: "approved", Channels: []Channel{"pigeon"},
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "got %v", err)
}

func TestStatusChangedHonorsPreferences(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	store := NewPreferencesStore()
	store.Update("user-123", PreferencesPatch{Email: boolp(false), SMS: boolp(false), Push: boolp(true)})
	auditStore := auditmemory.NewInMemoryStore()
	svc := New(store, logger, WithAuditPublisher(audit.NewPublisher(auditStore)))

	svc.StatusChanged(context.Background(), &models.ApplicationRecord{
		ID: "BD-0000000001", UserID: "user-123", Status: models.StatusProcessing,
	}, models.StatusSubmitted)

	assert.Equal(t, 1, strings.Count(buf.String(), "notification sent"))
	assert.Contains(t, buf.String(), `"channel":"push"`)

	events, err := auditStore.ListByApplication(context.Background(), "BD-0000000001")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventNotificationSent), events[0].Action)
}

func TestEveryStatusHasMessage(t *testing.T) {
	for _, status := range models.AllStatuses() {
		msg := Message("BD-0000000001", status)
		assert.NotEmpty(t, msg, "message for %s", status)
		assert.Contains(t, msg, "BD-0000000001")
	}
}

func TestHandleUpdatePreferences(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewPreferencesStore()
	h := NewHandler(New(store, logger), store, logger)
	r := chi.NewRouter()
	h.Register(r)

	body, _ := json.Marshal(map[string]bool{"email": false})
	req := httptest.NewRequest(http.MethodPut, "/api/notifications/preferences/user-123", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp preferencesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Preferences.Email)
	assert.True(t, resp.Preferences.SMS)
	assert.False(t, resp.Preferences.Push)
}

func TestHandleSend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewPreferencesStore()
	h := NewHandler(New(store, logger), store, logger)
	r := chi.NewRouter()
	h.Register(r)

	body, _ := json.Marshal(SendRequest{
		ApplicationID: "BD-0000000001",
		Status:        "submitted",
		Channels:      []Channel{ChannelEmail},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/send", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
