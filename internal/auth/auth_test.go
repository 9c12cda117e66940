package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passportal/internal/jwtsession"
	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/audit"
	auditmemory "passportal/pkg/platform/audit/store/memory"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuth(t *testing.T) (*Service, *jwtsession.Service, *auditmemory.InMemoryStore) {
	t.Helper()
	sessions := jwtsession.NewService("test-signing-key")
	auditStore := auditmemory.NewInMemoryStore()
	svc := New(SeedUsers(), sessions, discard(),
		WithAuditPublisher(audit.NewPublisher(auditStore)))
	return svc, sessions, auditStore
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, sessions, auditStore := newAuth(t)

	session, err := svc.Login(context.Background(), "rahman", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-123", session.User.ID)
	assert.Equal(t, "Mohammed Rahman", session.User.Name)
	assert.Positive(t, session.ExpiresIn)

	claims, err := sessions.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.NotEmpty(t, claims.SessionID)

	events, err := auditStore.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventSessionCreated), events[0].Action)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, auditStore := newAuth(t)

	_, err := svc.Login(context.Background(), "rahman", "wrong")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized), "got %v", err)

	events, _ := auditStore.ListRecent(context.Background(), 10)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventAuthFailed), events[0].Action)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newAuth(t)
	_, err := svc.Login(context.Background(), "nobody", "password123")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized), "got %v", err)
}

func TestHandleLogin(t *testing.T) {
	svc, _, _ := newAuth(t)
	h := NewHandler(svc, discard())
	r := chi.NewRouter()
	h.Register(r)

	body, _ := json.Marshal(loginRequest{Username: "rahman", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.Session.Token)

	body, _ = json.Marshal(loginRequest{Username: "rahman", Password: "nope"})
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
