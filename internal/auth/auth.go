// Package auth implements the portal's mock session login. Accounts are
// seeded demo users; a successful login issues a short-lived JWT that the
// wizard and dashboard endpoints require.
package auth

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"passportal/internal/jwtsession"
	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/audit"
	"passportal/pkg/requestcontext"
)

// sessionTTL bounds a portal session.
const sessionTTL = 2 * time.Hour

// User is one seeded demo account.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	passwordHash []byte
}

// SeedUsers returns the demo accounts every deployment ships with.
func SeedUsers() []User {
	return []User{
		demoUser("user-123", "rahman", "Mohammed Rahman", "password123"),
		demoUser("user-456", "akter", "Nasrin Akter", "password123"),
	}
}

func demoUser(id, username, name, password string) User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err) // static demo credentials, cannot fail
	}
	return User{ID: id, Username: username, Name: name, passwordHash: hash}
}

// AuditPublisher records login outcomes.
type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service authenticates demo users and issues session tokens.
type Service struct {
	users          map[string]User
	sessions       *jwtsession.Service
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func New(users []User, sessions *jwtsession.Service, logger *slog.Logger, opts ...Option) *Service {
	byName := make(map[string]User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	s := &Service{users: byName, sessions: sessions, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session is a freshly issued login session.
type Session struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	User      User   `json:"user"`
}

// Login checks the demo credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, ok := s.users[username]
	if ok {
		ok = bcrypt.CompareHashAndPassword(user.passwordHash, []byte(password)) == nil
	}
	if !ok {
		s.logAudit(ctx, audit.Event{
			Action: string(audit.EventAuthFailed),
			Reason: "invalid credentials",
		})
		s.logger.WarnContext(ctx, "login failed",
			"request_id", requestcontext.RequestID(ctx),
			"username", username,
		)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}

	token, sessionID, err := s.sessions.GenerateSessionToken(user.ID, sessionTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue session token")
	}

	s.logAudit(ctx, audit.Event{
		Action: string(audit.EventSessionCreated),
		UserID: user.ID,
	})
	s.logger.InfoContext(ctx, "session created",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID,
		"session_id", sessionID,
		"device", requestcontext.Device(ctx),
	)
	return &Session{Token: token, ExpiresIn: int(sessionTTL.Seconds()), User: user}, nil
}

func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
