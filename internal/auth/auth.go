// Package auth implements local sign-up, sign-in and the client session.
// It is a convenience gate for the demo, not a security boundary.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/Shivanand-hulikatti/event-ease/internal/repository"
)

var (
	// ErrAccountExists is returned by SignUp when the email is taken.
	ErrAccountExists = errors.New("an account already exists with this email")
	// ErrNoSuchAccount is returned by SignIn for an unknown email.
	ErrNoSuchAccount = errors.New("no account found for this email")
	// ErrInvalidCredentials is returned by SignIn on a checksum mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Users is the slice of the document store auth needs.
type Users interface {
	GetUser(ctx context.Context, email string) (*model.User, error)
	PutUser(ctx context.Context, u model.User) error
}

// Sessions is the slice of the key-value store auth needs.
type Sessions interface {
	Session(ctx context.Context) (model.Session, error)
	SetSession(ctx context.Context, a model.Authenticated) error
	ClearSession(ctx context.Context) error
	SetAccount(ctx context.Context, a model.AccountDetails) error
}

// Manager moves a client between Anonymous and Authenticated.
type Manager struct {
	users    Users
	sessions Sessions
	digest   Digest
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithDigest replaces the default SHA-256 digest.
func WithDigest(d Digest) Option {
	return func(m *Manager) { m.digest = d }
}

// WithClock replaces time.Now for user creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager constructs a Manager.
func NewManager(users Users, sessions Sessions, opts ...Option) *Manager {
	m := &Manager{
		users:    users,
		sessions: sessions,
		digest:   SHA256Hex,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Checksum digests password with the configured digest.
func (m *Manager) Checksum(password string) string {
	return m.digest(password)
}

// SignUp registers a new user. It does not sign the user in.
func (m *Manager) SignUp(ctx context.Context, name, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	existing, err := m.users.GetUser(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	u := model.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: m.digest(password),
		CreatedAt:    m.now().UTC(),
	}
	if err := m.users.PutUser(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return &u, nil
}

// SignIn checks the password against the stored checksum and, on success,
// writes the session blob and mirrors name/email into the account blob.
func (m *Manager) SignIn(ctx context.Context, email, password string) (model.Authenticated, error) {
	email = NormalizeEmail(email)

	u, err := m.users.GetUser(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Authenticated{}, ErrNoSuchAccount
		}
		return model.Authenticated{}, fmt.Errorf("look up user: %w", err)
	}
	if m.digest(password) != u.PasswordHash {
		return model.Authenticated{}, ErrInvalidCredentials
	}

	session := model.Authenticated{Email: u.Email, Name: u.Name}
	if err := m.sessions.SetSession(ctx, session); err != nil {
		return model.Authenticated{}, fmt.Errorf("write session: %w", err)
	}
	if err := m.sessions.SetAccount(ctx, model.AccountDetails{Name: u.Name, Email: u.Email}); err != nil {
		return model.Authenticated{}, fmt.Errorf("write account details: %w", err)
	}
	return session, nil
}

// Logout clears the session blob.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.sessions.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current reads the session blob. It never consults the user store: a
// present session is trusted as-is. Read and decode failures yield
// Anonymous together with the error.
func (m *Manager) Current(ctx context.Context) (model.Session, error) {
	s, err := m.sessions.Session(ctx)
	if s == nil {
		s = model.Anonymous{}
	}
	return s, err
}

// ConfirmPassword returns ErrPasswordMismatch when the two entries differ.
func ConfirmPassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}
