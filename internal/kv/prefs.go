package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/google/uuid"
)

// Well-known blob names.
const (
	KeyTheme          = "themePreference"
	KeyAccount        = "accountDetails"
	KeySession        = "authUser"
	KeyPendingBooking = "currentBooking"
)

// Prefs exposes the typed blobs of one client. Each client (one browser
// origin in the original deployment) gets its own namespace, so two clients
// sharing a Redis never see each other's session.
type Prefs struct {
	store      Store
	clientID   uuid.UUID
	pendingTTL time.Duration
}

// NewPrefs scopes store to clientID. pendingTTL bounds the lifetime of the
// session-scoped pending booking; zero keeps it until cleared.
func NewPrefs(store Store, clientID uuid.UUID, pendingTTL time.Duration) *Prefs {
	return &Prefs{store: store, clientID: clientID, pendingTTL: pendingTTL}
}

// ClientID returns the namespace this Prefs writes under.
func (p *Prefs) ClientID() uuid.UUID { return p.clientID }

func (p *Prefs) key(name string) string {
	return "client:" + p.clientID.String() + ":" + name
}

func (p *Prefs) sessionKey(name string) string {
	return "client:" + p.clientID.String() + ":session:" + name
}

// getJSON decodes the blob under key into dst. found is false when the key
// is absent.
func (p *Prefs) getJSON(ctx context.Context, key string, dst any) (found bool, err error) {
	raw, err := p.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (p *Prefs) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return p.store.Set(ctx, key, raw, ttl)
}

// Theme returns the stored theme, defaulting to light when unset or
// unrecognised.
func (p *Prefs) Theme(ctx context.Context) (model.Theme, error) {
	var s string
	found, err := p.getJSON(ctx, p.key(KeyTheme), &s)
	if err != nil || !found {
		return model.ThemeLight, err
	}
	if model.Theme(s) == model.ThemeDark {
		return model.ThemeDark, nil
	}
	return model.ThemeLight, nil
}

// SetTheme overwrites the theme preference.
func (p *Prefs) SetTheme(ctx context.Context, t model.Theme) error {
	if t != model.ThemeDark {
		t = model.ThemeLight
	}
	return p.setJSON(ctx, p.key(KeyTheme), string(t), 0)
}

// Account returns the prefill blob, or nil when none was saved.
func (p *Prefs) Account(ctx context.Context) (*model.AccountDetails, error) {
	var a model.AccountDetails
	found, err := p.getJSON(ctx, p.key(KeyAccount), &a)
	if err != nil || !found {
		return nil, err
	}
	return &a, nil
}

// SetAccount overwrites the prefill blob wholesale.
func (p *Prefs) SetAccount(ctx context.Context, a model.AccountDetails) error {
	return p.setJSON(ctx, p.key(KeyAccount), a, 0)
}

// Session decodes the session blob. A malformed blob yields Anonymous
// together with the decode error so the caller can log it; it is not
// treated as a failure.
func (p *Prefs) Session(ctx context.Context) (model.Session, error) {
	raw, err := p.store.Get(ctx, p.key(KeySession))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Anonymous{}, nil
		}
		return model.Anonymous{}, err
	}
	return model.DecodeSession(raw)
}

// SetSession writes the session blob.
func (p *Prefs) SetSession(ctx context.Context, a model.Authenticated) error {
	raw, err := model.EncodeSession(a)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return p.store.Set(ctx, p.key(KeySession), raw, 0)
}

// ClearSession deletes the session blob.
func (p *Prefs) ClearSession(ctx context.Context) error {
	return p.store.Delete(ctx, p.key(KeySession))
}

// PendingBooking returns the booking awaiting payment, or nil.
func (p *Prefs) PendingBooking(ctx context.Context) (*model.PendingBooking, error) {
	var b model.PendingBooking
	found, err := p.getJSON(ctx, p.sessionKey(KeyPendingBooking), &b)
	if err != nil || !found {
		return nil, err
	}
	return &b, nil
}

// SetPendingBooking stores the booking awaiting payment with the
// session-scoped TTL.
func (p *Prefs) SetPendingBooking(ctx context.Context, b model.PendingBooking) error {
	return p.setJSON(ctx, p.sessionKey(KeyPendingBooking), b, p.pendingTTL)
}

// ClearPendingBooking removes the booking awaiting payment.
func (p *Prefs) ClearPendingBooking(ctx context.Context) error {
	return p.store.Delete(ctx, p.sessionKey(KeyPendingBooking))
}
