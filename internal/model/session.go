package model

import (
	"encoding/json"
	"strings"
)

// Session is either Anonymous or Authenticated. The zero value of the
// interface is not a valid session; use Anonymous{} for logged-out state.
type Session interface {
	session()
}

// Anonymous is the logged-out state.
type Anonymous struct{}

// Authenticated is client-held evidence of a prior successful sign-in. It is
// trusted by presence alone and never re-checked against the user store.
type Authenticated struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (Anonymous) session()     {}
func (Authenticated) session() {}

// IsAuthenticated reports whether s carries a signed-in identity.
func IsAuthenticated(s Session) bool {
	_, ok := s.(Authenticated)
	return ok
}

// EncodeSession serialises an authenticated session blob. Anonymous has no
// blob; callers delete the key instead.
func EncodeSession(a Authenticated) ([]byte, error) {
	return json.Marshal(a)
}

// DecodeSession parses a stored session blob. A missing, malformed or
// email-less blob decodes to Anonymous; the second return value carries the
// parse error, if any, so callers can log it.
func DecodeSession(raw []byte) (Session, error) {
	if len(raw) == 0 {
		return Anonymous{}, nil
	}
	var a Authenticated
	if err := json.Unmarshal(raw, &a); err != nil {
		return Anonymous{}, err
	}
	if strings.TrimSpace(a.Email) == "" {
		return Anonymous{}, nil
	}
	return a, nil
}
