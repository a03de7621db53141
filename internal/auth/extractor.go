// Package auth supplies the caller identity for vote requests. Actual
// authentication (registration, password hashing, sessions) is owned by an
// external gateway; this package only extracts the user id it forwards.
package auth

import (
	"errors"
	"net/http"
	"strconv"
)

// DefaultUserHeader is the header the gateway sets after authenticating.
const DefaultUserHeader = "X-User-ID"

var ErrNoIdentity = errors.New("missing or invalid user identity")

// UserExtractor resolves the authenticated user id for a request.
type UserExtractor interface {
	UserID(r *http.Request) (int64, error)
}

// HeaderExtractor reads the forwarded user id from a trusted header.
type HeaderExtractor struct {
	Header string
}

func (e HeaderExtractor) UserID(r *http.Request) (int64, error) {
	h := e.Header
	if h == "" {
		h = DefaultUserHeader
	}
	v := r.Header.Get(h)
	if v == "" {
		return 0, ErrNoIdentity
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNoIdentity
	}
	return id, nil
}
