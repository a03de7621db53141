package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderExtractor(t *testing.T) {
	e := HeaderExtractor{}

	r := httptest.NewRequest("POST", "/games/1/vote", nil)
	r.Header.Set(DefaultUserHeader, "42")
	id, err := e.UserID(r)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	r = httptest.NewRequest("POST", "/games/1/vote", nil)
	_, err = e.UserID(r)
	assert.ErrorIs(t, err, ErrNoIdentity)

	r = httptest.NewRequest("POST", "/games/1/vote", nil)
	r.Header.Set(DefaultUserHeader, "not-a-number")
	_, err = e.UserID(r)
	assert.ErrorIs(t, err, ErrNoIdentity)

	r = httptest.NewRequest("POST", "/games/1/vote", nil)
	r.Header.Set(DefaultUserHeader, "-7")
	_, err = e.UserID(r)
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestHeaderExtractor_CustomHeader(t *testing.T) {
	e := HeaderExtractor{Header: "X-Forwarded-User"}

	r := httptest.NewRequest("POST", "/games/1/vote", nil)
	r.Header.Set("X-Forwarded-User", "7")
	id, err := e.UserID(r)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}
