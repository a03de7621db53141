package igdb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// expiryMargin forces a refresh slightly before the reported expiry so a
// token never goes stale mid fan-out.
const expiryMargin = time.Minute

// tokenSource obtains and memoizes the bearer token for upstream calls via a
// client-credentials exchange. Refresh is lazy: on first use, when the held
// token is about to expire, or after invalidate (upstream 401).
type tokenSource struct {
	http         *resty.Client
	tokenURL     string
	clientID     string
	clientSecret string

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func newTokenSource(tokenURL, clientID, clientSecret string) *tokenSource {
	return &tokenSource{
		http:         resty.New().SetTimeout(15 * time.Second),
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Token returns the cached bearer token, performing the credential exchange
// when none is held. Exchange failures are fatal AuthErrors, not retried.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && time.Now().Add(expiryMargin).Before(ts.expiry) {
		return ts.token, nil
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
		TokenType   string `json:"token_type"`
	}
	resp, err := ts.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client_id":     ts.clientID,
			"client_secret": ts.clientSecret,
			"grant_type":    "client_credentials",
		}).
		SetResult(&out).
		Post(ts.tokenURL)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	if resp.IsError() {
		return "", &AuthError{Err: fmt.Errorf("identity endpoint returned %d: %s", resp.StatusCode(), resp.String())}
	}
	if out.AccessToken == "" {
		return "", &AuthError{Err: errors.New("identity endpoint returned empty access_token")}
	}

	ts.token = out.AccessToken
	if out.ExpiresIn > 0 {
		ts.expiry = time.Now().Add(time.Duration(out.ExpiresIn) * time.Second)
	} else {
		// Identity endpoint gave no lifetime; assume an hour.
		ts.expiry = time.Now().Add(time.Hour)
	}
	return ts.token, nil
}

// invalidate drops tok if it is still the cached token, so the next Token
// call performs a fresh exchange. Called when upstream rejects it with 401.
func (ts *tokenSource) invalidate(tok string) {
	ts.mu.Lock()
	if ts.token == tok {
		ts.token = ""
		ts.expiry = time.Time{}
	}
	ts.mu.Unlock()
}
