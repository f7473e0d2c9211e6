package api

import (
	"net/http"

	"golang.org/x/oauth2"

	"tracker-client/internal/credentials"
	"tracker-client/internal/logging"
)

// tokenType is the authorization scheme the tracker service expects.
const tokenType = "Token"

// authTransport reads the persisted token on every request so a login or
// logout takes effect without rebuilding the client.
type authTransport struct {
	base  http.RoundTripper
	creds credentials.Store
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.creds.Token(req.Context())
	if err != nil {
		logging.Errorf("Failed to read credential: %v", err)
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	(&oauth2.Token{AccessToken: token, TokenType: tokenType}).SetAuthHeader(clone)
	return t.base.RoundTrip(clone)
}
