package client

import "net/http"

// Transport attaches the stored bearer token to every outgoing request, so
// callers never handle the Authorization header themselves.
type Transport struct {
	Store SessionStore
	Base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	session, err := t.Store.Read()
	if err != nil {
		return nil, err
	}

	if !session.Empty() {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
