package cvs

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/cvstools/cvs-operator/internal/version"
)

// Transport performs one authenticated HTTP exchange against the CVS API
// and returns the status code plus the raw JSON body. Authentication
// headers are attached by the implementation; non-2xx statuses are not
// errors at this layer.
type Transport interface {
	Do(ctx context.Context, method, url string, body []byte) (int, []byte, error)
}

type httpTransport struct {
	client *http.Client
	// headers is fixed at construction and only ever read.
	headers map[string]string
}

// NewTransport builds the production transport. The token source supplies
// bearer tokens; oauth2.NewClient handles refresh.
func NewTransport(ctx context.Context, ts oauth2.TokenSource) Transport {
	return &httpTransport{
		client: oauth2.NewClient(ctx, ts),
		headers: map[string]string{
			"Content-Type": "application/json",
			"User-Agent":   version.UserAgent(),
		},
	}
}

func (t *httpTransport) Do(ctx context.Context, method, url string, body []byte) (int, []byte, error) {
	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}
