package flashair

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Transport issues raw protocol requests against the card. Implementations
// must be safe for sequential reuse; the client never issues concurrent
// requests.
type Transport interface {
	// Command executes a command.cgi operation and returns the raw
	// response body.
	Command(ctx context.Context, op int, args url.Values) ([]byte, error)

	// Fetch downloads the file at the given remote path.
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// httpTransport talks plain HTTP to the card, one request at a time,
// with a fixed per-request timeout.
type httpTransport struct {
	address string
	client  *http.Client
}

func newHTTPTransport(address string, timeout time.Duration) *httpTransport {
	return &httpTransport{
		address: address,
		client:  &http.Client{Timeout: timeout},
	}
}

func (t *httpTransport) Command(ctx context.Context, op int, args url.Values) ([]byte, error) {
	u := fmt.Sprintf("http://%s/command.cgi?op=%d", t.address, op)
	if len(args) > 0 {
		u += "&" + args.Encode()
	}
	return t.get(ctx, u)
}

func (t *httpTransport) Fetch(ctx context.Context, path string) ([]byte, error) {
	path = strings.TrimPrefix(path, "/")
	return t.get(ctx, fmt.Sprintf("http://%s/%s", t.address, escapePath(path)))
}

func (t *httpTransport) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrTransport, u, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrTransport, u, err)
	}

	return body, nil
}

// escapePath escapes each path segment while preserving the slashes
// between them.
func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
