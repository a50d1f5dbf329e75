package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	clienterrors "github.com/kachalmers/tuiter/client/internal/errors"
)

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// endpoint joins baseURL with escaped path segments.
func endpoint(baseURL string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// call performs exactly one HTTP request. A non-nil in is sent as the JSON
// body; a 2xx response body is decoded into out when out is non-nil.
func call(ctx context.Context, hc HTTPClient, op, method, target string, in, out any) error {
	if err := ctx.Err(); err != nil {
		return clienterrors.NewTransportError(op, method, target, err)
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return clienterrors.NewTransportError(op, method, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return clienterrors.NewTransportError(op, method, target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return clienterrors.NewRemoteError(op, method, target, resp.StatusCode, string(raw))
	}
	if out == nil {
		return nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 && resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return clienterrors.NewNullBodyError(op, method, target, resp.StatusCode)
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
