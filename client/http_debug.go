package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"

	"github.com/rs/zerolog"
)

// debugTransport logs every request and response at debug level.
//
// Enable it with WithDebugLogging(true), TUITER_DEBUG=true or DEBUG=true.
// Dumps include request and response bodies; password fields are redacted
// but other account data is logged as-is, so keep it out of production.
type debugTransport struct {
	base http.RoundTripper
	log  zerolog.Logger
}

var passwordField = regexp.MustCompile(`("password"\s*:\s*)"(?:[^"\\]|\\.)*"`)

func redact(dump []byte) string {
	return passwordField.ReplaceAllString(string(dump), `$1"***"`)
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", redact(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		dt.log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", redact(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether TUITER_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("TUITER_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
