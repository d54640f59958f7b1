package common

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/johanforsgren/toolmanager/internal/logger"
)

const maxLoggedBody = 10000

// LoggingTransport wraps an http.RoundTripper to log requests and responses.
// Response bodies are only captured when they are small, announced text;
// anything else (archives, chunked HTML) passes through unread.
type LoggingTransport struct {
	Transport http.RoundTripper
}

func NewLoggingTransport(transport http.RoundTripper) *LoggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &LoggingTransport{
		Transport: transport,
	}
}

// NewHTTPClient returns a client with the default timeout behaviour and a
// logging transport.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: NewLoggingTransport(nil)}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	t.logRequest(req)

	resp, err := t.Transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logger.LogError("HTTP_REQUEST", fmt.Sprintf("%s %s", req.Method, req.URL.String()), err)
		return nil, err
	}

	t.logResponse(req, resp, duration)

	return resp, nil
}

func (t *LoggingTransport) logRequest(req *http.Request) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "--> %s %s %s\n", req.Method, req.URL.String(), req.Proto)
	writeHeaders(&buf, req.Header, true)

	logger.LogHTTP("%s", strings.TrimRight(buf.String(), "\n"))
}

func (t *LoggingTransport) logResponse(req *http.Request, resp *http.Response, duration time.Duration) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "<-- %s %s - %s (%v)\n", req.Method, req.URL.Path, resp.Status, duration)
	writeHeaders(&buf, resp.Header, false)

	switch {
	case resp.Body == nil || resp.ContentLength == 0:
	case isLoggableBody(resp):
		bodyBytes, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			// Hand the failure to the caller on its first read.
			resp.Body = io.NopCloser(&failingReader{err: err})
			fmt.Fprintf(&buf, "Body: read error: %v\n", err)
			break
		}
		resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		fmt.Fprintf(&buf, "Body (%d bytes):\n%s\n", len(bodyBytes), bodyBytes)
	case resp.ContentLength > 0:
		fmt.Fprintf(&buf, "Body: (%d bytes, streamed)\n", resp.ContentLength)
	default:
		buf.WriteString("Body: (unknown length, streamed)\n")
	}

	logger.LogHTTP("%s", strings.TrimRight(buf.String(), "\n"))
}

func isLoggableBody(resp *http.Response) bool {
	if resp.ContentLength <= 0 || resp.ContentLength >= maxLoggedBody {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/json"
}

func writeHeaders(buf *bytes.Buffer, header http.Header, redact bool) {
	if len(header) == 0 {
		return
	}
	buf.WriteString("Headers:\n")
	for name, values := range header {
		if redact && isSensitiveHeader(name) {
			fmt.Fprintf(buf, "  %s: [REDACTED]\n", name)
			continue
		}
		for _, value := range values {
			fmt.Fprintf(buf, "  %s: %s\n", name, value)
		}
	}
}

func isSensitiveHeader(name string) bool {
	switch strings.ToLower(name) {
	case "authorization", "x-api-key", "api-key", "x-auth-token", "cookie", "set-cookie":
		return true
	}
	return false
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
