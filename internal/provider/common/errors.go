package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrFetch            = errors.New("fetch failed")
	ErrMalformedListing = errors.New("malformed repository listing")
	ErrCatalogLoad      = errors.New("catalog load failed")
	ErrNotFound         = errors.New("repository not found")
	ErrDownload         = errors.New("download failed")
	ErrWrite            = errors.New("write failed")
)

// FetchError describes a failed GET. StatusCode is zero when no response
// was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

const (
	MessageLoadFailed     = "Could not load repositories. Press r to retry."
	MessageNotFound       = "That repository is no longer available."
	MessageDownloadFailed = "Download did not complete."
)

// UserMessage maps an error to the stable text shown in the status bar.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return MessageNotFound
	case errors.Is(err, ErrDownload), errors.Is(err, ErrWrite):
		return MessageDownloadFailed
	case errors.Is(err, ErrCatalogLoad), errors.Is(err, ErrMalformedListing), errors.Is(err, ErrFetch):
		return MessageLoadFailed
	default:
		return err.Error()
	}
}
