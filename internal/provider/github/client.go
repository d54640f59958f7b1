package github

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"

	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

// NewAPIClient returns an unauthenticated go-github client that shares the
// given http client, so API calls go through the same logging transport.
func NewAPIClient(httpClient *http.Client, baseURL string) (*github.Client, error) {
	client := github.NewClient(httpClient)
	if baseURL == "" || baseURL == common.DefaultAPIBaseURL {
		return client, nil
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL '%s': %w", baseURL, err)
	}
	client.BaseURL = parsed
	return client, nil
}
