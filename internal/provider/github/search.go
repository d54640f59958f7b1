package github

import (
	"context"
	"errors"

	"github.com/google/go-github/v57/github"

	"github.com/johanforsgren/toolmanager/internal/domain"
	"github.com/johanforsgren/toolmanager/internal/logger"
	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

const searchPageSize = 100

// SearchLister lists the account's repositories through the search API
// instead of scraping the profile page. Only the first page is read.
type SearchLister struct {
	client    *github.Client
	endpoints common.Endpoints
}

func NewSearchLister(client *github.Client, endpoints common.Endpoints) *SearchLister {
	return &SearchLister{client: client, endpoints: endpoints}
}

func (l *SearchLister) ListRepositories(ctx context.Context) ([]domain.ListingEntry, error) {
	query := l.endpoints.SearchQuery()
	logger.Log("GitHub: Searching repositories with query %q", query)

	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: searchPageSize},
	}

	result, _, err := l.client.Search.Repositories(ctx, query, opts)
	if err != nil {
		logger.LogError("GITHUB_SEARCH", query, err)
		return nil, toFetchError(l.client.BaseURL.String()+"search/repositories", err)
	}

	entries := make([]domain.ListingEntry, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		if repo.GetName() == "" {
			continue
		}
		entries = append(entries, domain.ListingEntry{
			Name:        repo.GetName(),
			Description: repo.GetDescription(),
		})
	}

	logger.Log("GitHub: Search returned %d repositories (total %d)", len(entries), result.GetTotal())
	return entries, nil
}

func toFetchError(url string, err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &common.FetchError{URL: url, StatusCode: errResp.Response.StatusCode, Err: err}
	}
	return &common.FetchError{URL: url, Err: err}
}
