package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/johanforsgren/toolmanager/internal/domain"
	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

// Provider bundles the listing, requirements, and archive endpoints of one
// GitHub account behind domain.Provider.
type Provider struct {
	source       domain.ListingSource
	lister       domain.Lister
	requirements *RequirementsFetcher
	downloader   *ArchiveDownloader
	endpoints    common.Endpoints
}

func NewProvider(endpoints common.Endpoints, source domain.ListingSource, httpClient *http.Client) (*Provider, error) {
	if httpClient == nil {
		httpClient = common.NewHTTPClient()
	}
	fetcher := NewPageFetcher(httpClient)

	var lister domain.Lister
	switch source {
	case domain.ListingSourceHTML, "":
		source = domain.ListingSourceHTML
		lister = NewHTMLLister(fetcher, endpoints)
	case domain.ListingSourceAPI:
		client, err := NewAPIClient(httpClient, endpoints.APIBaseURL)
		if err != nil {
			return nil, err
		}
		lister = NewSearchLister(client, endpoints)
	default:
		return nil, fmt.Errorf("unsupported listing source: %s", source)
	}

	return &Provider{
		source:       source,
		lister:       lister,
		requirements: NewRequirementsFetcher(fetcher, endpoints),
		downloader:   NewArchiveDownloader(httpClient, endpoints.Branch),
		endpoints:    endpoints,
	}, nil
}

func (p *Provider) GetSource() domain.ListingSource {
	return p.source
}

func (p *Provider) Endpoints() common.Endpoints {
	return p.endpoints
}

func (p *Provider) ListRepositories(ctx context.Context) ([]domain.ListingEntry, error) {
	return p.lister.ListRepositories(ctx)
}

func (p *Provider) FetchRequirements(ctx context.Context, name string) ([]string, error) {
	return p.requirements.FetchRequirements(ctx, name)
}

func (p *Provider) Download(ctx context.Context, repo domain.Repository, destDir string, progress domain.ProgressFunc) (*domain.Archive, error) {
	return p.downloader.Download(ctx, repo, destDir, progress)
}
