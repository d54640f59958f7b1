package github

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

// PageFetcher performs single blocking GETs with no retries and no custom
// headers.
type PageFetcher struct {
	client *http.Client
}

func NewPageFetcher(client *http.Client) *PageFetcher {
	if client == nil {
		client = common.NewHTTPClient()
	}
	return &PageFetcher{client: client}
}

// Fetch returns the body of a mandatory resource. Any non-2xx status is a
// *common.FetchError.
func (f *PageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &common.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	return readBody(url, resp)
}

// FetchOptional returns found=false for any status other than 200. Only
// transport failures are errors.
func (f *PageFetcher) FetchOptional(ctx context.Context, url string) ([]byte, bool, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, nil
	}

	body, err := readBody(url, resp)
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (f *PageFetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &common.FetchError{URL: url, Err: fmt.Errorf("build request: %w", err)}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &common.FetchError{URL: url, Err: err}
	}
	return resp, nil
}

func readBody(url string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &common.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
