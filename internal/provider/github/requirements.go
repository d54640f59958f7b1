package github

import (
	"bufio"
	"context"
	"strings"

	"github.com/johanforsgren/toolmanager/internal/logger"
	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

type RequirementsFetcher struct {
	fetcher   *PageFetcher
	endpoints common.Endpoints
}

func NewRequirementsFetcher(fetcher *PageFetcher, endpoints common.Endpoints) *RequirementsFetcher {
	return &RequirementsFetcher{fetcher: fetcher, endpoints: endpoints}
}

// FetchRequirements returns the manifest lines of a repository. A missing
// manifest yields an empty slice and no error.
func (r *RequirementsFetcher) FetchRequirements(ctx context.Context, name string) ([]string, error) {
	url := r.endpoints.RequirementsURL(name)

	body, found, err := r.fetcher.FetchOptional(ctx, url)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Log("GitHub: No %s for %s", common.RequirementsFile, name)
		return []string{}, nil
	}

	return ParseRequirements(string(body)), nil
}

// ParseRequirements splits a manifest into lines without filtering blanks or
// comments. A final newline does not produce a trailing empty line.
func ParseRequirements(text string) []string {
	lines := []string{}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 4096), len(text)+1)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
