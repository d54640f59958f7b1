package github

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/johanforsgren/toolmanager/internal/domain"
	"github.com/johanforsgren/toolmanager/internal/logger"
	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

// Markup attributes of the account's repository tab. A change upstream
// breaks parsing; it is not something this package can recover from.
const (
	nameItemprop        = "name codeRepository"
	descriptionItemprop = "description"
)

// ParseListing extracts (name, description) pairs in document order.
//
// The first description on the page is the account's own bio and is dropped
// before pairing. If the remaining counts differ the listing is rejected
// rather than truncated, since positional pairing would then attach
// descriptions to the wrong repositories.
func ParseListing(body []byte) ([]domain.ListingEntry, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedListing, err)
	}

	var names, descriptions []string
	walk(doc, func(n *html.Node) {
		switch {
		case n.DataAtom == atom.A && attr(n, "itemprop") == nameItemprop:
			names = append(names, strings.TrimSpace(textContent(n)))
		case n.DataAtom == atom.P && attr(n, "itemprop") == descriptionItemprop:
			descriptions = append(descriptions, strings.TrimSpace(textContent(n)))
		}
	})

	logger.Log("Listing: names %v", names)
	logger.Log("Listing: descriptions %v", descriptions)

	if len(descriptions) > 0 {
		descriptions = descriptions[1:]
	}

	if len(names) != len(descriptions) {
		return nil, fmt.Errorf("%w: %d repository names but %d descriptions",
			common.ErrMalformedListing, len(names), len(descriptions))
	}

	entries := make([]domain.ListingEntry, 0, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: empty repository name at position %d", common.ErrMalformedListing, i)
		}
		entries = append(entries, domain.ListingEntry{
			Name:        name,
			Description: descriptions[i],
		})
	}

	return entries, nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}

// HTMLLister scrapes the account's repository tab.
type HTMLLister struct {
	fetcher   *PageFetcher
	endpoints common.Endpoints
}

func NewHTMLLister(fetcher *PageFetcher, endpoints common.Endpoints) *HTMLLister {
	return &HTMLLister{fetcher: fetcher, endpoints: endpoints}
}

func (l *HTMLLister) ListRepositories(ctx context.Context) ([]domain.ListingEntry, error) {
	url := l.endpoints.ListingURL()
	logger.Log("GitHub: Fetching repository listing %s", url)

	body, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		logger.LogError("GITHUB_LISTING", url, err)
		return nil, err
	}

	entries, err := ParseListing(body)
	if err != nil {
		logger.LogError("GITHUB_LISTING_PARSE", url, err)
		return nil, err
	}

	logger.Log("GitHub: Listing contains %d repositories", len(entries))
	return entries, nil
}
