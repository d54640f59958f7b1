package domain

import "slices"

type RepositoryID string

// Repository is one discovered repository. Values handed out by the catalog
// are copies; mutating them does not affect the catalog.
type Repository struct {
	Name         string
	Description  string
	URL          string
	Requirements []string
}

func (r Repository) ID() RepositoryID {
	return RepositoryID(r.Name)
}

func (r Repository) Clone() Repository {
	r.Requirements = slices.Clone(r.Requirements)
	if r.Requirements == nil {
		r.Requirements = []string{}
	}
	return r
}

type ListingEntry struct {
	Name        string
	Description string
}

type CatalogEntry struct {
	ID         RepositoryID
	Repository Repository
}

type Archive struct {
	Path        string
	Size        int64
	ContentType string
}

type ListingSource string

const (
	ListingSourceHTML ListingSource = "html"
	ListingSourceAPI  ListingSource = "api"
)
