package domain

import "context"

type Catalog interface {
	Load(ctx context.Context) error

	List(ctx context.Context) ([]CatalogEntry, error)

	Get(id RepositoryID) (Repository, error)
}

type Selection interface {
	Select(id RepositoryID)

	Current() (RepositoryID, bool)

	Clear()
}
