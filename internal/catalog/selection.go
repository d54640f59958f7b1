package catalog

import (
	"sync"

	"github.com/johanforsgren/toolmanager/internal/domain"
)

// Selection is the identifier the detail view should show. It never holds
// the record itself; callers resolve it through Catalog.Get.
type Selection struct {
	mu  sync.RWMutex
	id  domain.RepositoryID
	set bool
}

func NewSelection() *Selection {
	return &Selection{}
}

func (s *Selection) Select(id domain.RepositoryID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	s.set = true
}

func (s *Selection) Current() (domain.RepositoryID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.set
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
	s.set = false
}
