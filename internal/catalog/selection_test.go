package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johanforsgren/toolmanager/internal/domain"
)

func TestSelection_StartsEmpty(t *testing.T) {
	s := NewSelection()

	id, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestSelection_SelectAndClear(t *testing.T) {
	s := NewSelection()

	s.Select("Sparta")
	id, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, domain.RepositoryID("Sparta"), id)

	s.Select("Evil-Droid")
	id, _ = s.Current()
	assert.Equal(t, domain.RepositoryID("Evil-Droid"), id)

	s.Clear()
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestSelection_DoesNotValidate(t *testing.T) {
	s := NewSelection()
	s.Select("not-in-any-catalog")

	id, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, domain.RepositoryID("not-in-any-catalog"), id)
}

func TestSelection_ConcurrentWriters(t *testing.T) {
	s := NewSelection()
	var wg sync.WaitGroup
	for _, name := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(id domain.RepositoryID) {
			defer wg.Done()
			s.Select(id)
		}(domain.RepositoryID(name))
	}
	wg.Wait()

	id, ok := s.Current()
	assert.True(t, ok)
	assert.Contains(t, []domain.RepositoryID{"a", "b", "c", "d"}, id)
}
