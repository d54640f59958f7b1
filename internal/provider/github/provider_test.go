package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johanforsgren/toolmanager/internal/domain"
	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

func TestNewProvider_Sources(t *testing.T) {
	p, err := NewProvider(common.DefaultEndpoints(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingSourceHTML, p.GetSource())

	p, err = NewProvider(common.DefaultEndpoints(), domain.ListingSourceAPI, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingSourceAPI, p.GetSource())

	_, err = NewProvider(common.DefaultEndpoints(), "gitlab", nil)
	assert.Error(t, err)
}

func TestProvider_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/UndeadSec", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingPage("acct-desc", [2]string{"Evil-Droid", "d1"}, [2]string{"Sparta", "d2"})))
	})
	mux.HandleFunc("/UndeadSec/Sparta/master/requirements.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("requests\n"))
	})
	mux.HandleFunc("/UndeadSec/Sparta/archive/master.zip", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("PK\x03\x04sparta"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	endpoints := testEndpoints(server.URL, server.URL)
	p, err := NewProvider(endpoints, domain.ListingSourceHTML, server.Client())
	require.NoError(t, err)

	ctx := context.Background()
	entries, err := p.ListRepositories(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	reqs, err := p.FetchRequirements(ctx, "Sparta")
	require.NoError(t, err)
	assert.Equal(t, []string{"requests"}, reqs)

	repo := domain.Repository{Name: "Sparta", URL: endpoints.RepositoryURL("Sparta")}
	archive, err := p.Download(ctx, repo, t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), archive.Size)
}
