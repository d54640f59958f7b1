package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

func TestPageFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		case "/accepted":
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("later"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f := NewPageFetcher(server.Client())
	ctx := context.Background()

	body, err := f.Fetch(ctx, server.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	body, err = f.Fetch(ctx, server.URL+"/accepted")
	require.NoError(t, err)
	assert.Equal(t, "later", string(body))

	_, err = f.Fetch(ctx, server.URL+"/missing")
	var fetchErr *common.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.True(t, errors.Is(err, common.ErrFetch))
}

func TestPageFetcher_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewPageFetcher(http.DefaultClient).Fetch(context.Background(), url)

	var fetchErr *common.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.NotNil(t, fetchErr.Err)
}

func TestPageFetcher_FetchOptional(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("present"))
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f := NewPageFetcher(server.Client())
	ctx := context.Background()

	body, found, err := f.FetchOptional(ctx, server.URL+"/ok")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "present", string(body))

	_, found, err = f.FetchOptional(ctx, server.URL+"/empty")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = f.FetchOptional(ctx, server.URL+"/missing")
	require.NoError(t, err)
	assert.False(t, found)
}
