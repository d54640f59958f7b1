package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johanforsgren/toolmanager/internal/domain"
)

func TestDefaultEndpoints_URLs(t *testing.T) {
	e := DefaultEndpoints()

	assert.Equal(t, "https://github.com/UndeadSec?utf8=%E2%9C%93&q=&type=&language=python", e.ListingURL())
	assert.Equal(t, "https://github.com/UndeadSec/Sparta", e.RepositoryURL("Sparta"))
	assert.Equal(t, "https://raw.githubusercontent.com/UndeadSec/Evil-Droid/master/requirements.txt", e.RequirementsURL("Evil-Droid"))
	assert.Equal(t, "user:UndeadSec language:python", e.SearchQuery())
}

func TestEndpoints_TrailingSlashOnHost(t *testing.T) {
	e := DefaultEndpoints()
	e.WebHost = "http://127.0.0.1:8080/"
	e.RawHost = "http://127.0.0.1:9090/"

	assert.Equal(t, "http://127.0.0.1:8080/UndeadSec/Sparta", e.RepositoryURL("Sparta"))
	assert.Equal(t, "http://127.0.0.1:9090/UndeadSec/Sparta/master/requirements.txt", e.RequirementsURL("Sparta"))
	assert.Equal(t, "http://127.0.0.1:8080/UndeadSec?utf8=%E2%9C%93&q=&type=&language=python", e.ListingURL())
}

func TestArchiveURL(t *testing.T) {
	tests := []struct {
		name    string
		repoURL string
		want    string
	}{
		{"Without trailing slash", "https://github.com/UndeadSec/Sparta", "https://github.com/UndeadSec/Sparta/archive/master.zip"},
		{"With trailing slash", "https://github.com/UndeadSec/Sparta/", "https://github.com/UndeadSec/Sparta/archive/master.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArchiveURL(tt.repoURL, "master"))
		})
	}
}

func TestArchiveFileName(t *testing.T) {
	assert.Equal(t, "Evil-Droid-master.zip", ArchiveFileName("Evil-Droid", "master"))
}

func TestParseRepositoryID(t *testing.T) {
	id, err := ParseRepositoryID("  Sparta ")
	require.NoError(t, err)
	assert.Equal(t, domain.RepositoryID("Sparta"), id)

	for _, raw := range []string{"", "   ", "a/b", `a\b`, ".", ".."} {
		_, err := ParseRepositoryID(raw)
		assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound for %q", raw)
	}
}
