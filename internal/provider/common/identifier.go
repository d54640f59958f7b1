package common

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/johanforsgren/toolmanager/internal/domain"
)

const (
	DefaultAccount    = "UndeadSec"
	DefaultBranch     = "master"
	DefaultLanguage   = "python"
	DefaultWebHost    = "https://github.com"
	DefaultRawHost    = "https://raw.githubusercontent.com"
	DefaultAPIBaseURL = "https://api.github.com/"

	ArchiveExt       = "zip"
	RequirementsFile = "requirements.txt"
)

// Endpoints holds everything needed to build the URLs for one account.
type Endpoints struct {
	WebHost    string
	RawHost    string
	APIBaseURL string
	Account    string
	Branch     string
	Language   string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		WebHost:    DefaultWebHost,
		RawHost:    DefaultRawHost,
		APIBaseURL: DefaultAPIBaseURL,
		Account:    DefaultAccount,
		Branch:     DefaultBranch,
		Language:   DefaultLanguage,
	}
}

func (e Endpoints) ListingURL() string {
	return fmt.Sprintf("%s/%s?utf8=%%E2%%9C%%93&q=&type=&language=%s",
		strings.TrimSuffix(e.WebHost, "/"), e.Account, url.QueryEscape(e.Language))
}

func (e Endpoints) RepositoryURL(name string) string {
	return joinURL(e.WebHost, e.Account, name)
}

func (e Endpoints) RequirementsURL(name string) string {
	return joinURL(e.RawHost, e.Account, name, e.Branch, RequirementsFile)
}

func (e Endpoints) SearchQuery() string {
	return fmt.Sprintf("user:%s language:%s", e.Account, e.Language)
}

// ArchiveURL appends the default-branch archive path to a repository URL.
func ArchiveURL(repoURL, branch string) string {
	return joinURL(repoURL, "archive", branch+"."+ArchiveExt)
}

func ArchiveFileName(name, branch string) string {
	return fmt.Sprintf("%s-%s.%s", name, branch, ArchiveExt)
}

// ParseRepositoryID validates a user-supplied identifier. Identifiers are
// repository names, so they must be a single non-empty path segment.
func ParseRepositoryID(raw string) (domain.RepositoryID, error) {
	name := strings.TrimSpace(raw)
	if name == "" || strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return "", fmt.Errorf("%w: invalid repository name '%s'", ErrNotFound, raw)
	}
	return domain.RepositoryID(name), nil
}

func joinURL(base string, segments ...string) string {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, strings.TrimSuffix(base, "/"))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return strings.Join(escaped, "/")
}
