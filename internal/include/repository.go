package include

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/interopcheck/interopcheck/internal/profile"
)

// DefaultRepository is the well-known public profile repository queried when
// a dependency declares no Repository override.
const DefaultRepository = "http://redfish.dmtf.org/profiles"

const defaultFetchTimeout = 30 * time.Second

// Repository fetches profile documents from a remote repository. The
// repository exposes a directory-listing index; candidate files are
// discovered by scanning the index for the profile name interleaved with
// version tokens and fetching the highest-versioned match.
type Repository struct {
	base   string
	client *http.Client
}

// NewRepository returns a client for the given base URL. An empty base
// selects DefaultRepository; a zero timeout selects a conservative default.
func NewRepository(base string, timeout time.Duration) *Repository {
	if base == "" {
		base = DefaultRepository
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Repository{
		base:   base,
		client: &http.Client{Timeout: timeout},
	}
}

// Base returns the repository URL the client queries by default.
func (r *Repository) Base() string {
	return r.base
}

// Fetch locates name in the repository index and returns the parsed
// highest-versioned matching profile. override, when non-empty, replaces
// the base URL for this lookup. All failures are returned as errors; the
// caller treats them as "no remote result".
func (r *Repository) Fetch(name, override string) (profile.Document, error) {
	repo := r.base
	if override != "" {
		repo = override
	}

	index, err := r.get(repo)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository index: %w", err)
	}

	best := bestIndexMatch(name, string(index))
	if best == "" {
		return nil, fmt.Errorf("no file matching profile %q in repository index %s", name, repo)
	}

	data, err := r.get(strings.TrimRight(repo, "/") + "/" + best)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", best, err)
	}

	doc, err := profile.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse remote profile %s: %w", best, err)
	}
	return doc, nil
}

func (r *Repository) get(url string) ([]byte, error) {
	resp, err := r.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}
	return io.ReadAll(resp.Body)
}

// bestIndexMatch scans an index document for filenames matching name and
// returns the version-wise maximal one, or "" when nothing matches.
func bestIndexMatch(name, index string) string {
	matches := filePattern(name, false).FindAllString(index, -1)
	best := ""
	for _, match := range matches {
		if best == "" {
			best = match
			continue
		}
		switch cmp := profile.CompareVersions(filenameVersion(match), filenameVersion(best)); {
		case cmp > 0:
			best = match
		case cmp == 0 && match > best:
			best = match
		}
	}
	return best
}

var versionTokenRe = regexp.MustCompile(profile.VersionTokenPattern)

// filenameVersion extracts the version token from a candidate filename.
// Files without a token rank lowest.
func filenameVersion(filename string) string {
	return versionTokenRe.FindString(filename)
}

// filePattern builds the filename pattern for a profile name: each dot gap
// may carry a version token, so Foo.Bar matches both Foo.Bar.json and
// Foo.v1_2_0.Bar.json. anchored selects whole-string matching for basename
// checks; unanchored patterns scan index documents.
func filePattern(name string, anchored bool) *regexp.Regexp {
	parts := strings.Split(name, ".")
	escaped := make([]string, len(parts))
	for i, part := range parts {
		escaped[i] = regexp.QuoteMeta(part)
	}
	gap := `\.(?:` + profile.VersionTokenPattern + `\.)?`
	pattern := strings.Join(escaped, gap) + gap + `json`
	if anchored {
		pattern = `^` + pattern + `$`
	}
	return regexp.MustCompile(pattern)
}
