package include

import (
	"log/slog"
	"path/filepath"

	"github.com/interopcheck/interopcheck/internal/profile"
)

// Locator finds the best matching document for a named, versioned profile
// dependency, checking the run cache, then the remote repository (when
// allowed), then the local search directories.
type Locator struct {
	cache *Cache
	repo  *Repository
}

// NewLocator returns a locator over the given cache and repository client.
// Nil arguments select a fresh cache and the default repository.
func NewLocator(cache *Cache, repo *Repository) *Locator {
	if cache == nil {
		cache = NewCache()
	}
	if repo == nil {
		repo = NewRepository("", 0)
	}
	return &Locator{cache: cache, repo: repo}
}

// Cache returns the run cache backing this locator.
func (l *Locator) Cache() *Cache {
	return l.cache
}

// Locate returns the best available document for the named dependency, or
// nil when it cannot be acquired. The outcome, including failure, is cached
// by target filename so repeated lookups short-circuit. A best local match
// older than ref.MinVersion is still returned, with a warning.
func (l *Locator) Locate(name string, ref profile.Reference, dirs []string, allowRemote bool) profile.Document {
	key := name + ".json"
	if doc, ok := l.cache.Lookup(key); ok {
		return doc
	}

	var doc profile.Document
	if allowRemote {
		remote, err := l.repo.Fetch(name, ref.Repository)
		if err != nil {
			slog.Debug("remote profile lookup failed, falling back to local search",
				"profile", name, "error", err)
		} else {
			doc = remote
		}
	}

	if doc == nil {
		doc = l.locateLocal(name, ref, dirs)
	}

	if doc == nil {
		repo := ref.Repository
		if repo == "" {
			repo = l.repo.Base()
		}
		slog.Error("could not acquire required profile from local source or online",
			"profile", name, "repository", repo)
	}

	l.cache.Store(key, doc)
	return doc
}

// locateLocal scans the search directories for files matching the profile
// name, parses every candidate and keeps the one with the highest
// ProfileVersion.
func (l *Locator) locateLocal(name string, ref profile.Reference, dirs []string) profile.Document {
	pattern := filePattern(name, true)

	var best profile.Document
	for _, dir := range dirs {
		candidates, err := filepath.Glob(filepath.Join(dir, "*.json"))
		if err != nil {
			continue
		}
		for _, path := range candidates {
			if !pattern.MatchString(filepath.Base(path)) {
				continue
			}
			doc, err := profile.Load(path)
			if err != nil {
				slog.Warn("skipping unreadable profile candidate", "path", path, "error", err)
				continue
			}
			if best == nil || profile.CompareVersions(doc.Version(), best.Version()) > 0 {
				best = doc
			}
		}
	}

	if best == nil {
		return nil
	}
	if profile.CompareVersions(best.Version(), ref.MinVersion) < 0 {
		slog.Warn("required profile version below declared minimum",
			"profile", name, "found", best.Version(), "minimum", ref.MinVersion)
	}
	return best
}
