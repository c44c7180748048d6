// Package profile provides the interoperability profile document model and
// the restrictiveness-preserving requirement merge. Profiles are loosely
// typed JSON documents: requirement blocks may carry arbitrary keys that
// must survive merging verbatim, so the model is a map wrapper with typed
// accessors rather than a closed struct.
package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// DefaultVersion is assumed whenever a profile or reference omits a version.
const DefaultVersion = "1.0.0"

// Document is a parsed profile. It is mutated in place during resolution
// and never written back to storage.
type Document map[string]any

// Name returns the ProfileName field, or "" if absent.
func (d Document) Name() string {
	name, _ := d["ProfileName"].(string)
	return name
}

// Version returns the ProfileVersion field, defaulting to DefaultVersion.
func (d Document) Version() string {
	switch v := d["ProfileVersion"].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return versionString(v)
	}
	return DefaultVersion
}

// Resources returns the Resources mapping, or nil if absent.
func (d Document) Resources() map[string]any {
	resources, _ := d["Resources"].(map[string]any)
	return resources
}

// EnsureResources returns the Resources mapping, creating it if absent.
func (d Document) EnsureResources() map[string]any {
	if resources, ok := d["Resources"].(map[string]any); ok {
		return resources
	}
	resources := map[string]any{}
	d["Resources"] = resources
	return resources
}

// RequiredProfiles returns the whole-profile dependency declarations.
func (d Document) RequiredProfiles() map[string]Reference {
	return References(d["RequiredProfiles"])
}

// Reference describes a single profile dependency.
type Reference struct {
	// MinVersion is the lowest acceptable version of the dependency.
	MinVersion string
	// Repository optionally overrides the default remote repository URL.
	Repository string
}

// References decodes a RequiredProfiles or RequiredResourceProfile mapping.
// Entries that are not mappings still yield a Reference with defaults, since
// the dependency name alone is enough to attempt resolution.
func References(v any) map[string]Reference {
	entries, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	refs := make(map[string]Reference, len(entries))
	for name, entry := range entries {
		ref := Reference{MinVersion: DefaultVersion}
		if m, ok := entry.(map[string]any); ok {
			if min, ok := m["MinVersion"].(string); ok && min != "" {
				ref.MinVersion = min
			}
			if repo, ok := m["Repository"].(string); ok {
				ref.Repository = repo
			}
		}
		refs[name] = ref
	}
	return refs
}

// Load reads and parses a profile document from a JSON file.
func Load(path string) (Document, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile directory: %w", err)
	}
	defer root.Close()

	file, err := root.Open(base)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer file.Close()

	return LoadFrom(file)
}

// LoadFrom parses a profile document from an io.Reader.
func LoadFrom(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data)
}

// Parse parses a profile document from raw JSON bytes.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return doc, nil
}

// SortedKeys returns the keys of m in ascending order. Map iteration order
// is randomized in Go, so every traversal that feeds the merge goes through
// this to keep resolution deterministic.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
