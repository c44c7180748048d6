// Package report records provenance for one profile resolution run: which
// profiles were pulled in, at which versions, and the fingerprint of the
// effective result.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/interopcheck/interopcheck/internal/profile"
)

// Inclusion identifies one profile that contributed to the effective result.
type Inclusion struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Fingerprint string `json:"fingerprint"`
}

// Report is the provenance record of a single resolution run.
type Report struct {
	RunID          string      `json:"runId"`
	Profile        Inclusion   `json:"profile"`
	Included       []Inclusion `json:"included,omitempty"`
	ResourceScoped []Inclusion `json:"resourceScoped,omitempty"`
	ResolvedAt     time.Time   `json:"resolvedAt"`
}

// New builds a report for a resolved profile. The Profile fingerprint is
// taken after merging, so it pins the effective document.
func New(doc profile.Document, included, resourceScoped []profile.Document) *Report {
	return &Report{
		RunID:          uuid.New().String(),
		Profile:        describe(doc),
		Included:       describeAll(included),
		ResourceScoped: describeAll(resourceScoped),
		ResolvedAt:     time.Now().UTC(),
	}
}

func describe(doc profile.Document) Inclusion {
	return Inclusion{
		Name:        doc.Name(),
		Version:     doc.Version(),
		Fingerprint: profile.Fingerprint(doc),
	}
}

func describeAll(docs []profile.Document) []Inclusion {
	if len(docs) == 0 {
		return nil
	}
	inclusions := make([]Inclusion, len(docs))
	for i, doc := range docs {
		inclusions[i] = describe(doc)
	}
	return inclusions
}
