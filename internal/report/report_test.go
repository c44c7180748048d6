package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interopcheck/interopcheck/internal/profile"
)

func Test_Report_New_RecordsProvenance(t *testing.T) {
	t.Parallel()

	doc := profile.Document{"ProfileName": "A", "ProfileVersion": "1.1.0"}
	included := []profile.Document{
		{"ProfileName": "B", "ProfileVersion": "1.0.0"},
	}
	scoped := []profile.Document{
		{"ProfileName": "C"},
	}

	r := New(doc, included, scoped)

	assert.NotEmpty(t, r.RunID)
	assert.False(t, r.ResolvedAt.IsZero())
	assert.Equal(t, "A", r.Profile.Name)
	assert.Equal(t, "1.1.0", r.Profile.Version)
	assert.Equal(t, profile.Fingerprint(doc), r.Profile.Fingerprint)

	require.Len(t, r.Included, 1)
	assert.Equal(t, "B", r.Included[0].Name)
	require.Len(t, r.ResourceScoped, 1)
	assert.Equal(t, "C", r.ResourceScoped[0].Name)
	assert.Equal(t, profile.DefaultVersion, r.ResourceScoped[0].Version)
}

func Test_Report_New_UniqueRunIDs(t *testing.T) {
	t.Parallel()

	doc := profile.Document{"ProfileName": "A"}
	assert.NotEqual(t, New(doc, nil, nil).RunID, New(doc, nil, nil).RunID)
}

func Test_Report_New_EmptyInclusionsOmitted(t *testing.T) {
	t.Parallel()

	r := New(profile.Document{"ProfileName": "A"}, nil, nil)
	assert.Nil(t, r.Included)
	assert.Nil(t, r.ResourceScoped)
}
