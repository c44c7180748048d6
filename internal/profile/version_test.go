package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CompareVersions_Ordering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"equal", "1.2.0", "1.2.0", 0},
		{"patch", "1.2.1", "1.2.0", 1},
		{"numeric not lexicographic", "1.10.0", "1.9.0", 1},
		{"missing patch", "1.2", "1.2.0", 0},
		{"major only", "2", "1.9.9", 1},
		{"filename token", "v1_2_0", "1.2.0", 0},
		{"json number", float64(1.2), "1.2.0", 0},
		{"garbage ranks lowest", "not-a-version", "0.0.1", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CompareVersions(tt.a, tt.b))
		})
	}
}

func Test_SplitVersion_Triple(t *testing.T) {
	t.Parallel()

	major, minor, patch := SplitVersion("1.4.2")
	assert.Equal(t, uint64(1), major)
	assert.Equal(t, uint64(4), minor)
	assert.Equal(t, uint64(2), patch)

	major, minor, patch = SplitVersion("v2_0_1")
	assert.Equal(t, uint64(2), major)
	assert.Equal(t, uint64(0), minor)
	assert.Equal(t, uint64(1), patch)
}

func Test_VersionToken_Rendering(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "v1_2_0", VersionToken("1.2.0"))
	assert.Equal(t, "v1_0_0", VersionToken("1"))
	assert.Equal(t, "v0_0_0", VersionToken("junk"))
}
