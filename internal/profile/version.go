package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionTokenPattern matches the vMAJOR_MINOR_PATCH token embedded in
// profile filenames, e.g. the v1_2_0 in Foo.v1_2_0.Bar.json.
const VersionTokenPattern = `v[0-9]+_[0-9]+_[0-9]+`

// CompareVersions compares two version values and returns -1, 0 or 1.
// Inputs may be dotted strings ("1.2.0", "1.2", "1"), filename tokens
// ("v1_2_0") or JSON numbers; anything unparseable ranks as 0.0.0.
func CompareVersions(a, b any) int {
	return parseVersion(a).Compare(parseVersion(b))
}

// SplitVersion returns the ordered (major, minor, patch) triple of a
// version value.
func SplitVersion(v any) (major, minor, patch uint64) {
	parsed := parseVersion(v)
	return parsed.Major(), parsed.Minor(), parsed.Patch()
}

// VersionToken renders a version value as its filename token form,
// e.g. "1.2.0" becomes "v1_2_0".
func VersionToken(v any) string {
	major, minor, patch := SplitVersion(v)
	return fmt.Sprintf("v%d_%d_%d", major, minor, patch)
}

func parseVersion(v any) *semver.Version {
	s := strings.TrimSpace(versionString(v))
	if strings.HasPrefix(s, "v") && strings.Contains(s, "_") {
		s = strings.ReplaceAll(strings.TrimPrefix(s, "v"), "_", ".")
	}
	parsed, err := semver.NewVersion(s)
	if err != nil {
		return &semver.Version{}
	}
	return parsed
}

func versionString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(v)
	}
}
