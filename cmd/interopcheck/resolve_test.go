package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_runResolve_WritesEffectiveProfile(t *testing.T) {
	dir := t.TempDir()

	profilePath := filepath.Join(dir, "A.json")
	require.NoError(t, os.WriteFile(profilePath, []byte(`{
		"ProfileName": "A",
		"RequiredProfiles": {"B": {"MinVersion": "1.0.0"}},
		"Resources": {"Chassis": {"ReadRequirement": "Mandatory"}}
	}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B.json"), []byte(`{
		"ProfileName": "B",
		"Resources": {
			"Chassis": {"ReadRequirement": "Recommended"},
			"Fan": {"MinCount": 2}
		}
	}`), 0o600))

	outPath := filepath.Join(dir, "effective.json")
	reportPath := filepath.Join(dir, "report.json")

	resolveFormat = "json"
	resolveOutFile = outPath
	resolveDirs = nil
	resolveOnline = false
	resolveRepo = ""
	resolveReport = reportPath
	t.Cleanup(func() {
		resolveOutFile = ""
		resolveReport = ""
	})

	require.NoError(t, runResolve(profilePath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var effective map[string]any
	require.NoError(t, json.Unmarshal(data, &effective))

	resources := effective["Resources"].(map[string]any)
	chassis := resources["Chassis"].(map[string]any)
	assert.Equal(t, "Mandatory", chassis["ReadRequirement"])
	assert.Contains(t, resources, "Fan")

	reportData, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal(reportData, &report))
	assert.NotEmpty(t, report["runId"])
	require.Len(t, report["included"], 1)
}

func Test_runResolve_MissingProfileFile(t *testing.T) {
	resolveOutFile = ""
	resolveReport = ""
	err := runResolve(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "failed to load profile")
}
