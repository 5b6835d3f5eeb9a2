// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socctl/socctl/internal/differ"
	"github.com/socctl/socctl/internal/stix"
)

func snapshot(version string, objects ...stix.Record) *stix.Snapshot {
	s := &stix.Snapshot{
		Version:    version,
		Objects:    objects,
		Index:      make(map[string]stix.Record),
		TypeCounts: make(map[string]int),
	}
	for _, obj := range objects {
		s.TypeCounts[obj.Type]++
		if obj.ID != "" {
			s.Index[obj.ID] = obj
		}
	}
	return s
}

func buildFixture() (*stix.Snapshot, *stix.Snapshot, *differ.Result) {
	from := snapshot("16.1",
		stix.Record{ID: "m1", Type: "malware", Name: "Agent Tesla", Modified: "t0"},
		stix.Record{ID: "t1", Type: "tool", Name: "PsExec", Modified: "t0"},
		stix.Record{ID: "r1", Type: "relationship", Modified: "t0"},
	)
	to := snapshot("17.0",
		stix.Record{ID: "m1", Type: "malware", Name: "Agent Tesla", Modified: "t1"},
		stix.Record{ID: "m2", Type: "malware", Name: "NovaLoader",
			Description: "Loader seen in [campaigns](http://x) since 2025."},
		stix.Record{ID: "a1", Type: "attack-pattern", Name: "Phantom Exec"},
		stix.Record{ID: "r2", Type: "relationship", Modified: "t0"},
	)
	return from, to, differ.Diff(from, to)
}

func TestBuildOverview(t *testing.T) {
	from, to, d := buildFixture()
	r := Build(from, to, d)
	out := r.Render()

	assert.Contains(t, out, "# MITRE ATT&CK Version 16.1 to 17.0 Changes Summary")
	assert.Contains(t, out, "| Component | Version 16.1 | Version 17.0 | Change |")
	assert.Contains(t, out, "| **Total Objects** | 3 | 4 | +1 |")
	assert.Contains(t, out, "| **Malware** | 1 | 2 | +1 |")
	assert.Contains(t, out, "| **Tools** | 1 | 0 | -1 |")
	assert.Contains(t, out, "| **Campaigns** | 0 | 0 | +0 |")
}

func TestBuildStatistics(t *testing.T) {
	from, to, d := buildFixture()
	out := Build(from, to, d).Render()

	assert.Contains(t, out, "- **New Objects Added**: 3")
	assert.Contains(t, out, "- **Objects Removed**: 2 (primarily relationships)")
	assert.Contains(t, out, "- **Modified Objects**: 1")
	assert.Contains(t, out, "- **Net Change**: +1 objects")
}

func TestBuildCategorySections(t *testing.T) {
	from, to, d := buildFixture()
	out := Build(from, to, d).Render()

	// Technique present, description absent, type default substituted.
	assert.Contains(t, out, "### New Attack Techniques (1 total)")
	assert.Contains(t, out, "1. **Phantom Exec** - Technique for adversary operations.")

	// Malware listing with link stripped from the description.
	assert.Contains(t, out, "### New Malware Families (1 total)")
	assert.Contains(t, out, "1. **NovaLoader** - Loader seen in campaigns since 2025.")

	// No added tools or campaigns, so no sections for them.
	assert.NotContains(t, out, "### New Tools")
	assert.NotContains(t, out, "### New Campaigns")
	assert.NotContains(t, out, "### New Threat Actors")
}

func TestBuildEmptyDescriptionGetsDefault(t *testing.T) {
	from := snapshot("1.0")
	to := snapshot("2.0",
		stix.Record{ID: "c1", Type: "campaign", Name: "Op Teal", Description: ""})
	out := Build(from, to, differ.Diff(from, to)).Render()

	assert.Contains(t, out, "1. **Op Teal** - Campaign.")
}

func TestBuildMissingNameFallsBack(t *testing.T) {
	from := snapshot("1.0")
	to := snapshot("2.0", stix.Record{ID: "t9", Type: "tool"})
	out := Build(from, to, differ.Diff(from, to)).Render()

	assert.Contains(t, out, "1. **N/A** - Tool for adversary operations.")
}

func TestBuildTechnicalAndTimeline(t *testing.T) {
	from, to, d := buildFixture()
	out := Build(from, to, d).Render()

	assert.Contains(t, out, "- **Relationships Removed**: 1")
	assert.Contains(t, out, "- **Relationships Added**: 1")
	assert.Contains(t, out, "- **Objects Modified**: 1 (100% of common objects)")
	assert.Contains(t, out, "- **Version 16.1 to 17.0**")
	assert.Contains(t, out, "- **Total Objects Changed**: 5")
	assert.Contains(t, out, "- **Modification Rate**: 100% of common objects updated")
}

func TestBuildEmptyCommonReportsZeroPercent(t *testing.T) {
	from := snapshot("1.0", stix.Record{ID: "x", Type: "malware"})
	to := snapshot("2.0", stix.Record{ID: "y", Type: "malware"})
	out := Build(from, to, differ.Diff(from, to)).Render()

	assert.Contains(t, out, "(0% of common objects)")
}

func TestFilename(t *testing.T) {
	r := &Report{Version1: "16.1", Version2: "17.0"}
	assert.Equal(t, "mitre_attack_changes_16.1_to_17.0.md", r.Filename())

	// Each label appears exactly once.
	assert.Equal(t, 1, strings.Count(r.Filename(), "16.1"))
	assert.Equal(t, 1, strings.Count(r.Filename(), "17.0"))
}

func TestWriteSinksAreByteIdentical(t *testing.T) {
	from, to, d := buildFixture()
	r := Build(from, to, d)

	dir := t.TempDir()
	var console bytes.Buffer
	path, err := r.Write(dir, &console)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, r.Filename()), path)

	fileContent, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fileContent, console.Bytes())
	assert.Equal(t, r.Render(), string(fileContent))
}

func TestWriteNilConsole(t *testing.T) {
	from, to, d := buildFixture()
	r := Build(from, to, d)

	path, err := r.Write(t.TempDir(), nil)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
