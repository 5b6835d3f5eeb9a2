// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socctl/socctl/internal/stix"
)

// snapshot builds an in-memory Snapshot from records, mirroring what
// stix.Load produces.
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

func TestDiff(t *testing.T) {
	from := snapshot("16.1",
		stix.Record{ID: "1", Type: "malware", Name: "A", Modified: "t0"},
		stix.Record{ID: "2", Type: "tool", Name: "B", Modified: "t0"},
	)
	to := snapshot("17.0",
		stix.Record{ID: "1", Type: "malware", Name: "A", Modified: "t1"},
		stix.Record{ID: "3", Type: "malware", Name: "C", Modified: "t0"},
	)

	r := Diff(from, to)

	assert.Equal(t, map[string]bool{"3": true}, r.Added)
	assert.Equal(t, map[string]bool{"2": true}, r.Removed)
	assert.Equal(t, map[string]bool{"1": true}, r.Common)
	assert.Equal(t, map[string]bool{"1": true}, r.Modified)
	assert.Len(t, r.AddedByType["malware"], 1)
	assert.Len(t, r.RemovedByType["tool"], 1)
	assert.Equal(t, 0, r.NetChange())
}

func TestDiffSetInvariants(t *testing.T) {
	from := snapshot("1.0",
		stix.Record{ID: "a", Type: "malware", Modified: "x"},
		stix.Record{ID: "b", Type: "tool", Modified: "x"},
		stix.Record{ID: "c", Type: "campaign", Modified: "x"},
	)
	to := snapshot("2.0",
		stix.Record{ID: "b", Type: "tool", Modified: "y"},
		stix.Record{ID: "c", Type: "campaign", Modified: "x"},
		stix.Record{ID: "d", Type: "malware", Modified: "x"},
	)

	r := Diff(from, to)

	// added and removed are disjoint.
	for id := range r.Added {
		assert.False(t, r.Removed[id], "id %s in both added and removed", id)
	}

	// added ∪ common covers exactly ids(to).
	union := make(map[string]bool)
	for id := range r.Added {
		union[id] = true
	}
	for id := range r.Common {
		union[id] = true
	}
	assert.Len(t, union, len(to.Index))
	for id := range to.Index {
		assert.True(t, union[id])
	}

	// removed ∪ common covers exactly ids(from).
	union = make(map[string]bool)
	for id := range r.Removed {
		union[id] = true
	}
	for id := range r.Common {
		union[id] = true
	}
	assert.Len(t, union, len(from.Index))
	for id := range from.Index {
		assert.True(t, union[id])
	}

	// modified ⊆ common, markers unequal inside, equal outside.
	for id := range r.Modified {
		assert.True(t, r.Common[id])
		assert.NotEqual(t, from.Index[id].Modified, to.Index[id].Modified)
	}
	for id := range r.Common {
		if !r.Modified[id] {
			assert.Equal(t, from.Index[id].Modified, to.Index[id].Modified)
		}
	}
}

func TestDiffGroupingPreservesSourceOrder(t *testing.T) {
	from := snapshot("1.0")
	to := snapshot("2.0",
		stix.Record{ID: "m2", Type: "malware", Name: "Zebra"},
		stix.Record{ID: "t1", Type: "tool", Name: "Tool"},
		stix.Record{ID: "m1", Type: "malware", Name: "Alpha"},
	)

	r := Diff(from, to)

	require.Len(t, r.AddedByType["malware"], 2)
	assert.Equal(t, "Zebra", r.AddedByType["malware"][0].Name)
	assert.Equal(t, "Alpha", r.AddedByType["malware"][1].Name)
}

func TestDiffAbsentModifiedMarkers(t *testing.T) {
	// Both sides absent compares equal; absent vs present is modified.
	from := snapshot("1.0",
		stix.Record{ID: "a", Type: "malware"},
		stix.Record{ID: "b", Type: "tool"},
	)
	to := snapshot("2.0",
		stix.Record{ID: "a", Type: "malware"},
		stix.Record{ID: "b", Type: "tool", Modified: "t1"},
	)

	r := Diff(from, to)

	assert.False(t, r.Modified["a"])
	assert.True(t, r.Modified["b"])
}

func TestModifiedPercentEmptyCommon(t *testing.T) {
	r := Diff(snapshot("1.0", stix.Record{ID: "a", Type: "malware"}),
		snapshot("2.0", stix.Record{ID: "b", Type: "malware"}))

	assert.Empty(t, r.Common)
	assert.Equal(t, 0, r.ModifiedPercent())
}

func TestModifiedPercentFloors(t *testing.T) {
	from := snapshot("1.0",
		stix.Record{ID: "a", Type: "malware", Modified: "x"},
		stix.Record{ID: "b", Type: "malware", Modified: "x"},
		stix.Record{ID: "c", Type: "malware", Modified: "x"},
	)
	to := snapshot("2.0",
		stix.Record{ID: "a", Type: "malware", Modified: "y"},
		stix.Record{ID: "b", Type: "malware", Modified: "x"},
		stix.Record{ID: "c", Type: "malware", Modified: "x"},
	)

	// 1 of 3 modified floors to 33.
	assert.Equal(t, 33, Diff(from, to).ModifiedPercent())
}

func TestDiffObject(t *testing.T) {
	dir := t.TempDir()
	fromPath := filepath.Join(dir, "enterprise-attack-16.1.json")
	toPath := filepath.Join(dir, "enterprise-attack-17.0.json")

	require.NoError(t, os.WriteFile(fromPath, []byte(`{"objects": [
		{"id": "malware--1", "type": "malware", "name": "Old", "modified": "t0"}
	]}`), 0o644))
	require.NoError(t, os.WriteFile(toPath, []byte(`{"objects": [
		{"id": "malware--1", "type": "malware", "name": "New", "modified": "t1"}
	]}`), 0o644))

	out, err := DiffObject(fromPath, toPath, "malware--1", false)
	require.NoError(t, err)
	assert.Contains(t, out, "Old")
	assert.Contains(t, out, "New")

	// Identical object.
	out, err = DiffObject(fromPath, fromPath, "malware--1", false)
	require.NoError(t, err)
	assert.Equal(t, "The objects are identical.", out)

	// Unknown object.
	_, err = DiffObject(fromPath, toPath, "tool--99", false)
	assert.Error(t, err)

	// One-sided object.
	require.NoError(t, os.WriteFile(toPath, []byte(`{"objects": [
		{"id": "malware--2", "type": "malware", "name": "Other"}
	]}`), 0o644))
	out, err = DiffObject(fromPath, toPath, "malware--1", false)
	require.NoError(t, err)
	assert.Contains(t, out, "only exists in")
}
