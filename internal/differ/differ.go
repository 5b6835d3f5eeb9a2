// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/apex/log"

	"github.com/socctl/socctl/internal/stix"
)

// Result holds the computed difference between two snapshots. It is built
// once per Diff call and never mutated afterwards.
type Result struct {
	Added    map[string]bool
	Removed  map[string]bool
	Common   map[string]bool
	Modified map[string]bool

	// Added/removed records grouped by type tag. Order within a group follows
	// the record's position in its source snapshot, not set iteration order.
	AddedByType   map[string][]stix.Record
	RemovedByType map[string][]stix.Record
}

// Diff computes the added, removed, common and modified id sets between two
// snapshots, plus type-grouped listings of the added and removed records.
// Pure computation; snapshots are assumed valid.
func Diff(from, to *stix.Snapshot) *Result {
	r := &Result{
		Added:         make(map[string]bool),
		Removed:       make(map[string]bool),
		Common:        make(map[string]bool),
		Modified:      make(map[string]bool),
		AddedByType:   make(map[string][]stix.Record),
		RemovedByType: make(map[string][]stix.Record),
	}

	for id := range to.Index {
		if _, ok := from.Index[id]; ok {
			r.Common[id] = true
		} else {
			r.Added[id] = true
		}
	}
	for id := range from.Index {
		if _, ok := to.Index[id]; !ok {
			r.Removed[id] = true
		}
	}

	// The modified marker is compared as an opaque string. Two snapshots that
	// represent the same instant differently will count as modified; that is a
	// known limitation, not something to paper over with date parsing.
	for id := range r.Common {
		if from.Index[id].Modified != to.Index[id].Modified {
			r.Modified[id] = true
		}
	}

	// Group in source order so listings are deterministic.
	for _, obj := range to.Objects {
		if obj.ID != "" && r.Added[obj.ID] {
			r.AddedByType[obj.Type] = append(r.AddedByType[obj.Type], obj)
		}
	}
	for _, obj := range from.Objects {
		if obj.ID != "" && r.Removed[obj.ID] {
			r.RemovedByType[obj.Type] = append(r.RemovedByType[obj.Type], obj)
		}
	}

	log.Debugf("diff computed: added=%d removed=%d common=%d modified=%d",
		len(r.Added), len(r.Removed), len(r.Common), len(r.Modified))

	return r
}

// NetChange is the signed added-minus-removed object count.
func (r *Result) NetChange() int {
	return len(r.Added) - len(r.Removed)
}

// ModifiedPercent is the integer floor percentage of common objects that were
// modified. Defined as 0 when there are no common objects.
func (r *Result) ModifiedPercent() int {
	if len(r.Common) == 0 {
		return 0
	}
	return len(r.Modified) * 100 / len(r.Common)
}
