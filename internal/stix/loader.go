// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stix

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/apex/log"
)

// Record is a single object from a STIX bundle. Only the fields the differ
// and the report consume are decoded; everything else in the object is
// ignored.
type Record struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Modified    string `json:"modified"`
}

// Snapshot is one versioned bundle loaded into memory. Objects preserves the
// bundle's source order and includes records without an id; Index maps id to
// record and excludes them. Immutable once loaded.
type Snapshot struct {
	Version    string
	Objects    []Record
	Index      map[string]Record
	TypeCounts map[string]int
}

var versionPattern = regexp.MustCompile(`\d+\.\d+`)

// ExtractVersion pulls the first dotted pair of digits out of a bundle name,
// e.g. "enterprise-attack-16.1.json" yields "16.1". Returns "unknown" when no
// such pattern exists.
func ExtractVersion(name string) string {
	if m := versionPattern.FindString(name); m != "" {
		return m
	}
	return "unknown"
}

// Load reads and parses a STIX bundle file into a Snapshot. An unreadable or
// unparsable file is a fatal error identifying the file; no partial Snapshot
// is ever returned.
func Load(path string) (*Snapshot, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", path, err)
	}

	var bundle struct {
		Objects []Record `json:"objects"`
	}
	if err := json.Unmarshal(doc, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse bundle %s: %w", path, err)
	}

	s := &Snapshot{
		Version:    ExtractVersion(path),
		Objects:    bundle.Objects,
		Index:      make(map[string]Record, len(bundle.Objects)),
		TypeCounts: make(map[string]int),
	}

	for _, obj := range bundle.Objects {
		s.TypeCounts[obj.Type]++
		// Records without an id are counted but not indexed.
		if obj.ID != "" {
			s.Index[obj.ID] = obj
		}
	}

	log.Debugf("loaded bundle: path=%s version=%s objects=%d indexed=%d",
		path, s.Version, len(s.Objects), len(s.Index))

	return s, nil
}

// Total returns the raw object count, including records without an id.
func (s *Snapshot) Total() int {
	return len(s.Objects)
}
