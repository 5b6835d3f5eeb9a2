// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/socctl/socctl/internal/differ"
	"github.com/socctl/socctl/internal/stix"
)

// Report is the rendered change summary: an ordered sequence of markdown
// lines plus the version labels the output filename is derived from. It is
// built once and carries no I/O of its own until Write.
type Report struct {
	Version1 string
	Version2 string
	Lines    []string
}

// Build assembles the full report from two snapshots and their diff. Sections
// appear in fixed order: version overview, overall statistics, per-category
// new-object listings, technical summary, migration timeline.
func Build(from, to *stix.Snapshot, d *differ.Result) *Report {
	r := &Report{Version1: from.Version, Version2: to.Version}

	r.Lines = append(r.Lines, fmt.Sprintf("# MITRE ATT&CK Version %s to %s Changes Summary\n", r.Version1, r.Version2))
	r.Lines = append(r.Lines, overview(from, to)...)
	r.Lines = append(r.Lines, statistics(d)...)
	for _, cat := range Categories {
		r.Lines = append(r.Lines, categorySection(cat, d.AddedByType[cat.Type])...)
	}
	r.Lines = append(r.Lines, technical(d)...)
	r.Lines = append(r.Lines, timeline(r.Version1, r.Version2, d)...)

	return r
}

// Render produces the final report text. Both sinks receive exactly this
// string.
func (r *Report) Render() string {
	return strings.Join(r.Lines, "\n") + "\n"
}

// Filename is the deterministic report file name, embedding both version
// labels.
func (r *Report) Filename() string {
	return fmt.Sprintf("mitre_attack_changes_%s_to_%s.md", r.Version1, r.Version2)
}

// Write renders the report once and writes identical bytes to a file under
// dir and to console. A nil console suppresses the mirror. Returns the path
// written.
func (r *Report) Write(dir string, console io.Writer) (string, error) {
	content := r.Render()

	path := filepath.Join(dir, r.Filename())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	log.Debugf("report written: path=%s bytes=%d", path, len(content))

	if console != nil {
		if _, err := io.WriteString(console, content); err != nil {
			return "", fmt.Errorf("failed to write report to console: %w", err)
		}
	}

	return path, nil
}

func overview(from, to *stix.Snapshot) []string {
	lines := []string{
		"## Version Overview\n",
		fmt.Sprintf("| Component | Version %s | Version %s | Change |", from.Version, to.Version),
		"|-----------|--------------|--------------|--------|",
		"| **Release Date** | - | - | - |",
		fmt.Sprintf("| **Total Objects** | %s | %s | %s |",
			comma(from.Total()), comma(to.Total()), signedComma(to.Total()-from.Total())),
	}

	for _, cat := range Categories {
		f := from.TypeCounts[cat.Type]
		t := to.TypeCounts[cat.Type]
		lines = append(lines, fmt.Sprintf("| **%s** | %d | %d | %+d |", cat.RowLabel, f, t, t-f))
	}

	return append(lines, "")
}

func statistics(d *differ.Result) []string {
	return []string{
		"## Major Changes Summary\n",
		"### Overall Statistics\n",
		fmt.Sprintf("- **New Objects Added**: %s", comma(len(d.Added))),
		fmt.Sprintf("- **Objects Removed**: %s (primarily relationships)", comma(len(d.Removed))),
		fmt.Sprintf("- **Modified Objects**: %s", comma(len(d.Modified))),
		fmt.Sprintf("- **Net Change**: %+d objects\n", d.NetChange()),
	}
}

func categorySection(cat Category, added []stix.Record) []string {
	if len(added) == 0 {
		return nil
	}

	lines := []string{fmt.Sprintf("### %s (%d total)\n", cat.Section, len(added))}
	for i, obj := range added {
		name := CleanText(obj.Name)
		if name == "" {
			name = "N/A"
		}

		// An empty description and an absent one both fall back to the
		// category default.
		desc := cat.DefaultDescription
		if obj.Description != "" {
			desc = CleanDescription(obj.Description, cat.StripLinks)
		}

		lines = append(lines, fmt.Sprintf("%d. **%s** - %s", i+1, name, desc))
	}

	return append(lines, "")
}

func technical(d *differ.Result) []string {
	return []string{
		"## Technical Changes Summary\n",
		fmt.Sprintf("- **Relationships Removed**: %s", comma(len(d.RemovedByType["relationship"]))),
		fmt.Sprintf("- **Relationships Added**: %s", comma(len(d.AddedByType["relationship"]))),
		fmt.Sprintf("- **Objects Modified**: %s (%d%% of common objects)\n",
			comma(len(d.Modified)), d.ModifiedPercent()),
	}
}

func timeline(v1, v2 string, d *differ.Result) []string {
	return []string{
		"## Version Migration Timeline\n",
		fmt.Sprintf("- **Version %s to %s**", v1, v2),
		fmt.Sprintf("- **Total Objects Changed**: %s", comma(len(d.Added)+len(d.Removed))),
		fmt.Sprintf("- **Modification Rate**: %d%% of common objects updated", d.ModifiedPercent()),
	}
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

func signedComma(n int) string {
	if n >= 0 {
		return "+" + humanize.Comma(int64(n))
	}
	return humanize.Comma(int64(n))
}
