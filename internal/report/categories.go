// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

// Category describes one reportable STIX object type: its overview row label,
// its "new objects" section title, the default description used when a record
// has none, and whether markdown links are stripped from descriptions.
// Technique descriptions keep their links so sub-technique references stay
// readable.
type Category struct {
	Type               string
	RowLabel           string
	Section            string
	DefaultDescription string
	StripLinks         bool
}

// Categories is the closed set of reported types, in report order. The
// overview table and the per-type sections iterate this slice, never raw type
// strings.
var Categories = []Category{
	{
		Type:               "attack-pattern",
		RowLabel:           "Attack Patterns",
		Section:            "New Attack Techniques",
		DefaultDescription: "Technique for adversary operations.",
	},
	{
		Type:               "intrusion-set",
		RowLabel:           "Intrusion Sets",
		Section:            "New Threat Actors",
		DefaultDescription: "Advanced Persistent Threat group.",
		StripLinks:         true,
	},
	{
		Type:               "malware",
		RowLabel:           "Malware",
		Section:            "New Malware Families",
		DefaultDescription: "Malware family.",
		StripLinks:         true,
	},
	{
		Type:               "tool",
		RowLabel:           "Tools",
		Section:            "New Tools",
		DefaultDescription: "Tool for adversary operations.",
		StripLinks:         true,
	},
	{
		Type:               "campaign",
		RowLabel:           "Campaigns",
		Section:            "New Campaigns",
		DefaultDescription: "Campaign.",
		StripLinks:         true,
	},
}
