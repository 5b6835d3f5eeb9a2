// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"regexp"
	"strings"
)

// replacer maps the non-ASCII punctuation and accented letters that show up
// in ATT&CK descriptions to ASCII equivalents. All outputs are plain ASCII,
// so applying the table twice is a no-op.
var replacer = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"‘", "'", // left single quotation mark
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"–", "-", // en dash
	"—", "--", // em dash
	"…", "...", // ellipsis
	"æ", "ae", // ae ligature
	"Æ", "AE", // AE ligature
	"ü", "u", // u with umlaut
	"Ü", "U", // U with umlaut
	"ö", "o", // o with umlaut
	"Ö", "O", // O with umlaut
	"ä", "a", // a with umlaut
	"Ä", "A", // A with umlaut
	"ß", "ss", // German sharp s
	"ñ", "n", // n with tilde
	"Ñ", "N", // N with tilde
)

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)

// CleanText replaces special Unicode characters with ASCII equivalents.
func CleanText(text string) string {
	if text == "" {
		return text
	}
	return replacer.Replace(text)
}

// CleanDescription normalizes a record description for a one-line listing:
// special characters are replaced, newlines become spaces, markdown links are
// optionally rewritten to their text, and whitespace runs collapse to single
// spaces.
func CleanDescription(text string, stripLinks bool) string {
	text = CleanText(text)
	text = strings.ReplaceAll(text, "\n", " ")
	if stripLinks {
		text = linkPattern.ReplaceAllString(text, "$1")
	}
	return strings.Join(strings.Fields(text), " ")
}
