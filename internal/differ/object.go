// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// DiffObject renders a structural JSON diff of a single object between two
// bundle files. Returns a human-readable diff string, or a short message when
// the object is identical or present on only one side.
func DiffObject(fromPath, toPath, id string, coloring bool) (string, error) {
	left, err := lookupObject(fromPath, id)
	if err != nil {
		return "", err
	}
	right, err := lookupObject(toPath, id)
	if err != nil {
		return "", err
	}

	switch {
	case !left.Exists() && !right.Exists():
		return "", fmt.Errorf("object %s not found in either bundle", id)
	case !left.Exists():
		return fmt.Sprintf("Object %s only exists in %s.", id, toPath), nil
	case !right.Exists():
		return fmt.Sprintf("Object %s only exists in %s.", id, fromPath), nil
	}

	differ := gojsondiff.New()
	delta, err := differ.Compare([]byte(left.Raw), []byte(right.Raw))
	if err != nil {
		return "", fmt.Errorf("failed to compare objects: %w", err)
	}

	if !delta.Modified() {
		return "The objects are identical.", nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal([]byte(left.Raw), &jdoc); err != nil {
		return "", fmt.Errorf("failed to unmarshal object: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	}

	formatter := formatter.NewAsciiFormatter(jdoc, config)
	diffString, err := formatter.Format(delta)
	if err != nil {
		return "", err
	}

	return diffString, nil
}

// lookupObject finds the raw JSON of one object by id within a bundle file.
func lookupObject(path, id string) (gjson.Result, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read bundle %s: %w", path, err)
	}
	return gjson.GetBytes(doc, fmt.Sprintf(`objects.#(id=="%s")`, id)), nil
}
