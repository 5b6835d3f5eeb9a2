// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sigma

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/socctl/socctl/internal/log"
)

// Rule is the tabular projection of one Sigma rule file.
type Rule struct {
	Title             string
	ID                string
	Status            string
	Description       string
	Author            string
	Date              string
	Modified          string
	LogsourceCategory string
	LogsourceProduct  string
	MitreAttack       string
	Level             string
	FilePath          string
}

// Headers is the spreadsheet column order for exported rules.
var Headers = []string{
	"title", "id", "status", "description", "author", "date", "modified",
	"logsource_category", "logsource_product", "mitre_attack", "level",
	"file_path",
}

// Row returns the rule's values in Headers order.
func (r Rule) Row() []interface{} {
	return []interface{}{
		r.Title, r.ID, r.Status, r.Description, r.Author, r.Date, r.Modified,
		r.LogsourceCategory, r.LogsourceProduct, r.MitreAttack, r.Level,
		r.FilePath,
	}
}

// ParseRules walks rulesDir recursively for *.yml files and extracts one Rule
// per file. Files that fail to parse are logged and skipped; a missing rules
// directory is an error.
func ParseRules(rulesDir string) ([]Rule, error) {
	if _, err := os.Stat(rulesDir); err != nil {
		return nil, fmt.Errorf("rules directory not found: %s", rulesDir)
	}

	var rules []Rule
	err := filepath.WalkDir(rulesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yml") {
			return nil
		}

		log.Debugf("parsing rule: path=%s", path)

		doc, err := os.ReadFile(path)
		if err != nil {
			log.Warnf("failed to read %s: %v", path, err)
			return nil
		}

		var data map[string]interface{}
		if err := yaml.Unmarshal(doc, &data); err != nil {
			log.Warnf("failed to parse %s: %v", path, err)
			return nil
		}

		rules = append(rules, extractFields(data, path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk rules directory: %w", err)
	}

	return rules, nil
}

// extractFields pulls the reported attributes out of a parsed rule document.
// Missing fields become empty strings.
func extractFields(data map[string]interface{}, path string) Rule {
	rule := Rule{
		Title:       stringField(data, "title"),
		ID:          stringField(data, "id"),
		Status:      stringField(data, "status"),
		Description: stringField(data, "description"),
		Author:      stringField(data, "author"),
		Date:        stringField(data, "date"),
		Modified:    stringField(data, "modified"),
		Level:       stringField(data, "level"),
		FilePath:    path,
	}

	if logsource, ok := data["logsource"].(map[string]interface{}); ok {
		rule.LogsourceCategory = stringField(logsource, "category")
		rule.LogsourceProduct = stringField(logsource, "product")
	}

	if tags, ok := data["tags"].([]interface{}); ok {
		var joined []string
		for _, tag := range tags {
			joined = append(joined, fmt.Sprintf("%v", tag))
		}
		rule.MitreAttack = strings.Join(joined, ", ")
	}

	return rule
}

// stringField renders a top-level field as a string. YAML may decode dates
// and versions as non-strings, so anything present is formatted with %v.
func stringField(data map[string]interface{}, key string) string {
	val, ok := data[key]
	if !ok || val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return v
	case time.Time:
		// Unquoted dates decode as timestamps.
		return v.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}
