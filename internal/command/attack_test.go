// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/socctl/socctl/internal/meta"
)

const fromBundle = `{
  "type": "bundle",
  "id": "bundle--1",
  "objects": [
    {"id": "malware--0001", "type": "malware", "name": "Agent Tesla",
     "description": "A spyware family.", "modified": "2024-01-01T00:00:00.000Z"},
    {"id": "tool--0002", "type": "tool", "name": "PsExec",
     "description": "Remote execution tool.", "modified": "2024-01-01T00:00:00.000Z"}
  ]
}`

const toBundle = `{
  "type": "bundle",
  "id": "bundle--2",
  "objects": [
    {"id": "malware--0001", "type": "malware", "name": "Agent Tesla",
     "description": "A spyware family.", "modified": "2024-06-01T00:00:00.000Z"},
    {"id": "malware--0003", "type": "malware", "name": "NovaLoader",
     "description": "A loader family.", "modified": "2024-06-01T00:00:00.000Z"}
  ]
}`

func testMeta() meta.Meta {
	return meta.Meta{Args: []string{"socctl", "attack"}}
}

// testCommand neuters the default exit handler so cli.Exit errors come back
// to the test instead of terminating the process.
func testCommand(cmd *cli.Command) *cli.Command {
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	return cmd
}

func writeBundles(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	from := filepath.Join(dir, "enterprise-attack-16.1.json")
	to := filepath.Join(dir, "enterprise-attack-17.0.json")
	require.NoError(t, os.WriteFile(from, []byte(fromBundle), 0o644))
	require.NoError(t, os.WriteFile(to, []byte(toBundle), 0o644))
	return dir, from, to
}

func TestAttackRequiresTwoArgs(t *testing.T) {
	cmd := testCommand(attackCommandBuilder(testMeta()))

	err := cmd.Run(context.Background(), []string{"attack", "only-one.json"})
	require.Error(t, err)

	var coder cli.ExitCoder
	require.ErrorAs(t, err, &coder)
	assert.Equal(t, 1, coder.ExitCode())
}

func TestAttackMissingFile(t *testing.T) {
	cmd := testCommand(attackCommandBuilder(testMeta()))

	err := cmd.Run(context.Background(), []string{"attack", "nope-1.0.json", "nope-2.0.json"})
	require.Error(t, err)

	var coder cli.ExitCoder
	require.ErrorAs(t, err, &coder)
	assert.Equal(t, 3, coder.ExitCode())
	assert.Contains(t, err.Error(), "nope-1.0.json")
}

func TestAttackWritesSummary(t *testing.T) {
	dir, from, to := writeBundles(t)

	cmd := testCommand(attackCommandBuilder(testMeta()))
	err := cmd.Run(context.Background(), []string{"attack", "--quiet", "--dir", dir, from, to})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "mitre_attack_changes_16.1_to_17.0.md"))
	require.NoError(t, err)

	assert.Contains(t, string(content), "# MITRE ATT&CK Version 16.1 to 17.0 Changes Summary")
	assert.Contains(t, string(content), "NovaLoader")
}

func TestAttackObjectDiff(t *testing.T) {
	_, from, to := writeBundles(t)

	cmd := testCommand(attackCommandBuilder(testMeta()))
	err := cmd.Run(context.Background(), []string{"attack", "--object", "malware--0001", from, to})
	require.NoError(t, err)
}
