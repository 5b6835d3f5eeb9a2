// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/socctl/socctl/internal/config"
	"github.com/socctl/socctl/internal/differ"
	"github.com/socctl/socctl/internal/meta"
	"github.com/socctl/socctl/internal/report"
	"github.com/socctl/socctl/internal/stix"
	"github.com/socctl/socctl/internal/util"
)

// attackCommandAction is the action handler for the "attack" subcommand. It
// loads two ATT&CK STIX bundles, diffs them, and writes a markdown summary
// of the changes. With --object it instead prints a field-level diff for a
// single STIX object.
func attackCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "attack"

	args := cmd.Args().Slice()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: socctl attack <from_version.json> <to_version.json>")
		fmt.Fprintln(os.Stderr, "Example: socctl attack enterprise-attack-16.1.json enterprise-attack-17.0.json")
		return cli.Exit("attack requires exactly two bundle paths", 1)
	}

	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			return cli.Exit(fmt.Sprintf("Error: file '%s' not found", path), 3)
		}
	}

	// Single-object mode bypasses the summary entirely.
	if id := cmd.String("object"); id != "" {
		detail, err := differ.DiffObject(args[0], args[1], id, cmd.Bool("color"))
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, detail)
		return nil
	}

	from, err := stix.Load(args[0])
	if err != nil {
		return err
	}
	to, err := stix.Load(args[1])
	if err != nil {
		return err
	}

	log.Debugf("loaded %d objects from %s, %d objects from %s",
		from.Total(), args[0], to.Total(), args[1])

	result := differ.Diff(from, to)

	rpt := report.Build(from, to, result)

	dir, err := util.ParseOutputDir(cmd.String("dir"))
	if err != nil {
		return err
	}

	var console io.Writer = os.Stdout
	if cmd.Bool("quiet") {
		console = nil
	}

	path, err := rpt.Write(dir, console)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Markdown summary written to: %s\n", path)

	return nil
}

func attackCommandBuilder(meta meta.Meta) *cli.Command {
	cmd := &cli.Command{
		Name:      "attack",
		Usage:     "summarize changes between two MITRE ATT&CK STIX bundles",
		ArgsUsage: "<from_version.json> <to_version.json>",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory to write the markdown summary to",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "object",
				Aliases: []string{"o"},
				Usage:   "show a field-level diff for a single STIX object id",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "do not mirror the summary to the console",
			},
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored text output",
			},
		},
		Action: attackCommandAction,
	}

	return cmd
}
