// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/socctl/socctl/internal/config"
	"github.com/socctl/socctl/internal/meta"
	"github.com/socctl/socctl/internal/output"
	"github.com/socctl/socctl/internal/sigma"
)

// sigmaCommandAction is the action handler for the "sigma" subcommand. It
// syncs the local SigmaHQ clone to the latest tagged release, parses every
// rule file, and exports the inventory to an xlsx spreadsheet.
func sigmaCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "sigma"

	if err := sigma.CheckGit(); err != nil {
		return err
	}

	cloneDir := cmd.String("clone-dir")

	if cmd.Bool("skip-update") {
		log.Debug("skipping release check and repository sync")
	} else {
		latest, err := sigma.CheckLatestRelease(ctx, cmd.String("release-api"))
		if err != nil {
			return err
		}
		if latest == sigma.ReleaseSkipped {
			log.Warnf("release check skipped, using local clone as-is")
		} else if err := sigma.CloneOrUpdate(ctx, cmd.String("repo-url"), latest, cloneDir); err != nil {
			return err
		}
	}

	rulesDir := cmd.String("rules-dir")
	if rulesDir == "" {
		rulesDir = filepath.Join(cloneDir, "rules")
	}

	rules, err := sigma.ParseRules(rulesDir)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, rule.Row())
	}

	out := cmd.String("output")
	if out == "" {
		out = fmt.Sprintf("latest_sigma_rules_as_at_%s.xlsx", time.Now().Format("02_01_2006"))
	}

	if err := output.WriteXLSX(out, sigma.Headers, rows); err != nil {
		return err
	}

	abs, err := filepath.Abs(out)
	if err != nil {
		abs = out
	}
	fmt.Fprintf(os.Stdout, "Exported %d rules to %s\n", len(rules), abs)

	return nil
}

func sigmaCommandBuilder(meta meta.Meta) *cli.Command {
	cmd := &cli.Command{
		Name:  "sigma",
		Usage: "export the SigmaHQ rule inventory to xlsx",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "repo-url",
				Usage: "SigmaHQ repository to clone",
				Value: sigma.DefaultRepoURL,
			},
			&cli.StringFlag{
				Name:  "release-api",
				Usage: "GitHub latest-release API endpoint",
				Value: sigma.ReleaseAPI,
			},
			&cli.StringFlag{
				Name:    "clone-dir",
				Aliases: []string{"d"},
				Usage:   "local clone directory",
				Value:   "sigma",
			},
			&cli.StringFlag{
				Name:  "rules-dir",
				Usage: "rules directory to parse (defaults to <clone-dir>/rules)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output xlsx path (defaults to a dated filename)",
			},
			&cli.BoolFlag{
				Name:  "skip-update",
				Usage: "skip the release check and repository sync",
			},
		},
		Action: sigmaCommandAction,
	}

	return cmd
}
