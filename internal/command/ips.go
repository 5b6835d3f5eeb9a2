// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/socctl/socctl/internal/config"
	"github.com/socctl/socctl/internal/endpoints"
	"github.com/socctl/socctl/internal/meta"
	"github.com/socctl/socctl/internal/output"
)

// ipsCommandAction is the action handler for the "ips" subcommand. It fetches
// the worldwide Office 365 endpoints list and reports the subnets for one
// service area, either as a flat list or (--full) a table of endpoint sets.
func ipsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "ips"

	area := cmd.String("service-area")
	if err := FlagValidators(area, NotEmptyValidator); err != nil {
		return cli.Exit(fmt.Sprintf("invalid --service-area: %v", err), 1)
	}
	if err := FlagValidators(cmd.String("url"), URLValidator); err != nil {
		return cli.Exit(fmt.Sprintf("invalid --url: %v", err), 1)
	}

	sets, err := endpoints.Fetch(ctx, cmd.String("url"), area)
	if err != nil {
		return err
	}

	log.Debugf("matched %d endpoint sets for service area %s", len(sets), area)

	if cmd.Bool("full") {
		headers := []string{"ID", "SERVICE AREA", "CATEGORY", "REQUIRED", "SUBNETS"}
		rows := make([][]string, 0, len(sets))
		for _, set := range sets {
			rows = append(rows, []string{
				output.InterfaceToString(set.ID),
				set.ServiceArea,
				set.Category,
				strconv.FormatBool(set.Required),
				strconv.Itoa(len(set.Subnets)),
			})
		}
		output.TableWriter(rows, headers, cmd, os.Stdout)
		return nil
	}

	subnets := endpoints.Subnets(sets)
	fmt.Fprintf(os.Stdout, "Collected %s Subnets:\n", area)
	for _, subnet := range subnets {
		fmt.Fprintf(os.Stdout, "- %s\n", subnet)
	}

	return nil
}

func ipsCommandBuilder(meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		NewEndpointsURLFlag(),
		NewServiceAreaFlag("ips"),
		&cli.BoolFlag{
			Name:    "full",
			Aliases: []string{"f"},
			Usage:   "show the full endpoint sets as a table",
		},
	}
	flags = append(flags, NewGlobalFlags()...)

	cmd := &cli.Command{
		Name:  "ips",
		Usage: "collect Office 365 service-area subnets",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: ipsCommandAction,
	}

	return cmd
}
