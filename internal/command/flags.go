// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/socctl/socctl/internal/config"
	"github.com/socctl/socctl/internal/endpoints"
)

// NewGlobalFlags returns the presentation flags shared by commands that
// render tabular output.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
		&cli.IntFlag{
			Name:   "padding",
			Hidden: true,
			Usage:  "column padding for text output",
			Value:  2,
		},
	}

	return
}

// NewServiceAreaFlag constructs the service-area flag for ips, sourcing its
// value from the environment and, when a config file exists, from the
// namespaced config key.
func NewServiceAreaFlag(ns string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "service-area",
		Aliases: []string{"s"},
		Usage:   "service area to collect subnets for",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SOCCTL_SERVICE_AREA"),
		),
		Value: "Exchange",
	}

	if path := config.Config.Source; path != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(ns, path, flag)
	}

	return
}

// NewEndpointsURLFlag constructs the url flag for ips.
func NewEndpointsURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "url",
		Usage: "endpoints API base URL",
		Value: endpoints.DefaultURL,
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config
// file sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
