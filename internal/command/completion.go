// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/socctl/socctl/internal/meta"
)

const bashCompletionScript = `# bash completion for socctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_socctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "attack ips sigma completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}

    case "$cmd" in
        attack)
            local opts="--color -c --dir -d --object -o --quiet -q"
            ;;
        ips)
            local opts="--color -c --full -f --service-area -s --titles -t --url"
            ;;
        sigma)
            local opts="--clone-dir -d --output -o --release-api --repo-url --rules-dir --skip-update"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # attack takes bundle paths, sigma dirs take directories
    if [[ "$cmd" == "attack" ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -o dirnames -- "$cur") )
    return 0
}

complete -F _socctl socctl
`

const zshCompletionScript = `#compdef socctl

_socctl() {
  local -a cmds
  cmds=(
    'attack:summarize changes between two ATT&CK STIX bundles'
    'ips:collect Office 365 service-area subnets'
    'sigma:export the SigmaHQ rule inventory to xlsx'
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'socctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    attack)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-d --dir)'{-d,--dir}'[directory to write the summary to]:dir:_directories' \
        '(-o --object)'{-o,--object}'[diff a single STIX object id]:id' \
        '(-q --quiet)'{-q,--quiet}'[do not mirror the summary to the console]' \
        '1:from bundle:_files -g "*.json"' \
        '2:to bundle:_files -g "*.json"'
      ;;
    ips)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-f --full)'{-f,--full}'[show the full endpoint sets as a table]' \
        '(-s --service-area)'{-s,--service-area}'[service area]:area' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '--url[endpoints API base URL]:url'
      ;;
    sigma)
      _arguments -C \
        '(-d --clone-dir)'{-d,--clone-dir}'[local clone directory]:dir:_directories' \
        '(-o --output)'{-o,--output}'[output xlsx path]:path:_files' \
        '--release-api[GitHub latest-release API endpoint]:url' \
        '--repo-url[SigmaHQ repository to clone]:url' \
        '--rules-dir[rules directory to parse]:dir:_directories' \
        '--skip-update[skip the release check and repository sync]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _socctl socctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: socctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "socctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
