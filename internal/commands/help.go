package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskmgr help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-16s %s\n", name, cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  taskmgr                                           List all tasks
  taskmgr list [common flags] [--format text|json|yaml]
  taskmgr add [common flags] --description <text> --priority <1-10> <title...>
  taskmgr rm [common flags] <id>
  taskmgr tui [common flags]                        Interactive view
  taskmgr serve [common flags] [--addr <addr>] [--dsn <postgres-url>] [--prefix <path>]
  taskmgr login [common flags] --token <token>
  taskmgr logout [common flags]
  taskmgr config [common flags] [init [--force]]
  taskmgr help
  taskmgr version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
