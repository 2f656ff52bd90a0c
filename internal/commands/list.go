package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/output"
	"taskmgr/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskmgr` (no args) and `taskmgr list`.
type ListCmd struct {
	format string
}

// SetFormat sets the output format (for testing).
func (c *ListCmd) SetFormat(format string) {
	c.format = format
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskmgr list [--format text|json|yaml]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", output.FormatText, "")
	fs.StringVar(&c.format, "f", output.FormatText, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.format == "" {
		c.format = output.FormatText
	}
	if !output.ValidFormat(c.format) {
		fmt.Fprintf(errOut, "error: unknown format: %s\n", c.format)
		return exitcode.UserError
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	session := openSession(ctx, cfg, svc, errOut)
	defer session.Close()
	session.Wait()

	s := session.Snapshot()
	if code := reportState(s, errOut); code != exitcode.Success {
		return code
	}

	if len(s.Tasks) == 0 && c.format == output.FormatText && cfg.Quiet {
		return exitcode.Success
	}
	if err := output.WriteTasks(out, c.format, s.Tasks); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
