package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/service"
	"taskmgr/internal/tui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd implements the interactive terminal view.
type TUICmd struct{}

func (c *TUICmd) Name() string       { return "tui" }
func (c *TUICmd) Aliases() []string  { return []string{"ui"} }
func (c *TUICmd) Synopsis() string   { return "Browse and edit tasks interactively" }
func (c *TUICmd) Usage() string      { return "taskmgr tui [common flags]" }
func (c *TUICmd) NeedsBackend() bool { return true }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Debug logs would draw over the screen.
	cfg.Debug = false

	session := openSession(ctx, cfg, svc, io.Discard)
	defer session.Close()

	if err := tui.Run(ctx, session, os.Stdin, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
