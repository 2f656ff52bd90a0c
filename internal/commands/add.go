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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	priority    int
}

// SetTaskFields sets the description and priority (for testing).
func (c *AddCmd) SetTaskFields(description string, priority int) {
	c.description = description
	c.priority = priority
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskmgr add --description <text> --priority <1-10> <title...>"
}
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.IntVar(&c.priority, "priority", 0, "")
	fs.IntVar(&c.priority, "p", 0, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")

	session := openSession(ctx, cfg, svc, errOut)
	defer session.Close()

	// Let the initial fetch settle so its outcome cannot overwrite ours.
	session.Wait()
	session.Add(title, c.description, c.priority)
	session.Wait()

	if code := reportState(session.Snapshot(), errOut); code != exitcode.Success {
		return code
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
