package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command. It stores a bearer token that
// the REST client sends with every request.
type LoginCmd struct {
	token string
}

// SetToken sets the token (for testing).
func (c *LoginCmd) SetToken(token string) {
	c.token = token
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Store an API token" }
func (c *LoginCmd) Usage() string      { return "taskmgr login [common flags] --token <token>" }
func (c *LoginCmd) NeedsBackend() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	token := strings.TrimSpace(c.token)
	if token == "" {
		fmt.Fprintln(errOut, "error: token required (use --token)")
		return exitcode.UserError
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if err := cfg.SaveToken(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.ConfigError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
