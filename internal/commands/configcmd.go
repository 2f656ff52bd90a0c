package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/service"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd prints the effective settings or writes a default config file.
type ConfigCmd struct {
	force bool
}

func (c *ConfigCmd) Name() string       { return "config" }
func (c *ConfigCmd) Aliases() []string  { return nil }
func (c *ConfigCmd) Synopsis() string   { return "Show or initialise configuration" }
func (c *ConfigCmd) Usage() string      { return "taskmgr config [init [--force]]" }
func (c *ConfigCmd) NeedsBackend() bool { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(out, "config:   %s\n", cfg.ConfigPath())
		fmt.Fprintf(out, "base_url: %s\n", cfg.BaseURL)
		fmt.Fprintf(out, "timeout:  %s\n", cfg.Timeout)
		fmt.Fprintf(out, "token:    %s\n", tokenSource(cfg))
		return exitcode.Success
	}

	if args[0] != "init" || len(args) > 1 {
		fmt.Fprintf(errOut, "error: unknown config action: %s\n", args[0])
		return exitcode.UserError
	}

	if cfg.HasConfigFile() && !c.force {
		fmt.Fprintf(errOut, "error: %s already exists (use --force to overwrite)\n", cfg.ConfigPath())
		return exitcode.UserError
	}
	if err := cfg.WriteDefault(); err != nil {
		fmt.Fprintf(errOut, "error: failed to write config: %v\n", err)
		return exitcode.ConfigError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "wrote %s\n", cfg.ConfigPath())
	}
	return exitcode.Success
}

func tokenSource(cfg *config.Config) string {
	switch {
	case cfg.Token != "":
		return "config"
	case cfg.HasToken():
		return config.TokenFile
	default:
		return "none"
	}
}
