package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/service"
)

// Version is the application version. Set at build time with
// -ldflags "-X taskmgr/internal/commands.Version=...".
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd prints the version and, when the binary was built from a
// VCS checkout, the short revision.
type VersionCmd struct{}

func (c *VersionCmd) Name() string       { return "version" }
func (c *VersionCmd) Aliases() []string  { return nil }
func (c *VersionCmd) Synopsis() string   { return "Print version" }
func (c *VersionCmd) Usage() string      { return "taskmgr version" }
func (c *VersionCmd) NeedsBackend() bool { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if rev := revision(); rev != "" {
		fmt.Fprintf(out, "%s %s (%s)\n", config.AppName, Version, rev)
		return exitcode.Success
	}
	fmt.Fprintf(out, "%s %s\n", config.AppName, Version)
	return exitcode.Success
}

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
