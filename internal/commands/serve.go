package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskmgr/internal/config"
	"taskmgr/internal/exitcode"
	"taskmgr/internal/server"
	"taskmgr/internal/service"
	"taskmgr/internal/storage"
	"taskmgr/internal/storage/memdb"
	"taskmgr/internal/storage/postgres"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd runs the reference task API.
type ServeCmd struct {
	addr   string
	dsn    string
	prefix string
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Run the task API server" }
func (c *ServeCmd) Usage() string      { return "taskmgr serve [--addr <addr>] [--dsn <postgres-url>] [--prefix <path>]" }
func (c *ServeCmd) NeedsBackend() bool { return false }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
	fs.StringVar(&c.dsn, "dsn", "", "")
	fs.StringVar(&c.prefix, "prefix", server.DefaultPrefix, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	addr := c.addr
	if addr == "" {
		addr = cfg.ServerAddr
	}
	dsn := c.dsn
	if dsn == "" {
		dsn = cfg.ServerDSN
	}

	log := cfg.Logger(errOut)

	var store storage.Interface
	if dsn != "" {
		pg, err := postgres.New(ctx, dsn)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
		store = pg
		log.Info("using postgres storage")
	} else {
		store = memdb.New()
		log.Info("using in-memory storage")
	}
	defer store.Close()

	if err := server.New(store, log).ListenAndServe(ctx, addr, c.prefix); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
