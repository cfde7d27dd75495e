package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"trade-netting/internal/config"
	"trade-netting/internal/server"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve blotter reconciliation over HTTP" }
func (*serveCmd) Usage() string {
	return `reconciler serve [-addr <host:port>]

  POST /reconcile   multipart upload (field "file") of an .xlsx or .csv blotter
  GET  /healthz     liveness
  GET  /metrics     prometheus metrics
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "listen address (defaults to app.listen_addr)")
}

// listenAddr prefers the -addr flag over app.listen_addr.
func (c *serveCmd) listenAddr(cfg *config.Config) string {
	if c.addr != "" {
		return c.addr
	}
	return cfg.App.ListenAddr
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	addr := c.listenAddr(a.cfg)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := server.NewReconciliationHandler(a.uc, a.cfg.App.MaxUploadMB<<20, a.log)
	if err := server.ListenAndServe(ctx, addr, server.NewRouter(h), a.log); err != nil {
		a.log.Error().Err(err).Msg("server failed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
