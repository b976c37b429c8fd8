package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

// MainConfig is shared by every subcommand.
type MainConfig struct {
	Main *cli.Command

	ctx    context.Context //nolint:containedctx // the cli callbacks carry no context of their own
	errOut io.Writer
}

// MainCommand builds the command tree. ctx is cancelled on SIGINT and SIGTERM.
func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx, errOut: os.Stderr}

	return cli.NewCommandAt(&cfg.Main, "hjarta-field").
		WithSynopsis("hjarta-field command [opts]").
		WithDescription("hjarta-field extracts a value from a structured data file by field path.").
		WithRun(func(cc *cli.Context, args []string) error {
			return dispatch(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			ActionCommand(cfg),
			ServeCommand(cfg),
			VersionCommand(cfg))
}

func dispatch(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}

	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}

	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}

	return err
}

// GetCommand prints one value.
func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}

	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get -file <path> -field <field path> [-json] [-v]").
		WithDescription("print the value at a field path; strings are printed raw unless -json is given").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

// ActionCommand runs as a GitHub Actions step.
func ActionCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ActionConfig{MainConfig: mainCfg}

	return cli.NewCommandAt(&cfg.Action, "action").
		WithSynopsis("action").
		WithDescription("read INPUT_FILE and INPUT_FIELD, publish the result and result_json step outputs").
		WithRun(func(cc *cli.Context, args []string) error {
			return runAction(cfg, cc, args)
		})
}

// ServeCommand runs the HTTP API.
func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}

	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithAliases("s").
		WithSynopsis("serve [-config <file>] [-section <field path>] [-addr <host:port>] [-log-level <level>]").
		WithDescription("serve POST /v1/extract over HTTP").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}

// VersionCommand prints build information.
func VersionCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &VersionConfig{MainConfig: mainCfg}

	return cli.NewCommandAt(&cfg.Version, "version").
		WithSynopsis("version").
		WithDescription("print version information").
		WithRun(func(cc *cli.Context, args []string) error {
			return version(cfg, cc, args)
		})
}
