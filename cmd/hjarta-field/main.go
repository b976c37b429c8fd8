// Command hjarta-field reads one value out of a JSON, JSON5, JSONC, TOML or
// YAML file.
//
//	hjarta-field get -file package.json -field scripts.build
//	hjarta-field action
//	hjarta-field serve -config hjarta.toml
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/scott-cotton/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.MainContext(ctx, MainCommand(ctx))
}
