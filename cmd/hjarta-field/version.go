package main

import (
	"fmt"

	field "github.com/0xalexb/hjarta-field"

	"github.com/scott-cotton/cli"
)

// VersionConfig holds the version command.
type VersionConfig struct {
	*MainConfig

	Version *cli.Command
}

func version(cfg *VersionConfig, cc *cli.Context, args []string) error {
	_, err := cfg.Version.Parse(cc, args)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cc.Out, field.VersionString())

	return err //nolint:wrapcheck
}
