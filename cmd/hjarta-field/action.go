package main

import (
	"fmt"

	"github.com/0xalexb/hjarta-field/action"
	"github.com/0xalexb/hjarta-field/extract"

	"github.com/scott-cotton/cli"
)

// ActionConfig holds the action command.
type ActionConfig struct {
	*MainConfig

	Action *cli.Command
}

func runAction(cfg *ActionConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Action.Parse(cc, args)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return fmt.Errorf("%w: action takes its inputs from the environment", cli.ErrUsage)
	}

	code := action.NewRunner(extract.New(), action.NewEnv(), cc.Out).Run(cfg.ctx)
	if code != 0 {
		return cli.ExitCodeErr(code)
	}

	return nil
}
