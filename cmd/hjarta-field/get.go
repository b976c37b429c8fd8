package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/0xalexb/hjarta-field/action"
	"github.com/0xalexb/hjarta-field/extract"
	"github.com/0xalexb/hjarta-field/logging"

	"github.com/scott-cotton/cli"
)

// GetConfig holds the get options.
type GetConfig struct {
	*MainConfig

	Get *cli.Command

	File    string `cli:"name=file aliases=f desc='file to read'"`
	Field   string `cli:"name=field aliases=p desc='field path, e.g. users.0.name or items[1]'"`
	JSON    bool   `cli:"name=json aliases=j desc='print strings as JSON too'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='print trace lines to stderr'"`
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)

		return cli.ExitCodeErr(1)
	}

	if cfg.File == "" && len(args) > 0 {
		cfg.File, args = args[0], args[1:]
	}

	if cfg.Field == "" && len(args) > 0 {
		cfg.Field, args = args[0], args[1:]
	}

	if cfg.File == "" {
		return fmt.Errorf("%w: get requires -file", cli.ErrUsage)
	}

	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}

	request := getRequest{file: cfg.File, field: cfg.Field, json: cfg.JSON, verbose: cfg.Verbose}
	if code := runGet(cfg.ctx, extract.New(), request, cc.Out, cfg.errOut); code != 0 {
		return cli.ExitCodeErr(code)
	}

	return nil
}

type getRequest struct {
	file    string
	field   string
	json    bool
	verbose bool
}

// runGet prints the value to out, or the failure to errOut, and returns the exit code.
func runGet(ctx context.Context, extractor *extract.Extractor, req getRequest, out, errOut io.Writer) int {
	var trace extract.Trace

	if req.verbose {
		logger := logging.NewLogger(logging.LoggerConfig{Level: "debug", Format: logging.FormatText}, errOut)
		trace = logging.TraceFunc(logger, slog.String("file", req.file))
	}

	result := extractor.Execute(ctx, req.file, req.field, trace)
	if result.Failed() {
		printError(errOut, result.Error)

		return 1
	}

	if result.Output.IsAbsent() {
		return 0
	}

	text := action.FormatResult(result.Output)
	if req.json {
		text = action.FormatResultJSON(result.Output)
	}

	_, _ = fmt.Fprintln(out, text)

	return 0
}
