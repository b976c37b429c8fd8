package main

import (
	"fmt"

	field "github.com/0xalexb/hjarta-field"
	"github.com/0xalexb/hjarta-field/config"
	filefetcher "github.com/0xalexb/hjarta-field/config/fetcher/file"
	"github.com/0xalexb/hjarta-field/listener"

	"github.com/scott-cotton/cli"
)

const listenerName = "http"

// ServeConfig holds the serve options.
type ServeConfig struct {
	*MainConfig

	Serve *cli.Command

	Config    string `cli:"name=config aliases=c desc='config file holding the listener section'"`
	Section   string `cli:"name=section desc='field path of the listener section' default=server"`
	Addr      string `cli:"name=addr desc='listen address, overrides the config file'"`
	LogLevel  string `cli:"name=log-level desc='debug, info, warn or error' default=info"`
	LogFormat string `cli:"name=log-format desc='json or text' default=json"`
}

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		cfg.Serve.Usage(cc, err)

		return cli.ExitCodeErr(1)
	}

	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}

	listenerCfg, err := loadListenerConfig(cfg.Config, cfg.Section, cfg.Addr)
	if err != nil {
		printError(cfg.errOut, err.Error())

		return cli.ExitCodeErr(1)
	}

	app := field.NewApp(
		field.WithLogLevel(cfg.LogLevel),
		field.WithLogFormat(cfg.LogFormat),
		field.WithExtractAPI(listenerName, listener.WithConfig(listenerCfg)),
	)

	err = app.Err()
	if err != nil {
		printError(cfg.errOut, err.Error())

		return cli.ExitCodeErr(1)
	}

	app.Run()

	return nil
}

// loadListenerConfig reads the listener section of configFile when one is
// given and applies the address override.
func loadListenerConfig(configFile, section, addr string) (listener.Config, error) {
	var loaded listener.Config

	if configFile != "" {
		cfg, err := config.Provider(&listener.Config{}, section)(config.DefaultRegistry(), filefetcher.NewFetcher(configFile))
		if err != nil {
			return listener.Config{}, fmt.Errorf("loading %q: %w", configFile, err)
		}

		loaded = *cfg
	}

	if addr != "" {
		loaded.Address = addr
	}

	loaded.SetDefaults()

	err := loaded.Validate()
	if err != nil {
		return listener.Config{}, fmt.Errorf("listener config: %w", err)
	}

	return loaded, nil
}
