package field_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	field "github.com/0xalexb/hjarta-field"
	"github.com/0xalexb/hjarta-field/config"
	"github.com/0xalexb/hjarta-field/extract"
	"github.com/0xalexb/hjarta-field/listener"
	"github.com/0xalexb/hjarta-field/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func quiet() field.Option {
	return field.WithLogOutput(io.Discard)
}

func freeAddress(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func postExtract(t *testing.T, addr, body string) (int, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://"+addr+"/v1/extract",
		strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data)
}

func TestNewApp_ProvidesExtractor(t *testing.T) {
	t.Parallel()

	var (
		extractor *extract.Extractor
		registry  *config.Registry
	)

	app := field.NewApp(quiet(), field.WithModules(fx.Invoke(func(e *extract.Extractor, r *config.Registry) {
		extractor = e
		registry = r
	})))

	require.NoError(t, app.Err())
	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	require.NotNil(t, extractor)
	assert.Equal(t, []string{"json", "json5", "jsonc", "toml", "yaml"}, registry.Names())
}

func TestNewApp_LoggerConfigIsSupplied(t *testing.T) {
	t.Parallel()

	var (
		captured logging.LoggerConfig
		logger   *slog.Logger
	)

	app := field.NewApp(
		quiet(),
		field.WithLogLevel("warn"),
		field.WithLogFormat("text"),
		field.WithModules(fx.Invoke(func(cfg logging.LoggerConfig, l *slog.Logger) {
			captured = cfg
			logger = l
		})),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	assert.Equal(t, logging.LoggerConfig{Level: "warn", Format: "text"}, captured)
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewApp_LogOutput(t *testing.T) { //nolint:paralleltest // NewApp replaces the global slog default
	var buf bytes.Buffer

	app := field.NewApp(field.WithLogOutput(&buf), field.WithLogLevel("debug"))
	require.NoError(t, app.Start())
	require.NoError(t, app.Stop())

	require.NotEmpty(t, buf.String())

	first, _, _ := strings.Cut(buf.String(), "\n")

	var entry map[string]any

	require.NoError(t, json.Unmarshal([]byte(first), &entry))
	assert.Contains(t, entry, "msg")
}

func TestNewApp_ExtractAPI(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)

	app := field.NewApp(quiet(), field.WithExtractAPI("http", listener.WithAddress(addr)))
	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	status, body := postExtract(t, addr, `{"file_name":"a.toml","content":"[a]\nb = \"c\"","field":"a.b"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"output":"c","found":true}`, body)
}

func TestNewApp_ListenerConfigFile(t *testing.T) {
	t.Parallel()

	addr := freeAddress(t)
	configPath := filepath.Join(t.TempDir(), "hjarta.yaml")
	content := "server:\n  http:\n    address: \"" + addr + "\"\n    max_body_bytes: 32\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	app := field.NewApp(
		quiet(),
		field.WithListenerConfigFile("http", configPath, "server.http"),
		field.WithExtractAPI("http"),
	)
	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	status, _ := postExtract(t, addr, `{"file_name":"a.json","content":"{\"a\": \"a long enough value\"}","field":"a"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
}

func TestNewApp_ListenerConfigFileMissingSection(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "hjarta.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"other": {}}`), 0o600))

	app := field.NewApp(
		quiet(),
		field.WithListenerConfigFile("http", configPath, "server"),
		field.WithExtractAPI("http"),
	)

	err := app.Start()
	require.ErrorIs(t, err, config.ErrSectionNotFound)
}

func TestApp_StartStop(t *testing.T) {
	t.Parallel()

	var stopped bool

	app := field.NewApp(quiet(), field.WithModules(fx.Invoke(func(lc fx.Lifecycle) {
		lc.Append(fx.StopHook(func() { stopped = true }))
	})))

	require.NoError(t, app.Start())
	require.NoError(t, app.Stop())
	assert.True(t, stopped)
}

func TestApp_NilApp(t *testing.T) {
	t.Parallel()

	var app *field.App

	require.Error(t, app.Start())
	require.Error(t, app.Stop())
	require.Error(t, app.Err())
	require.NotPanics(t, app.Run)
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	app := field.NewApp(quiet(), field.WithModules(fx.Invoke(func(shutdowner fx.Shutdowner) {
		go func() {
			_ = shutdowner.Shutdown()
		}()
	})))

	require.NotPanics(t, app.Run)
}
