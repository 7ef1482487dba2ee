package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"signal_bot/internal/notify"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
)

func TestAppGraphWithDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "missing.yaml")
	t.Setenv("CHARTS_DIR", t.TempDir())
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("JAEGER_HOST", "")
	t.Setenv("LOG_FILE", "")

	logger.InfoLogger, logger.FatalLogger = nil, nil

	var (
		r *runner.Runner
		n notify.Notifier
	)
	var app *fx.App
	require.NotPanics(t, func() {
		app = fx.New(append(appOptions(), fx.Populate(&r, &n))...)
	})
	require.NoError(t, app.Err())

	assert.NotNil(t, r)
	assert.IsType(t, &notify.Stdout{}, n)
	assert.NotNil(t, logger.InfoLogger)
}
