package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Simplici0/tokenwatt/internal/app"
	"github.com/Simplici0/tokenwatt/internal/config"
	"github.com/Simplici0/tokenwatt/internal/tariff"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	var cfg config.Config
	cfg.DB.Path = filepath.Join(t.TempDir(), "tokenwatt.db")
	cfg.Tariff.Default = tariff.ScheduleNew
	cfg.Tariff.VATRate = "0.18"
	return cfg
}

func TestBootstrapBuildsEngineFromStoredSchedules(t *testing.T) {
	a, err := app.Bootstrap(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.Equal(t, tariff.ScheduleNew, a.Engine.Registry().DefaultID())
	require.Len(t, a.Engine.Registry().Schedules(), 2)

	total, _, err := a.Engine.CostFromUnits(tariff.ScheduleOld, decimal.NewFromInt(40))
	require.NoError(t, err)
	require.Equal(t, "8047.6", total.String())
}

func TestBootstrapLoadsPresetsAndDefault(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tariff.Default = "flatland"
	cfg.Tariff.VATRate = "0"
	cfg.Tariff.PresetsFile = filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(cfg.Tariff.PresetsFile, []byte(`
schedules:
  - id: flatland
    name: Flatland
    tier1_rate: 10
    tier2_rate: 20
    tier3_rate: 30
    tier1_limit: 10
    tier2_limit: 20
`), 0o600))

	a, err := app.Bootstrap(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	total, b, err := a.Engine.CostFromUnits("", decimal.NewFromInt(25))
	require.NoError(t, err)
	require.Equal(t, "flatland", b.ScheduleID)
	require.Equal(t, "450", total.String())
}

func TestBootstrapRejectsUnknownDefault(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tariff.Default = "summer"

	_, err := app.Bootstrap(context.Background(), cfg, nil)
	require.ErrorIs(t, err, tariff.ErrUnknownSchedule)
}

func TestBootstrapLogsSchemaVersionAndDefault(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	a, err := app.Bootstrap(context.Background(), testConfig(t), zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	schema := logs.FilterMessage("database schema ready").All()
	require.Len(t, schema, 1)
	require.Positive(t, schema[0].ContextMap()["version"])

	def := logs.FilterMessage("default tariff").All()
	require.Len(t, def, 1)
	require.Equal(t, tariff.ScheduleNew, def[0].ContextMap()["id"])
	require.Equal(t, tariff.DefaultCurrency, def[0].ContextMap()["currency"])
}
