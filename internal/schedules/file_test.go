package schedules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/tokenwatt/internal/schedules"
	"github.com/Simplici0/tokenwatt/internal/tariff"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "presets.yaml", `
schedules:
  - id: Commercial
    name: Commercial
    tier1_rate: 212
    tier2_rate: 249
    tier3_rate: 255.5
    tier1_limit: 100
    tier2_limit: 200
`)

	list, err := schedules.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "commercial", list[0].ID)
	require.Equal(t, tariff.DefaultCurrency, list[0].Currency)
	require.Equal(t, "255.5", list[0].Tier3Rate.String())
}

func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, "presets.toml", `
[[schedules]]
id = "industrial"
name = "Industrial"
currency = "rwf"
tier1_rate = 100.0
tier2_rate = 150.0
tier3_rate = 200.0
tier1_limit = 50.0
tier2_limit = 500.0
`)

	list, err := schedules.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "industrial", list[0].ID)
	require.Equal(t, "RWF", list[0].Currency)
	require.Equal(t, "500", list[0].Tier2Limit.String())
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "presets.json", `{"schedules":[{"id":"x","name":"X","tier1_rate":1,"tier2_rate":2,"tier3_rate":3,"tier1_limit":10,"tier2_limit":20}]}`)

	list, err := schedules.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, list[0].Validate())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := schedules.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = schedules.LoadFile(t.TempDir())
	require.Error(t, err)

	_, err = schedules.LoadFile(writeFile(t, "presets.ini", "x=1"))
	require.ErrorContains(t, err, "unsupported")

	bad := writeFile(t, "presets.yaml", `
schedules:
  - id: flat
    tier1_rate: 100
    tier2_rate: 100
    tier3_rate: 100
    tier1_limit: 10
    tier2_limit: 20
`)
	_, err = schedules.LoadFile(bad)
	require.ErrorIs(t, err, tariff.ErrInvalidSchedule)
}
