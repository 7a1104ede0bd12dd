package web_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/tokenwatt/internal/web"
)

func TestExportWritesSamplePages(t *testing.T) {
	h, _ := newTestHandler(t)
	dir := filepath.Join(t.TempDir(), "dist")

	written, err := web.Export(context.Background(), h, dir, nil)
	require.NoError(t, err)
	require.Len(t, written, len(web.DefaultExportRoutes))

	for _, name := range []string{"index.html", "_calculate-cost_units=10.html", "_calculate-units_amount=10000.html"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.Contains(t, string(data), "Rwanda Energy Group Calculator", name)
	}

	cost, err := os.ReadFile(filepath.Join(dir, "_calculate-cost_units=10.html"))
	require.NoError(t, err)
	require.Contains(t, string(cost), "1050.20")
}

func TestExportFailsOnMissingRoute(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := web.Export(context.Background(), h, t.TempDir(), []string{"/nope"})
	require.ErrorContains(t, err, "status 404")
}
