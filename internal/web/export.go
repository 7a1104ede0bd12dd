package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExportRoutes are the pages written by a static site export.
var DefaultExportRoutes = []string{
	"/",
	"/calculate-cost?units=10",
	"/calculate-units?amount=10000",
}

// Export renders each route through handler and writes the responses as
// .html files under dir. It returns the written file paths.
func Export(ctx context.Context, handler http.Handler, dir string, routes []string) ([]string, error) {
	if len(routes) == 0 {
		routes = DefaultExportRoutes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	written := make([]string, 0, len(routes))
	for _, route := range routes {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		req := httptest.NewRequest(http.MethodGet, route, nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			return written, fmt.Errorf("render %s: status %d", route, rec.Code)
		}

		path := filepath.Join(dir, exportFileName(route))
		if err := os.WriteFile(path, rec.Body.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func exportFileName(route string) string {
	if route == "/" {
		return "index.html"
	}
	return strings.NewReplacer("/", "_", "?", "_", "&", "_").Replace(route) + ".html"
}
