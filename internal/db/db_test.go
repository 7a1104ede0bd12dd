package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenAppliesPragmasOnEveryConnection(t *testing.T) {
	database, err := Open(context.Background(), filepath.Join(t.TempDir(), "pragmas.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()
	database.SetMaxIdleConns(4)

	ctx := context.Background()
	conns := make([]interface{ Close() error }, 0, 3)
	for i := 0; i < 3; i++ {
		conn, err := database.Conn(ctx)
		if err != nil {
			t.Fatalf("Conn: %v", err)
		}
		conns = append(conns, conn)

		var fk, timeout int
		if err := conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk); err != nil {
			t.Fatalf("read foreign_keys: %v", err)
		}
		if err := conn.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&timeout); err != nil {
			t.Fatalf("read busy_timeout: %v", err)
		}
		if fk != 1 || timeout != 5000 {
			t.Fatalf("connection %d: foreign_keys=%d busy_timeout=%d", i, fk, timeout)
		}
	}
	for _, c := range conns {
		_ = c.Close()
	}
}

func TestOpenMemoryDatabaseKeepsSingleConnection(t *testing.T) {
	database, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(`CREATE TABLE probe (id INTEGER)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM probe`).Scan(&n); err != nil {
		t.Fatalf("query probe: %v", err)
	}
	if got := database.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("expected 1 max open connection, got %d", got)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestDSNAppendsPragmas(t *testing.T) {
	got := dsn("file:test.db?mode=rwc")
	want := "file:test.db?mode=rwc&_pragma=busy_timeout%285000%29&_pragma=foreign_keys%281%29&_pragma=journal_mode%28WAL%29"
	if got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
