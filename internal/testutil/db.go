package testutil

import (
	"database/sql"
	"os"
	"testing"

	"github.com/JuanTorresCortes/auth-server/internal/config"
	"github.com/JuanTorresCortes/auth-server/internal/db"
)

// OpenTestDB connects to the postgres instance named by TEST_DB_HOST and
// returns a clean database. Tests that need real storage skip when the
// variable is unset.
func OpenTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "auth",
		Password: "auth_pass",
		DBName:   "auth_server_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if _, err := conn.Exec("TRUNCATE users, tasks"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}
