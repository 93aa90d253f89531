// file: database/connect_test.go
package database

import (
	"path/filepath"
	"strings"
	"testing"

	"MYR/config"
	"MYR/models"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/mysql"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		url  string
		name string
	}{
		{"sqlite:database.db", "sqlite"},
		{"mysql://club:pw@localhost:3306/club", "mysql"},
		{"postgres://club:pw@localhost/club?sslmode=disable", "postgres"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			d, err := Dialector(tt.url)
			if err != nil {
				t.Fatalf("Dialector: %v", err)
			}
			if d.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", d.Name(), tt.name)
			}
		})
	}

	if _, err := Dialector("not a url"); err == nil {
		t.Error("garbage url accepted")
	}
}

func TestMySQLDSNGetsParseTime(t *testing.T) {
	d, err := Dialector("mysql://club:pw@localhost:3306/club")
	if err != nil {
		t.Fatal(err)
	}
	dsn := d.(*mysql.Dialector).DSN
	if !strings.Contains(dsn, "parseTime=True") || !strings.Contains(dsn, "utf8mb4") {
		t.Errorf("dsn = %q", dsn)
	}
}

func TestConnectLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := &config.Config{
		DatabaseURL: "sqlite:" + filepath.Join(t.TempDir(), "club.db"),
		DBMaxIdle:   1,
		DBMaxOpen:   1,
	}
	db, err := Connect(cfg, zap.New(core))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer Close(db)

	var n int
	if err := db.Raw("SELECT count(*) FROM no_such_table").Scan(&n).Error; err == nil {
		t.Fatal("query on a missing table succeeded")
	}
	found := false
	for _, e := range logs.All() {
		if e.LoggerName == "gorm" && e.Level == zap.ErrorLevel {
			found = true
		}
	}
	if !found {
		t.Errorf("no gorm error entry in %d logged entries", logs.Len())
	}

	// Missing rows are expected by the repos and stay quiet.
	if err := MigrateTables(db); err != nil {
		t.Fatalf("MigrateTables: %v", err)
	}
	before := logs.Len()
	var u models.User
	db.First(&u, 12345)
	if logs.Len() != before {
		t.Errorf("record-not-found was logged: %v", logs.All()[before:])
	}
}
