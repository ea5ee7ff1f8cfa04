package db

import (
	"path/filepath"
	"testing"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "raseed.db")

	database, err := Open(path, "p@ss&word=1")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	// second run is a no-op
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}

	version, err := database.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("version = %d, want %d", version, len(migrations))
	}

	if _, err := database.Exec("INSERT INTO drafts (key, payload) VALUES ('k', '{}')"); err != nil {
		t.Errorf("drafts table not usable: %v", err)
	}
}

func TestOpenWithWrongKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raseed.db")

	database, err := Open(path, "right")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	database.Close()

	database, err = Open(path, "wrong")
	if err == nil {
		// some builds defer the key check until the first query
		defer database.Close()
		if _, err := database.SchemaVersion(); err == nil {
			t.Error("expected an error opening with the wrong key")
		}
	}
}
