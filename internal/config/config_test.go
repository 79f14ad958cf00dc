package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %s, want %s", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Store.Database != DefaultDatabase {
		t.Errorf("Database = %s, want %s", cfg.Store.Database, DefaultDatabase)
	}
	if cfg.Cache.CacheTTL() != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v, want %v", cfg.Cache.CacheTTL(), DefaultCacheTTL)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9999"

[cache]
dir = "/tmp/flowgraph-cache"
ttl = "12h"

[store]
mongo_uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %s", cfg.Server.Addr)
	}
	if cfg.Cache.Dir != "/tmp/flowgraph-cache" {
		t.Errorf("Cache.Dir = %s", cfg.Cache.Dir)
	}
	if cfg.Cache.CacheTTL() != 12*time.Hour {
		t.Errorf("CacheTTL = %v, want 12h", cfg.Cache.CacheTTL())
	}
	if cfg.Store.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI = %s", cfg.Store.MongoURI)
	}
	// Unset fields fall back to defaults
	if cfg.Store.Database != DefaultDatabase {
		t.Errorf("Database = %s, want default", cfg.Store.Database)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load on a missing file should fail")
	}
}

func TestLoadBadTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nttl = \"soon\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("unparseable ttl should fail")
	}
}
