package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PITSTOP_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ReplicationQueueSize != 64 {
		t.Errorf("expected default queue size 64, got %d", cfg.ReplicationQueueSize)
	}
	if cfg.MirrorDatabaseURL != "" {
		t.Errorf("expected replication disabled by default, got %q", cfg.MirrorDatabaseURL)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PITSTOP_DATA_DIR", dir)
	t.Setenv("PITSTOP_MIRROR_DATABASE_URL", "postgres://mirror.example/shop")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("expected data dir %q, got %q", dir, cfg.DataDir)
	}
	if cfg.MirrorDatabaseURL != "postgres://mirror.example/shop" {
		t.Errorf("env override not applied, got %q", cfg.MirrorDatabaseURL)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PITSTOP_DATA_DIR", dir)

	saved := &Config{
		DataDir:              dir,
		ShopID:               "3f1c8a4e-2b7d-4c19-9a66-0d5e0c2b9f71",
		ReplicationQueueSize: 16,
		NotifyGatewayURL:     "https://gateway.example/send",
	}
	if err := Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ShopID != saved.ShopID {
		t.Errorf("expected shop id to round-trip, got %q", cfg.ShopID)
	}
	if cfg.ReplicationQueueSize != 16 {
		t.Errorf("expected queue size 16, got %d", cfg.ReplicationQueueSize)
	}
}

func TestLoad_RejectsBadShopID(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PITSTOP_DATA_DIR", dir)
	t.Setenv("PITSTOP_SHOP_ID", "not-a-uuid")

	if _, err := Load(); err == nil {
		t.Errorf("expected invalid shop_id to be rejected")
	}
}

func TestSave_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if err := Save(&Config{DataDir: dir, ReplicationQueueSize: 8}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}
