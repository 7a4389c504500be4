package bootstrap

import (
	"testing"
	"time"

	"github.com/GregMSThompson/backup-dashboard/internal/config"
	"github.com/GregMSThompson/backup-dashboard/pkg/helpers"
)

func testConfig(store, path string) *config.Config {
	return &config.Config{
		Port:            8080,
		LogLevel:        "error",
		LayoutStore:     store,
		LayoutStorePath: path,
		VeeamAPIVersion: "1.3-rev1",
		RelayTimeout:    time.Second,
	}
}

func TestRun_MemoryStore(t *testing.T) {
	bs, err := Run(testConfig(config.StoreMemory, ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer bs.Close()

	if bs.DB != nil {
		t.Fatal("memory store must not open badger")
	}
	if bs.VeeamAdapter.Configured() {
		t.Fatal("adapter should be unconfigured without a URL")
	}
	ctx := helpers.TestCtx()
	if err := bs.KV.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, _ := bs.KV.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("Get = %q %v", v, ok)
	}
}

func TestRun_BadgerStorePersists(t *testing.T) {
	dir := t.TempDir()
	ctx := helpers.TestCtx()

	bs, err := Run(testConfig(config.StoreBadger, dir))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := bs.KV.Set(ctx, "veeam-dashboard-layout-vbr", `{"version":3}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	bs.Close()

	bs, err = Run(testConfig(config.StoreBadger, dir))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer bs.Close()
	if v, ok, err := bs.KV.Get(ctx, "veeam-dashboard-layout-vbr"); err != nil || !ok || v != `{"version":3}` {
		t.Fatalf("Get after reopen = %q %v %v", v, ok, err)
	}
}
