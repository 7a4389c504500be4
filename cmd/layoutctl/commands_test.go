package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/GregMSThompson/backup-dashboard/internal/catalog"
	"github.com/GregMSThompson/backup-dashboard/internal/models"
	"github.com/GregMSThompson/backup-dashboard/internal/store"
)

func memoryOpener(kv store.KV) openFunc {
	return func(string) (store.KV, func() error, error) {
		return kv, func() error { return nil }, nil
	}
}

func run(t *testing.T, kv store.KV, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(memoryOpener(kv))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestShow_SavedLayout(t *testing.T) {
	kv := store.NewMemoryKV()
	store.NewLayoutStore(kv).Save(context.Background(), models.ProductVBM, catalog.DefaultLayout(models.ProductVBM))

	out, err := run(t, kv, "show", "vbm")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var got showOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if !got.Valid || len(got.Items) != 4 || got.Key != "veeam-dashboard-layout-vbm" {
		t.Fatalf("unexpected output %+v", got)
	}
}

func TestShow_NothingSaved(t *testing.T) {
	out, err := run(t, store.NewMemoryKV(), "show", "vbr")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, `"valid": false`) {
		t.Fatalf("expected invalid marker, got %s", out)
	}
}

func TestExistsAndReset(t *testing.T) {
	kv := store.NewMemoryKV()
	store.NewLayoutStore(kv).Save(context.Background(), models.ProductVBR, catalog.DefaultLayout(models.ProductVBR))

	out, err := run(t, kv, "exists", "vbr")
	if err != nil || strings.TrimSpace(out) != "customized" {
		t.Fatalf("exists before reset: %q %v", out, err)
	}

	if _, err := run(t, kv, "reset", "vbr"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	out, err = run(t, kv, "exists", "vbr")
	if strings.TrimSpace(out) != "default" || !errors.Is(err, errNotSaved) {
		t.Fatalf("exists after reset: %q %v", out, err)
	}
	if exitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d", exitCode(err))
	}
}

func TestUnknownProduct(t *testing.T) {
	_, err := run(t, store.NewMemoryKV(), "reset", "vbx")
	if err == nil || !strings.Contains(err.Error(), "unknown product") {
		t.Fatalf("expected unknown product error, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode(err))
	}
}
