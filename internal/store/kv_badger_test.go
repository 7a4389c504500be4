package store

import (
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/GregMSThompson/backup-dashboard/internal/errs"
	"github.com/GregMSThompson/backup-dashboard/internal/models"
	"github.com/GregMSThompson/backup-dashboard/pkg/helpers"
)

func openBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBadgerKV_GetSetRemove(t *testing.T) {
	ctx := helpers.TestCtx()
	kv := NewBadgerKV(openBadger(t))

	if _, ok, err := kv.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("expected v2, got %q ok=%v err=%v", v, ok, err)
	}
	if err := kv.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := kv.Remove(ctx, "k"); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Fatal("expected key removed")
	}
}

func TestBadgerKV_ClosedDBReturnsDatabaseError(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	kv := NewBadgerKV(db)
	db.Close()

	err = kv.Set(helpers.TestCtx(), "k", "v")
	var dbErr *errs.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %T %v", err, err)
	}
	if dbErr.Operation != "write" {
		t.Fatalf("expected write operation, got %q", dbErr.Operation)
	}
}

func TestLayoutStore_WithBadger(t *testing.T) {
	ctx := helpers.TestCtx()
	s := NewLayoutStore(NewBadgerKV(openBadger(t)))
	items := []models.WidgetPlacement{{ID: "a", X: 2, Y: 0, W: 2, H: 2}}

	s.Save(ctx, models.ProductVBR, items)
	got, ok := s.Load(ctx, models.ProductVBR)
	if !ok || len(got) != 1 || got[0] != items[0] {
		t.Fatalf("expected round trip, got %+v ok=%v", got, ok)
	}

	s.Clear(ctx, models.ProductVBR)
	if s.Exists(ctx, models.ProductVBR) {
		t.Fatal("expected cleared")
	}
}

func TestMemoryKV(t *testing.T) {
	ctx := helpers.TestCtx()
	kv := NewMemoryKV()
	if err := kv.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := kv.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("expected v, got %q ok=%v", v, ok)
	}
	_ = kv.Remove(ctx, "k")
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Fatal("expected removed")
	}
}
