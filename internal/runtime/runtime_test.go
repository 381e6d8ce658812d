package runtime

import (
	"context"
	"testing"

	cfgpkg "github.com/rzbill/stockd/internal/config"
	pebblestore "github.com/rzbill/stockd/internal/storage/pebble"
)

func TestOpenCloseHealth(t *testing.T) {
	dir := t.TempDir()
	rt, err := Open(Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways, Config: cfgpkg.Default()})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	defer rt.Close()
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestInventoryWiredAndDurable(t *testing.T) {
	dir := t.TempDir()
	rt, err := Open(Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways, Config: cfgpkg.Default()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	p, err := rt.Inventory().AddProduct("Widget", 7)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rt2, err := Open(Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways, Config: cfgpkg.Default()})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer rt2.Close()
	got, err := rt2.Inventory().GetProduct(p.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Quantity != 7 || got.Name != "Widget" {
		t.Fatalf("reloaded product: %+v", got)
	}

	if rt2.Inventory().Threshold() != cfgpkg.Default().AlertThreshold {
		t.Fatalf("threshold = %d, want config default", rt2.Inventory().Threshold())
	}
}
