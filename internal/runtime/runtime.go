package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/rzbill/stockd/internal/alert"
	cfgpkg "github.com/rzbill/stockd/internal/config"
	"github.com/rzbill/stockd/internal/inventory"
	"github.com/rzbill/stockd/internal/product"
	pebblestore "github.com/rzbill/stockd/internal/storage/pebble"
	logpkg "github.com/rzbill/stockd/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	Logger        logpkg.Logger
}

// Runtime owns the storage handle and the inventory facade built on it.
type Runtime struct {
	db     *pebblestore.DB
	config cfgpkg.Config
	inv    *inventory.Service
}

// Open initializes storage, loads the product table and wires the
// inventory service.
func Open(opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}
	store, err := product.Open(db, logger.With(logpkg.Component("product")))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	bus := alert.New(logger.With(logpkg.Component("alert")))
	inv := inventory.New(store, bus, opts.Config.AlertThreshold, logger.With(logpkg.Component("inventory")))
	return &Runtime{db: db, config: opts.Config, inv: inv}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple storage liveness check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	it.Close()
	return ctx.Err()
}

// Inventory returns the shared inventory facade.
func (r *Runtime) Inventory() *inventory.Service { return r.inv }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
