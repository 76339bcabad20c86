// Package global owns the process-wide allocator.
//
// The instance is created either explicitly with Init or lazily with
// pool.DefaultConfig on the first call to Default. Shutdown tears it down
// once; after that the instance is never recreated.
package global

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/buttception/RagdollEngine-sub001/internal/logger"
	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/alloc"
)

var (
	// ErrAlreadyInitialized is returned by Init once the instance exists.
	ErrAlreadyInitialized = errors.New("global: allocator already initialized")

	// ErrShutdown is returned by every call after Shutdown.
	ErrShutdown = errors.New("global: allocator shut down")
)

var (
	mu       sync.Mutex
	instance *alloc.SyncAllocator
	down     bool
)

// Init creates the process-wide allocator from cfg.
func Init(cfg pool.Config, opts ...alloc.Option) error {
	mu.Lock()
	defer mu.Unlock()
	if down {
		return ErrShutdown
	}
	if instance != nil {
		logger.Warn("global: Init called on a live allocator",
			"block_size", cfg.BlockSize, "block_count", cfg.BlockCount)
		return ErrAlreadyInitialized
	}
	return create(cfg, opts)
}

// Default returns the process-wide allocator, creating it with
// pool.DefaultConfig if Init was never called.
func Default() (*alloc.SyncAllocator, error) {
	mu.Lock()
	defer mu.Unlock()
	if down {
		return nil, ErrShutdown
	}
	if instance == nil {
		if err := create(pool.DefaultConfig(), nil); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Pool returns the pool behind the process-wide allocator.
func Pool() (*pool.Pool, error) {
	a, err := Default()
	if err != nil {
		return nil, err
	}
	return a.Pool(), nil
}

// Shutdown releases the arena. Calling it before the allocator exists only
// prevents later creation.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()
	if down {
		return nil
	}
	down = true
	if instance == nil {
		return nil
	}
	if err := instance.Close(); err != nil {
		logger.Error("global: release arena", "error", err)
		return err
	}
	logger.Info("global: allocator shut down")
	return nil
}

func create(cfg pool.Config, opts []alloc.Option) error {
	p, err := pool.New(cfg)
	if err != nil {
		return errors.Wrap(err, "global: create pool")
	}
	instance = alloc.NewSync(p, opts...)
	logger.Info("global: allocator ready",
		"block_size", cfg.BlockSize, "block_count", cfg.BlockCount, "backing", cfg.Backing.String())
	return nil
}
