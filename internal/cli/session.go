package cli

import (
	"fmt"

	"github.com/julianstephens/planhub/internal/config"
	"github.com/julianstephens/planhub/internal/lock"
	"github.com/julianstephens/planhub/internal/logger"
	"github.com/julianstephens/planhub/internal/storage"
	"github.com/julianstephens/planhub/internal/utils"
)

// Session owns what Open acquired for one command run.
type Session struct {
	lock      *lock.Lock
	provider  storage.Provider
	persister *storage.Persister
}

// Open takes the data-dir lock, opens and hydrates storage, then attaches
// write-through persistence. With dryRun the store is loaded from the real
// provider but every write lands in memory, and no lock is taken.
func Open(cfg config.Config, dryRun bool, clock utils.Clock) (*Context, *Session, error) {
	sess := &Session{}

	if !dryRun {
		l, err := lock.Acquire(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		sess.lock = l
	}

	provider, err := OpenProvider(cfg)
	if err != nil {
		sess.Close()
		return nil, nil, err
	}
	if err := provider.Init(); err != nil {
		sess.Close()
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	sess.provider = provider

	ctx := NewContext(cfg, provider, clock)
	ctx.DryRun = dryRun
	storage.Hydrate(provider, ctx.Store)

	target := provider
	if dryRun {
		logger.Info("Dry run: changes will not be saved")
		target = storage.NewMemoryStore()
	}
	sess.persister = storage.Attach(target, ctx.Store)

	return ctx, sess, nil
}

// Close detaches persistence before closing the provider, then releases the
// lock. Safe to call on a partly opened session.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.persister != nil {
		s.persister.Detach()
	}
	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			logger.Warn("Failed to close storage", "err", err)
		}
	}
	if err := s.lock.Release(); err != nil {
		logger.Warn("Failed to release lock", "err", err)
	}
}
