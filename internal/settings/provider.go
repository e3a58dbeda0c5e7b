package settings

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=settings

type Repo interface {
	All(ctx context.Context) (map[string]string, error)
}

// Provider owns the current Snapshot and is the only writer of it.
type Provider struct {
	repo     Repo
	defaults Snapshot
	interval time.Duration
	current  atomic.Pointer[Snapshot]
}

func NewProvider(repo Repo, defaults Snapshot, interval time.Duration) *Provider {
	p := &Provider{repo: repo, defaults: defaults, interval: interval}
	s := defaults
	s.LoadedAt = time.Now()
	p.current.Store(&s)
	return p
}

// Fixed returns a provider that always serves s.
func Fixed(s Snapshot) *Provider {
	p := &Provider{defaults: s}
	p.current.Store(&s)
	return p
}

func (p *Provider) Snapshot() *Snapshot {
	return p.current.Load()
}

func (p *Provider) Refresh(ctx context.Context) error {
	kv, err := p.repo.All(ctx)
	if err != nil {
		zap.L().Error("failed to load settings", zap.Error(err))
		return err
	}
	s := Parse(kv, p.defaults)
	s.LoadedAt = time.Now()
	p.current.Store(&s)
	zap.L().Debug("settings refreshed", zap.Int("keys", len(kv)))
	return nil
}

// Start refreshes the snapshot on every tick until ctx is done.
func (p *Provider) Start(ctx context.Context) {
	if p.repo == nil || p.interval <= 0 {
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("settings refresher stopped")
			return
		case <-ticker.C:
			_ = p.Refresh(ctx)
		}
	}
}
