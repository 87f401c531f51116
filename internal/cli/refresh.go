package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/wayfinder/pkg/pathconfig"
	"github.com/aretw0/wayfinder/pkg/ports"
)

const refreshLockKey = "refresh"

// Refresh reloads cfg every interval until ctx is done.
// Failed reloads keep the rules already applied. With a locker, replicas
// sharing a cache take turns so the remote server sees one fetch at a time.
func Refresh(ctx context.Context, cfg *pathconfig.Configuration, interval time.Duration, locker ports.DistributedLocker, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refreshOnce(ctx, cfg, interval, locker, logger)
		}
	}
}

func refreshOnce(ctx context.Context, cfg *pathconfig.Configuration, ttl time.Duration, locker ports.DistributedLocker, logger *slog.Logger) {
	if locker != nil {
		unlock, err := locker.Lock(ctx, refreshLockKey, ttl)
		if err != nil {
			logger.Warn("path configuration refresh skipped", "err", err)
			return
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("failed to release refresh lock", "err", err)
			}
		}()
	}

	if err := cfg.Load(ctx); err != nil {
		logger.Warn("path configuration refresh failed", "err", err)
		return
	}
	logger.Debug("path configuration refreshed")
}
