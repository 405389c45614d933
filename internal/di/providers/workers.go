package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/tablematch/tablematch-server/internal/config"
	"github.com/tablematch/tablematch-server/internal/logger"
)

// JTIPruneJob runs periodic cleanup of the consumed-token ledger.
type JTIPruneJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *JTIPruneJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideJTIPruneJob provides the periodic ledger cleanup job. Entries
// older than twice the token TTL can never match a live token, so pruning
// them does not reopen any replay window.
func ProvideJTIPruneJob(i do.Injector) (*JTIPruneJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	retention := 2 * cfg.Auth.ActionTokenTTL
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		// Initial cleanup on startup
		if count, err := storeHandle.PruneUsedJTIs(ctx, time.Now().Add(-retention)); err != nil {
			log.Warn("Initial token ledger cleanup failed", "error", err)
		} else if count > 0 {
			log.Info("Initial token ledger cleanup completed", "deleted", count)
		}

		for {
			select {
			case <-ticker.C:
				if count, err := storeHandle.PruneUsedJTIs(ctx, time.Now().Add(-retention)); err != nil {
					log.Warn("Token ledger cleanup failed", "error", err)
				} else if count > 0 {
					log.Info("Token ledger cleanup completed", "deleted", count)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Token ledger cleanup job started", "retention", retention)

	return &JTIPruneJob{cancel: cancel}, nil
}
