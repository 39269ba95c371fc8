package worker

// sync_cron.go
// Background goroutine that periodically pulls the external activity feed and
// reconciles it into the ledger. The feed client already routes through the
// circuit breaker, so a downed feed degrades to cheap, fast-failing ticks.

import (
	"context"
	"time"

	"github.com/Jizar07/cabradapeste-sub002/internal/service"

	"github.com/rs/zerolog/log"
)

// StartSyncCron launches the periodic sync loop. One cycle runs immediately at
// startup so a restart doesn't wait a full interval to catch up.
// It respects the context for graceful shutdown.
func StartSyncCron(ctx context.Context, svc service.SyncService, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("sync_cron: started")
		runSyncCycle(ctx, svc)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sync_cron: shutting down")
				return
			case <-ticker.C:
				runSyncCycle(ctx, svc)
			}
		}
	}()
}

func runSyncCycle(ctx context.Context, svc service.SyncService) {
	resumo, err := svc.SincronizarTudo(ctx)
	if err != nil {
		log.Error().Err(err).Msg("sync_cron: cycle failed")
		return
	}
	if resumo.Sincronizadas > 0 || resumo.Excluidas > 0 || len(resumo.Falhas) > 0 {
		log.Info().
			Int("sincronizadas", resumo.Sincronizadas).
			Int("excluidas", resumo.Excluidas).
			Int("falhas", len(resumo.Falhas)).
			Msg("sync_cron: cycle done")
	}
}
