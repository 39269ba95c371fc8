package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/model"

	"github.com/rs/zerolog/log"
)

// FeedFonte abstracts the collaborator activity feed so the gateway can be
// tested against a fake and wrapped in a circuit breaker in production.
type FeedFonte interface {
	BuscarAtividades(ctx context.Context) ([]model.AtividadeExterna, error)
}

type SyncService interface {
	// SincronizarTudo pulls the full bounded feed and reconciles every
	// activity. Safe to re-run: dedupe makes repeated cycles no-ops.
	// A feed outage degrades to an empty cycle — it never hard-fails.
	SincronizarTudo(ctx context.Context) (*dto.SyncResumo, error)
}

type syncService struct {
	feed      FeedFonte
	reconcile ReconcileService
}

func NewSyncService(feed FeedFonte, reconcile ReconcileService) SyncService {
	return &syncService{feed: feed, reconcile: reconcile}
}

func (s *syncService) SincronizarTudo(ctx context.Context) (*dto.SyncResumo, error) {
	resumo := &dto.SyncResumo{Falhas: []string{}}

	atividades, err := s.feed.BuscarAtividades(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("feed de atividades indisponivel, ciclo vazio")
		return resumo, nil
	}
	if len(atividades) == 0 {
		return resumo, nil
	}

	// Independent gerentes reconcile in parallel; within one gerente the
	// batch stays sequential so entries land in feed order.
	porAutor := map[string][]model.AtividadeExterna{}
	for _, a := range atividades {
		porAutor[a.Autor] = append(porAutor[a.Autor], a)
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for autor, lote := range porAutor {
		wg.Add(1)
		go func(autor string, lote []model.AtividadeExterna) {
			defer wg.Done()
			sort.SliceStable(lote, func(i, j int) bool {
				return lote[i].RegistradoEm.Before(lote[j].RegistradoEm)
			})
			for _, a := range lote {
				resultado, err := s.reconcile.IngerirAtividade(ctx, a)

				mu.Lock()
				switch {
				case err != nil:
					// One bad activity never blocks the rest of the batch.
					log.Warn().Err(err).
						Str("external_id", a.ExternalID).
						Str("autor", autor).
						Msg("atividade rejeitada na sincronizacao")
					resumo.Falhas = append(resumo.Falhas, a.ExternalID)
				case resultado == IngestaoCriada:
					resumo.Sincronizadas++
				case resultado == IngestaoExcluida:
					resumo.Excluidas++
				}
				mu.Unlock()
			}
		}(autor, lote)
	}
	wg.Wait()

	sort.Strings(resumo.Falhas)
	log.Info().
		Int("sincronizadas", resumo.Sincronizadas).
		Int("excluidas", resumo.Excluidas).
		Int("falhas", len(resumo.Falhas)).
		Msg("ciclo de sincronizacao concluido")
	return resumo, nil
}
