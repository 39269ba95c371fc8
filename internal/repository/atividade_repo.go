package repository

import (
	"context"

	"github.com/Jizar07/cabradapeste-sub002/internal/model"

	"gorm.io/gorm"
)

// AtividadeRepository mirrors ingested feed activities. Insert-only; the
// unique external_id makes re-syncs idempotent for every activity, financial
// or not.
type AtividadeRepository interface {
	// CreateComLancamento persists the mirror row and, when l is non-nil, its
	// ledger entry in a single transaction. Both land or neither does: a mirror
	// row without its entry would dedupe the money away on the next sync.
	CreateComLancamento(ctx context.Context, a *model.Atividade, l *model.Lancamento) error
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
	ListByAutor(ctx context.Context, autor string, limit int) ([]model.Atividade, error)
}

type atividadeRepo struct{ db *gorm.DB }

func NewAtividadeRepository(db *gorm.DB) AtividadeRepository { return &atividadeRepo{db: db} }

func (r *atividadeRepo) CreateComLancamento(ctx context.Context, a *model.Atividade, l *model.Lancamento) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if l == nil {
			return nil
		}
		return tx.Create(l).Error
	})
}

func (r *atividadeRepo) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Atividade{}).
		Where("external_id = ?", externalID).Count(&count).Error
	return count > 0, err
}

func (r *atividadeRepo) ListByAutor(ctx context.Context, autor string, limit int) ([]model.Atividade, error) {
	var as []model.Atividade
	q := r.db.WithContext(ctx).Where("autor = ?", autor).Order("registrado_em DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&as).Error
	return as, err
}
