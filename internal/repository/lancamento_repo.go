package repository

import (
	"context"
	"errors"

	"github.com/Jizar07/cabradapeste-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LancamentoRepository is the append-only ledger store. Entries are never
// updated or deleted; reversals and corrections are appended facts.
type LancamentoRepository interface {
	// Append persists the entry synchronously — it is durable before return,
	// which the reconciliation dedupe depends on (read-after-write).
	Append(ctx context.Context, l *model.Lancamento) error
	// ListByGerente returns the gerente's full entry set in insertion order.
	ListByGerente(ctx context.Context, gerenteID uuid.UUID) ([]model.Lancamento, error)
	// FindByExternalID is used exclusively for ingestion dedupe.
	// Returns (nil, nil) when no entry carries the id.
	FindByExternalID(ctx context.Context, externalID string) (*model.Lancamento, error)
}

type lancamentoRepo struct{ db *gorm.DB }

func NewLancamentoRepository(db *gorm.DB) LancamentoRepository { return &lancamentoRepo{db: db} }

func (r *lancamentoRepo) Append(ctx context.Context, l *model.Lancamento) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *lancamentoRepo) ListByGerente(ctx context.Context, gerenteID uuid.UUID) ([]model.Lancamento, error) {
	var ls []model.Lancamento
	err := r.db.WithContext(ctx).
		Where("gerente_id = ?", gerenteID).
		Order("criado_em ASC, id ASC").
		Find(&ls).Error
	return ls, err
}

func (r *lancamentoRepo) FindByExternalID(ctx context.Context, externalID string) (*model.Lancamento, error) {
	var l model.Lancamento
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
