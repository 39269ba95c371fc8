package repository

import (
	"context"
	"errors"

	"github.com/Jizar07/cabradapeste-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EstoqueConfigRepository interface {
	Create(ctx context.Context, c *model.EstoqueConfig) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EstoqueConfig, error)
	FindByItemID(ctx context.Context, itemID string) (*model.EstoqueConfig, error)
	List(ctx context.Context, somenteAtivos bool) ([]model.EstoqueConfig, error)
	Update(ctx context.Context, c *model.EstoqueConfig) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type estoqueRepo struct{ db *gorm.DB }

func NewEstoqueConfigRepository(db *gorm.DB) EstoqueConfigRepository { return &estoqueRepo{db: db} }

func (r *estoqueRepo) Create(ctx context.Context, c *model.EstoqueConfig) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *estoqueRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EstoqueConfig, error) {
	var c model.EstoqueConfig
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *estoqueRepo) FindByItemID(ctx context.Context, itemID string) (*model.EstoqueConfig, error) {
	var c model.EstoqueConfig
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *estoqueRepo) List(ctx context.Context, somenteAtivos bool) ([]model.EstoqueConfig, error) {
	var cs []model.EstoqueConfig
	q := r.db.WithContext(ctx).Order("nome ASC")
	if somenteAtivos {
		q = q.Where("ativo = true")
	}
	err := q.Find(&cs).Error
	return cs, err
}

func (r *estoqueRepo) Update(ctx context.Context, c *model.EstoqueConfig) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *estoqueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EstoqueConfig{}, id).Error
}
