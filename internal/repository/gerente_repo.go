package repository

import (
	"context"
	"errors"

	"github.com/Jizar07/cabradapeste-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GerenteRepository interface {
	Create(ctx context.Context, g *model.Gerente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gerente, error)
	// FindByNome resolves a feed author name to a gerente. (nil, nil) when absent.
	FindByNome(ctx context.Context, nome string) (*model.Gerente, error)
	List(ctx context.Context, incluirInativos bool) ([]model.Gerente, error)
	Update(ctx context.Context, g *model.Gerente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type gerenteRepo struct{ db *gorm.DB }

func NewGerenteRepository(db *gorm.DB) GerenteRepository { return &gerenteRepo{db: db} }

func (r *gerenteRepo) Create(ctx context.Context, g *model.Gerente) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gerenteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Gerente, error) {
	var g model.Gerente
	err := r.db.WithContext(ctx).First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gerenteRepo) FindByNome(ctx context.Context, nome string) (*model.Gerente, error) {
	var g model.Gerente
	err := r.db.WithContext(ctx).Where("nome = ?", nome).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gerenteRepo) List(ctx context.Context, incluirInativos bool) ([]model.Gerente, error) {
	var gs []model.Gerente
	q := r.db.WithContext(ctx).Order("nome ASC")
	if !incluirInativos {
		q = q.Where("ativo = true")
	}
	err := q.Find(&gs).Error
	return gs, err
}

func (r *gerenteRepo) Update(ctx context.Context, g *model.Gerente) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gerenteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Gerente{}).
		Where("id = ?", id).Update("ativo", false).Error
}
