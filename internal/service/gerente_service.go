package service

import (
	"context"

	"github.com/Jizar07/cabradapeste-sub002/internal/apierror"
	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/model"
	"github.com/Jizar07/cabradapeste-sub002/internal/repository"

	"github.com/google/uuid"
)

type GerenteService interface {
	Criar(ctx context.Context, req dto.CriarGerenteRequest) (*dto.GerenteResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarGerenteRequest) (*dto.GerenteResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.GerenteResponse, error)
	Listar(ctx context.Context, incluirInativos bool) ([]dto.GerenteResponse, error)
	// Desativar soft-deletes: the ledger keeps referencing the gerente forever.
	Desativar(ctx context.Context, id uuid.UUID) error
}

type gerenteService struct {
	repo repository.GerenteRepository
}

func NewGerenteService(repo repository.GerenteRepository) GerenteService {
	return &gerenteService{repo: repo}
}

func (s *gerenteService) Criar(ctx context.Context, req dto.CriarGerenteRequest) (*dto.GerenteResponse, error) {
	// Nome is the feed author key — duplicates would make author resolution
	// ambiguous during sync.
	if existente, err := s.repo.FindByNome(ctx, req.Nome); err != nil {
		return nil, err
	} else if existente != nil {
		return nil, apierror.Inconsistencia("gerente %s ja cadastrado", req.Nome)
	}

	g := &model.Gerente{
		Nome:          req.Nome,
		Funcao:        req.Funcao,
		TaxaSemanal:   req.TaxaSemanal,
		LimiarPassivo: req.LimiarPassivo,
		Ativo:         true,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	resp := paraGerenteResponse(g)
	return &resp, nil
}

func (s *gerenteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarGerenteRequest) (*dto.GerenteResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NaoEncontrado("gerente", id.String())
	}

	if req.Funcao != "" {
		g.Funcao = req.Funcao
	}
	if req.TaxaSemanal != nil {
		g.TaxaSemanal = *req.TaxaSemanal
	}
	if req.LimiarPassivo != nil {
		g.LimiarPassivo = req.LimiarPassivo
	}
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	resp := paraGerenteResponse(g)
	return &resp, nil
}

func (s *gerenteService) Buscar(ctx context.Context, id uuid.UUID) (*dto.GerenteResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NaoEncontrado("gerente", id.String())
	}
	resp := paraGerenteResponse(g)
	return &resp, nil
}

func (s *gerenteService) Listar(ctx context.Context, incluirInativos bool) ([]dto.GerenteResponse, error) {
	gs, err := s.repo.List(ctx, incluirInativos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GerenteResponse, 0, len(gs))
	for i := range gs {
		out = append(out, paraGerenteResponse(&gs[i]))
	}
	return out, nil
}

func (s *gerenteService) Desativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NaoEncontrado("gerente", id.String())
	}
	return s.repo.SoftDelete(ctx, id)
}

func paraGerenteResponse(g *model.Gerente) dto.GerenteResponse {
	return dto.GerenteResponse{
		ID:            g.ID.String(),
		Nome:          g.Nome,
		Funcao:        g.Funcao,
		TaxaSemanal:   g.TaxaSemanal,
		LimiarPassivo: g.LimiarPassivo,
		Ativo:         g.Ativo,
	}
}
