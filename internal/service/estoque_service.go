package service

import (
	"context"
	"fmt"

	"github.com/Jizar07/cabradapeste-sub002/internal/apierror"
	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/model"
	"github.com/Jizar07/cabradapeste-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// QuantidadeFonte reads current item quantities published by the inventory
// collaborator (redis mirror in production, map fake in tests).
type QuantidadeFonte interface {
	Quantidades(ctx context.Context) (map[string]int, error)
}

type EstoqueService interface {
	CriarConfig(ctx context.Context, req dto.EstoqueConfigRequest) (*dto.EstoqueConfigResponse, error)
	AtualizarConfig(ctx context.Context, id uuid.UUID, req dto.EstoqueConfigRequest) (*dto.EstoqueConfigResponse, error)
	RemoverConfig(ctx context.Context, id uuid.UUID) error
	ListarConfigs(ctx context.Context, somenteAtivos bool) ([]dto.EstoqueConfigResponse, error)
	// ListarAvisos derives stock warnings for every active config against the
	// live quantity mirror. ok items are omitted.
	ListarAvisos(ctx context.Context) ([]dto.AvisoEstoqueResponse, error)
}

type estoqueService struct {
	repo        repository.EstoqueConfigRepository
	quantidades QuantidadeFonte
	vistos      VistosStore
}

func NewEstoqueService(repo repository.EstoqueConfigRepository, quantidades QuantidadeFonte, vistos VistosStore) EstoqueService {
	return &estoqueService{repo: repo, quantidades: quantidades, vistos: vistos}
}

// ── Config CRUD ───────────────────────────────────────────────────────────────

func (s *estoqueService) CriarConfig(ctx context.Context, req dto.EstoqueConfigRequest) (*dto.EstoqueConfigResponse, error) {
	if err := validarLimites(req); err != nil {
		return nil, err
	}
	if existente, err := s.repo.FindByItemID(ctx, req.ItemID); err != nil {
		return nil, err
	} else if existente != nil {
		return nil, apierror.Inconsistencia("item %s ja possui configuracao", req.ItemID)
	}

	c := &model.EstoqueConfig{
		ItemID:        req.ItemID,
		Nome:          req.Nome,
		Categoria:     model.Categoria(req.Categoria),
		Minimo:        req.Minimo,
		Maximo:        req.Maximo,
		PrecoUnitario: req.PrecoUnitario,
		Ativo:         true,
	}
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := paraEstoqueConfigResponse(c)
	return &resp, nil
}

func (s *estoqueService) AtualizarConfig(ctx context.Context, id uuid.UUID, req dto.EstoqueConfigRequest) (*dto.EstoqueConfigResponse, error) {
	if err := validarLimites(req); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NaoEncontrado("configuracao de estoque", id.String())
	}

	c.ItemID = req.ItemID
	c.Nome = req.Nome
	c.Categoria = model.Categoria(req.Categoria)
	c.Minimo = req.Minimo
	c.Maximo = req.Maximo
	c.PrecoUnitario = req.PrecoUnitario
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := paraEstoqueConfigResponse(c)
	return &resp, nil
}

func (s *estoqueService) RemoverConfig(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NaoEncontrado("configuracao de estoque", id.String())
	}
	return s.repo.Delete(ctx, id)
}

func (s *estoqueService) ListarConfigs(ctx context.Context, somenteAtivos bool) ([]dto.EstoqueConfigResponse, error) {
	cs, err := s.repo.List(ctx, somenteAtivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EstoqueConfigResponse, 0, len(cs))
	for i := range cs {
		out = append(out, paraEstoqueConfigResponse(&cs[i]))
	}
	return out, nil
}

// ── Warnings ──────────────────────────────────────────────────────────────────

func (s *estoqueService) ListarAvisos(ctx context.Context) ([]dto.AvisoEstoqueResponse, error) {
	configs, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	quantidades, err := s.quantidades.Quantidades(ctx)
	if err != nil {
		return nil, apierror.Integracao("ler quantidades de estoque", err)
	}

	avisos := []dto.AvisoEstoqueResponse{}
	for i := range configs {
		c := &configs[i]
		// Items the collaborator never reported count as zero stock.
		atual := quantidades[c.ItemID]
		status := StatusEstoque(atual, c.Minimo)
		if status == StatusOK {
			continue
		}
		reposicao := SugestaoReposicao(atual, c.Maximo)
		aviso := dto.AvisoEstoqueResponse{
			ItemID:        c.ItemID,
			Nome:          c.Nome,
			Status:        status,
			Atual:         atual,
			Minimo:        c.Minimo,
			Maximo:        c.Maximo,
			Reposicao:     reposicao,
			CustoEstimado: CustoReposicao(reposicao, c.PrecoUnitario),
			Fingerprint:   fmt.Sprintf("estoque:%s:%s:%d", c.ItemID, status, atual),
		}
		if s.vistos != nil {
			visto, err := s.vistos.Visto(ctx, aviso.Fingerprint)
			if err != nil {
				log.Warn().Err(err).Str("fingerprint", aviso.Fingerprint).Msg("falha ao ler flag de visto")
			}
			aviso.Visto = visto
		}
		avisos = append(avisos, aviso)
	}
	return avisos, nil
}

func validarLimites(req dto.EstoqueConfigRequest) error {
	if req.Minimo >= req.Maximo {
		return apierror.Validacao("minimo (%d) deve ser menor que maximo (%d)", req.Minimo, req.Maximo)
	}
	return nil
}

func paraEstoqueConfigResponse(c *model.EstoqueConfig) dto.EstoqueConfigResponse {
	return dto.EstoqueConfigResponse{
		ID:            c.ID.String(),
		ItemID:        c.ItemID,
		Nome:          c.Nome,
		Categoria:     string(c.Categoria),
		Minimo:        c.Minimo,
		Maximo:        c.Maximo,
		PrecoUnitario: c.PrecoUnitario,
		Ativo:         c.Ativo,
	}
}
