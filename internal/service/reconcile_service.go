package service

import (
	"context"

	"github.com/Jizar07/cabradapeste-sub002/internal/apierror"
	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/model"
	"github.com/Jizar07/cabradapeste-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ResultadoIngestao tells the sync gateway what one activity became.
type ResultadoIngestao int

const (
	IngestaoCriada ResultadoIngestao = iota
	IngestaoExcluida
	IngestaoDuplicada
)

type ReconcileService interface {
	// IngerirAtividade converts one feed activity into durable state:
	// categorized mirror row always, ledger entry when the activity is
	// monetary. Idempotent — a repeated external id is a no-op.
	IngerirAtividade(ctx context.Context, a model.AtividadeExterna) (ResultadoIngestao, error)
	// Estornar reverses one paid activity (gerente + categoria + atividade id).
	Estornar(ctx context.Context, req dto.EstornoRequest) (*dto.LancamentoResponse, error)
	// EstornarTodos reverses every still-paid entry of the categoria.
	EstornarTodos(ctx context.Context, req dto.EstornoTodosRequest) (*dto.EstornoTodosResponse, error)
}

type reconcileService struct {
	lancamentos repository.LancamentoRepository
	atividades  repository.AtividadeRepository
	gerentes    repository.GerenteRepository
	locks       *GerenteLocks
	ledger      LedgerService
}

func NewReconcileService(
	lancamentos repository.LancamentoRepository,
	atividades repository.AtividadeRepository,
	gerentes repository.GerenteRepository,
	locks *GerenteLocks,
	ledger LedgerService,
) ReconcileService {
	return &reconcileService{
		lancamentos: lancamentos,
		atividades:  atividades,
		gerentes:    gerentes,
		locks:       locks,
		ledger:      ledger,
	}
}

// ── Ingestion ─────────────────────────────────────────────────────────────────

func (s *reconcileService) IngerirAtividade(ctx context.Context, a model.AtividadeExterna) (ResultadoIngestao, error) {
	if a.ExternalID == "" {
		return 0, apierror.Validacao("atividade sem external_id")
	}
	if a.Autor == "" || a.Tipo == "" {
		return 0, apierror.Validacao("atividade %s malformada: autor e tipo sao obrigatorios", a.ExternalID)
	}

	gerente, err := s.gerentes.FindByNome(ctx, a.Autor)
	if err != nil {
		return 0, err
	}
	if gerente == nil {
		return 0, apierror.NaoEncontrado("gerente", a.Autor)
	}

	unlock := s.locks.Lock(gerente.ID)
	defer unlock()

	// Dedupe against the mirror first: it anchors even activities that never
	// produce a ledger entry, so re-polls of the feed stay idempotent.
	existe, err := s.atividades.ExistsByExternalID(ctx, a.ExternalID)
	if err != nil {
		return 0, err
	}
	if existe {
		return IngestaoDuplicada, nil
	}
	if l, err := s.lancamentos.FindByExternalID(ctx, a.ExternalID); err != nil {
		return 0, err
	} else if l != nil {
		return IngestaoDuplicada, nil
	}

	categoria := Categorizar(a)
	l, err := s.montarLancamento(gerente.ID, a, categoria)
	if err != nil {
		return 0, err
	}
	mirror := &model.Atividade{
		ExternalID:   a.ExternalID,
		Autor:        a.Autor,
		Tipo:         a.Tipo,
		Item:         a.Item,
		Quantidade:   a.Quantidade,
		Valor:        a.Valor,
		Categoria:    categoria,
		Automatica:   a.Automatica,
		Descricao:    a.Descricao,
		RegistradoEm: a.RegistradoEm,
	}
	// One transaction for both rows. A mirror row surviving a failed append
	// would make every retry a dedupe hit and the entry unrecoverable.
	if err := s.atividades.CreateComLancamento(ctx, mirror, l); err != nil {
		return 0, err
	}
	if l == nil {
		// Non-monetary activity: mirror row only.
		return IngestaoCriada, nil
	}
	if err := s.ledger.AvaliarAlerta(ctx, gerente); err != nil {
		log.Warn().Err(err).Str("gerente", gerente.Nome).Msg("falha ao avaliar alerta de passivo")
	}
	if l.Tipo == model.TipoDepositoExcluido {
		return IngestaoExcluida, nil
	}
	return IngestaoCriada, nil
}

// montarLancamento maps a monetary activity to its ledger entry; nil for
// activities that only move items.
func (s *reconcileService) montarLancamento(gerenteID uuid.UUID, a model.AtividadeExterna, categoria model.Categoria) (*model.Lancamento, error) {
	if a.Valor == nil || a.Valor.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	motivo := a.Descricao
	if motivo == "" {
		motivo = "atividade sincronizada " + a.ExternalID
	}

	var l *model.Lancamento
	var err error
	switch a.Tipo {
	case "deposit":
		l, err = model.NovoDeposito(gerenteID, *a.Valor, motivo, categoria, a.Automatica)
	case "withdraw":
		l, err = model.NovaRetirada(gerenteID, *a.Valor, motivo)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	externalID := a.ExternalID
	l.ExternalID = &externalID
	return l, nil
}

// ── Reversals ─────────────────────────────────────────────────────────────────

func (s *reconcileService) Estornar(ctx context.Context, req dto.EstornoRequest) (*dto.LancamentoResponse, error) {
	gerente, err := s.resolverGerente(ctx, req.GerenteID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(gerente.ID)
	defer unlock()

	pagos, err := s.pagamentosAtivos(ctx, gerente.ID, model.Categoria(req.Categoria))
	if err != nil {
		return nil, err
	}
	var alvo *model.Lancamento
	for i := range pagos {
		if pagos[i].AtividadeID != nil && *pagos[i].AtividadeID == req.AtividadeID {
			alvo = pagos[i]
			break
		}
	}
	if alvo == nil {
		return nil, apierror.Validacao("nenhum pagamento ativo para atividade %s na categoria %s", req.AtividadeID, req.Categoria)
	}

	estorno, err := s.estornarUm(ctx, gerente, alvo)
	if err != nil {
		return nil, err
	}
	resp := paraLancamentoResponse(estorno)
	return &resp, nil
}

func (s *reconcileService) EstornarTodos(ctx context.Context, req dto.EstornoTodosRequest) (*dto.EstornoTodosResponse, error) {
	gerente, err := s.resolverGerente(ctx, req.GerenteID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(gerente.ID)
	defer unlock()

	pagos, err := s.pagamentosAtivos(ctx, gerente.ID, model.Categoria(req.Categoria))
	if err != nil {
		return nil, err
	}
	resp := &dto.EstornoTodosResponse{Valor: decimal.Zero}
	for _, p := range pagos {
		if _, err := s.estornarUm(ctx, gerente, p); err != nil {
			return nil, err
		}
		resp.Estornados++
		resp.Valor = resp.Valor.Add(p.Valor)
	}
	return resp, nil
}

// pagamentosAtivos returns the gerente's pagamentos of the categoria that no
// estorno has reversed yet. Each pagamento is reversible at most once.
func (s *reconcileService) pagamentosAtivos(ctx context.Context, gerenteID uuid.UUID, categoria model.Categoria) ([]*model.Lancamento, error) {
	ls, err := s.lancamentos.ListByGerente(ctx, gerenteID)
	if err != nil {
		return nil, err
	}
	estornados := map[uuid.UUID]bool{}
	for i := range ls {
		if ls[i].Tipo == model.TipoEstorno && ls[i].EstornoDeID != nil {
			estornados[*ls[i].EstornoDeID] = true
		}
	}
	var pagos []*model.Lancamento
	for i := range ls {
		l := &ls[i]
		if l.Tipo == model.TipoPagamento && l.Categoria == categoria && !estornados[l.ID] {
			pagos = append(pagos, l)
		}
	}
	return pagos, nil
}

func (s *reconcileService) estornarUm(ctx context.Context, gerente *model.Gerente, pagamento *model.Lancamento) (*model.Lancamento, error) {
	estorno, err := model.NovoEstorno(pagamento, "estorno de pagamento "+pagamento.ID.String())
	if err != nil {
		return nil, err
	}
	if err := s.lancamentos.Append(ctx, estorno); err != nil {
		return nil, err
	}
	log.Info().
		Str("gerente", gerente.Nome).
		Str("pagamento", pagamento.ID.String()).
		Str("valor", pagamento.Valor.StringFixed(2)).
		Msg("pagamento estornado")
	if err := s.ledger.AvaliarAlerta(ctx, gerente); err != nil {
		log.Warn().Err(err).Str("gerente", gerente.Nome).Msg("falha ao avaliar alerta de passivo")
	}
	return estorno, nil
}

func (s *reconcileService) resolverGerente(ctx context.Context, raw string) (*model.Gerente, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apierror.Validacao("gerente_id invalido: %s", raw)
	}
	g, err := s.gerentes.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NaoEncontrado("gerente", raw)
	}
	return g, nil
}
