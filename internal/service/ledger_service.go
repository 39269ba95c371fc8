package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Jizar07/cabradapeste-sub002/internal/apierror"
	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/model"
	"github.com/Jizar07/cabradapeste-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// NotificadorAlertas enqueues a liability alert for asynchronous delivery.
// nil is accepted everywhere a notifier is optional (tests, CLI tools).
type NotificadorAlertas interface {
	EnqueueAlerta(ctx context.Context, alerta dto.AlertaPassivoResponse) error
}

// VistosStore answers whether an alert fingerprint was already acknowledged.
type VistosStore interface {
	Visto(ctx context.Context, fingerprint string) (bool, error)
}

type LedgerService interface {
	RegistrarRetirada(ctx context.Context, req dto.RetiradaRequest) (*dto.LancamentoResponse, error)
	RegistrarDeposito(ctx context.Context, req dto.DepositoRequest) (*dto.DepositoResponse, error)
	RegistrarPagamento(ctx context.Context, req dto.PagamentoRequest) (*dto.LancamentoResponse, error)
	// CalcularPassivo folds the gerente's full entry set. Point-in-time
	// snapshot — callers must not cache it across mutations.
	CalcularPassivo(ctx context.Context, gerenteID uuid.UUID) (*dto.PassivoResponse, error)
	// ResetarPassivo appends a corrective entry bringing the liability to the
	// requested baseline. History is never rewritten.
	ResetarPassivo(ctx context.Context, gerenteID uuid.UUID, req dto.ResetPassivoRequest) (*dto.LancamentoResponse, error)
	RelatorioFluxo(ctx context.Context, gerenteID uuid.UUID, dias int) (*dto.FluxoResponse, error)
	ListarAlertasPassivo(ctx context.Context) ([]dto.AlertaPassivoResponse, error)

	// avaliarAlerta hooks live on the exported surface because the reconcile
	// service reuses the exact same post-mutation evaluation.
	AvaliarAlerta(ctx context.Context, gerente *model.Gerente) error
}

type ledgerService struct {
	repo        repository.LancamentoRepository
	gerentes    repository.GerenteRepository
	locks       *GerenteLocks
	limiar      decimal.Decimal
	notificador NotificadorAlertas
	vistos      VistosStore
}

func NewLedgerService(
	repo repository.LancamentoRepository,
	gerentes repository.GerenteRepository,
	locks *GerenteLocks,
	limiarGlobal decimal.Decimal,
	notificador NotificadorAlertas,
	vistos VistosStore,
) LedgerService {
	return &ledgerService{
		repo:        repo,
		gerentes:    gerentes,
		locks:       locks,
		limiar:      limiarGlobal,
		notificador: notificador,
		vistos:      vistos,
	}
}

// ── Mutations ─────────────────────────────────────────────────────────────────

func (s *ledgerService) RegistrarRetirada(ctx context.Context, req dto.RetiradaRequest) (*dto.LancamentoResponse, error) {
	gerente, err := s.resolverGerente(ctx, req.GerenteID)
	if err != nil {
		return nil, err
	}
	l, err := model.NovaRetirada(gerente.ID, req.Valor, req.Motivo)
	if err != nil {
		return nil, err
	}
	if err := s.appendEAvaliar(ctx, gerente, l); err != nil {
		return nil, err
	}
	resp := paraLancamentoResponse(l)
	return &resp, nil
}

func (s *ledgerService) RegistrarDeposito(ctx context.Context, req dto.DepositoRequest) (*dto.DepositoResponse, error) {
	gerente, err := s.resolverGerente(ctx, req.GerenteID)
	if err != nil {
		return nil, err
	}
	l, err := model.NovoDeposito(gerente.ID, req.Valor, req.Motivo, model.Categoria(req.Categoria), req.Automatico)
	if err != nil {
		return nil, err
	}
	if err := s.appendEAvaliar(ctx, gerente, l); err != nil {
		return nil, err
	}
	return &dto.DepositoResponse{
		Lancamento: paraLancamentoResponse(l),
		Excluido:   l.Tipo == model.TipoDepositoExcluido,
	}, nil
}

func (s *ledgerService) RegistrarPagamento(ctx context.Context, req dto.PagamentoRequest) (*dto.LancamentoResponse, error) {
	gerente, err := s.resolverGerente(ctx, req.GerenteID)
	if err != nil {
		return nil, err
	}

	var retiradaID *uuid.UUID
	if req.RetiradaID != nil {
		id, err := uuid.Parse(*req.RetiradaID)
		if err != nil {
			return nil, apierror.Validacao("retirada_id invalido: %s", *req.RetiradaID)
		}
		retiradaID = &id
	}

	l, err := model.NovoPagamento(gerente.ID, req.TrabalhadorID, req.Valor, model.Categoria(req.Categoria), retiradaID, req.AtividadeID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(gerente.ID)
	defer unlock()

	// An attributed payment must reference one of this gerente's withdrawals.
	// Unattributed payments debit the pooled liability.
	if retiradaID != nil {
		if err := s.validarRetirada(ctx, gerente.ID, *retiradaID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Append(ctx, l); err != nil {
		return nil, err
	}
	if err := s.AvaliarAlerta(ctx, gerente); err != nil {
		log.Warn().Err(err).Str("gerente", gerente.Nome).Msg("falha ao avaliar alerta de passivo")
	}
	resp := paraLancamentoResponse(l)
	return &resp, nil
}

func (s *ledgerService) ResetarPassivo(ctx context.Context, gerenteID uuid.UUID, req dto.ResetPassivoRequest) (*dto.LancamentoResponse, error) {
	gerente, err := s.gerentes.FindByID(ctx, gerenteID)
	if err != nil {
		return nil, apierror.NaoEncontrado("gerente", gerenteID.String())
	}

	unlock := s.locks.Lock(gerente.ID)
	defer unlock()

	atual, err := s.foldPassivo(ctx, gerente.ID)
	if err != nil {
		return nil, err
	}
	delta := req.Baseline.Sub(atual.Total)
	if delta.IsZero() {
		return nil, apierror.Inconsistencia("passivo ja esta na baseline %s", req.Baseline.StringFixed(2))
	}

	motivo := fmt.Sprintf("reset de passivo para %s: %s", req.Baseline.StringFixed(2), req.Motivo)
	l, err := model.NovoAjuste(gerente.ID, delta, motivo)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Append(ctx, l); err != nil {
		return nil, err
	}
	log.Info().
		Str("gerente", gerente.Nome).
		Str("baseline", req.Baseline.StringFixed(2)).
		Str("delta", delta.StringFixed(2)).
		Msg("passivo resetado")

	if err := s.AvaliarAlerta(ctx, gerente); err != nil {
		log.Warn().Err(err).Str("gerente", gerente.Nome).Msg("falha ao avaliar alerta de passivo")
	}
	resp := paraLancamentoResponse(l)
	return &resp, nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *ledgerService) CalcularPassivo(ctx context.Context, gerenteID uuid.UUID) (*dto.PassivoResponse, error) {
	if _, err := s.gerentes.FindByID(ctx, gerenteID); err != nil {
		return nil, apierror.NaoEncontrado("gerente", gerenteID.String())
	}
	return s.foldPassivo(ctx, gerenteID)
}

func (s *ledgerService) RelatorioFluxo(ctx context.Context, gerenteID uuid.UUID, dias int) (*dto.FluxoResponse, error) {
	if _, err := s.gerentes.FindByID(ctx, gerenteID); err != nil {
		return nil, apierror.NaoEncontrado("gerente", gerenteID.String())
	}
	todos, err := s.repo.ListByGerente(ctx, gerenteID)
	if err != nil {
		return nil, err
	}

	corte := time.Now().AddDate(0, 0, -dias)
	resp := &dto.FluxoResponse{
		GerenteID:          gerenteID.String(),
		Dias:               dias,
		Lancamentos:        []dto.LancamentoResponse{},
		TotaisPorCategoria: map[string]decimal.Decimal{},
		TotalRetiradas:     decimal.Zero,
		TotalDepositos:     decimal.Zero,
		TotalPagamentos:    decimal.Zero,
	}
	passivo := decimal.Zero
	for i := range todos {
		l := &todos[i]
		passivo = passivo.Add(l.Efeito())
		if l.CriadoEm.Before(corte) {
			continue
		}
		resp.Lancamentos = append(resp.Lancamentos, paraLancamentoResponse(l))
		cat := string(l.Categoria)
		resp.TotaisPorCategoria[cat] = resp.TotaisPorCategoria[cat].Add(l.Valor)
		switch l.Tipo {
		case model.TipoRetirada:
			resp.TotalRetiradas = resp.TotalRetiradas.Add(l.Valor)
		case model.TipoDeposito, model.TipoDepositoExcluido:
			resp.TotalDepositos = resp.TotalDepositos.Add(l.Valor)
		case model.TipoPagamento:
			resp.TotalPagamentos = resp.TotalPagamentos.Add(l.Valor)
		}
	}
	resp.Passivo = passivo
	return resp, nil
}

func (s *ledgerService) ListarAlertasPassivo(ctx context.Context) ([]dto.AlertaPassivoResponse, error) {
	gerentes, err := s.gerentes.List(ctx, false)
	if err != nil {
		return nil, err
	}
	alertas := []dto.AlertaPassivoResponse{}
	for i := range gerentes {
		g := &gerentes[i]
		passivo, err := s.foldPassivo(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		limiar := s.limiarEfetivo(g)
		if !PassivoAcimaDoLimiar(passivo.Total, limiar) {
			continue
		}
		alerta := s.montarAlerta(g, passivo.Total, limiar)
		if s.vistos != nil {
			visto, err := s.vistos.Visto(ctx, alerta.Fingerprint)
			if err != nil {
				log.Warn().Err(err).Str("fingerprint", alerta.Fingerprint).Msg("falha ao ler flag de visto")
			}
			alerta.Visto = visto
		}
		alertas = append(alertas, alerta)
	}
	return alertas, nil
}

// ── Post-mutation alert evaluation ────────────────────────────────────────────

// AvaliarAlerta recomputes the gerente's liability and enqueues a notification
// when it crosses the effective threshold. Callers hold the gerente lock.
func (s *ledgerService) AvaliarAlerta(ctx context.Context, gerente *model.Gerente) error {
	passivo, err := s.foldPassivo(ctx, gerente.ID)
	if err != nil {
		return err
	}
	limiar := s.limiarEfetivo(gerente)
	if !PassivoAcimaDoLimiar(passivo.Total, limiar) {
		return nil
	}
	log.Warn().
		Str("gerente", gerente.Nome).
		Str("passivo", passivo.Total.StringFixed(2)).
		Str("limiar", limiar.StringFixed(2)).
		Msg("passivo acima do limiar")
	if s.notificador == nil {
		return nil
	}
	return s.notificador.EnqueueAlerta(ctx, s.montarAlerta(gerente, passivo.Total, limiar))
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *ledgerService) resolverGerente(ctx context.Context, raw string) (*model.Gerente, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apierror.Validacao("gerente_id invalido: %s", raw)
	}
	g, err := s.gerentes.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NaoEncontrado("gerente", raw)
	}
	if !g.Ativo {
		return nil, apierror.Validacao("gerente %s esta inativo", g.Nome)
	}
	return g, nil
}

// appendEAvaliar runs the canonical mutation sequence under the gerente lock:
// append, then recompute so dependent alerts stay current.
func (s *ledgerService) appendEAvaliar(ctx context.Context, gerente *model.Gerente, l *model.Lancamento) error {
	unlock := s.locks.Lock(gerente.ID)
	defer unlock()

	if err := s.repo.Append(ctx, l); err != nil {
		return err
	}
	if err := s.AvaliarAlerta(ctx, gerente); err != nil {
		log.Warn().Err(err).Str("gerente", gerente.Nome).Msg("falha ao avaliar alerta de passivo")
	}
	return nil
}

func (s *ledgerService) validarRetirada(ctx context.Context, gerenteID, retiradaID uuid.UUID) error {
	ls, err := s.repo.ListByGerente(ctx, gerenteID)
	if err != nil {
		return err
	}
	for i := range ls {
		if ls[i].ID == retiradaID && ls[i].Tipo == model.TipoRetirada {
			return nil
		}
	}
	return apierror.Inconsistencia("retirada %s nao pertence ao gerente", retiradaID)
}

func (s *ledgerService) foldPassivo(ctx context.Context, gerenteID uuid.UUID) (*dto.PassivoResponse, error) {
	ls, err := s.repo.ListByGerente(ctx, gerenteID)
	if err != nil {
		return nil, err
	}
	resp := &dto.PassivoResponse{
		GerenteID:  gerenteID.String(),
		Total:      decimal.Zero,
		Retiradas:  decimal.Zero,
		Pagamentos: decimal.Zero,
		Estornos:   decimal.Zero,
		Ajustes:    decimal.Zero,
	}
	for i := range ls {
		l := &ls[i]
		resp.Total = resp.Total.Add(l.Efeito())
		switch l.Tipo {
		case model.TipoRetirada:
			resp.Retiradas = resp.Retiradas.Add(l.Valor)
		case model.TipoPagamento:
			resp.Pagamentos = resp.Pagamentos.Add(l.Valor)
		case model.TipoEstorno:
			resp.Estornos = resp.Estornos.Add(l.Valor)
		case model.TipoAjusteCredito, model.TipoAjusteDebito:
			resp.Ajustes = resp.Ajustes.Add(l.Efeito())
		}
	}
	resp.ComputadoEm = time.Now().UTC().Format(time.RFC3339)
	return resp, nil
}

func (s *ledgerService) limiarEfetivo(g *model.Gerente) decimal.Decimal {
	if g.LimiarPassivo != nil {
		return *g.LimiarPassivo
	}
	return s.limiar
}

func (s *ledgerService) montarAlerta(g *model.Gerente, passivo, limiar decimal.Decimal) dto.AlertaPassivoResponse {
	return dto.AlertaPassivoResponse{
		GerenteID: g.ID.String(),
		Nome:      g.Nome,
		Passivo:   passivo,
		Limiar:    limiar,
		// The fingerprint changes with the liability value: a new breach after
		// acknowledgment surfaces as a fresh, unseen alert.
		Fingerprint: fmt.Sprintf("passivo:%s:%s", g.ID, passivo.StringFixed(2)),
	}
}

func paraLancamentoResponse(l *model.Lancamento) dto.LancamentoResponse {
	resp := dto.LancamentoResponse{
		ID:            l.ID.String(),
		GerenteID:     l.GerenteID.String(),
		Tipo:          string(l.Tipo),
		Valor:         l.Valor,
		Categoria:     string(l.Categoria),
		Motivo:        l.Motivo,
		TrabalhadorID: l.TrabalhadorID,
		ExternalID:    l.ExternalID,
		AtividadeID:   l.AtividadeID,
		CriadoEm:      l.CriadoEm.UTC().Format(time.RFC3339),
	}
	if l.RetiradaID != nil {
		id := l.RetiradaID.String()
		resp.RetiradaID = &id
	}
	if l.EstornoDeID != nil {
		id := l.EstornoDeID.String()
		resp.EstornoDeID = &id
	}
	return resp
}
