package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Jizar07/cabradapeste-sub002/internal/apierror"
	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EnfileiradorRelatorio enqueues a money-flow report job for the worker pool.
type EnfileiradorRelatorio interface {
	EnqueueRelatorio(ctx context.Context, gerenteID string, dias int, email string) error
}

// MarcadorVistos persists alert acknowledgments.
type MarcadorVistos interface {
	MarcarVisto(ctx context.Context, fingerprint string) error
}

type LedgerHandler struct {
	ledger     service.LedgerService
	reconcile  service.ReconcileService
	relatorios EnfileiradorRelatorio
	vistos     MarcadorVistos
}

func NewLedgerHandler(
	ledger service.LedgerService,
	reconcile service.ReconcileService,
	relatorios EnfileiradorRelatorio,
	vistos MarcadorVistos,
) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, reconcile: reconcile, relatorios: relatorios, vistos: vistos}
}

// RegistrarRetirada godoc
// @Summary Registra uma retirada de dinheiro por um gerente
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RetiradaRequest true "Dados da retirada"
// @Success 201 {object} dto.LancamentoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/ledger/retiradas [post]
func (h *LedgerHandler) RegistrarRetirada(c *gin.Context) {
	var req dto.RetiradaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.RegistrarRetirada(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarDeposito godoc
// @Summary Registra um deposito de um gerente
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.DepositoRequest true "Dados do deposito"
// @Success 201 {object} dto.DepositoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/ledger/depositos [post]
func (h *LedgerHandler) RegistrarDeposito(c *gin.Context) {
	var req dto.DepositoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.RegistrarDeposito(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarPagamento godoc
// @Summary Registra um pagamento a trabalhador
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PagamentoRequest true "Dados do pagamento"
// @Success 201 {object} dto.LancamentoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/ledger/pagamentos [post]
func (h *LedgerHandler) RegistrarPagamento(c *gin.Context) {
	var req dto.PagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.RegistrarPagamento(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Estornar godoc
// @Summary Estorna um pagamento pago de uma atividade
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EstornoRequest true "Alvo do estorno"
// @Success 201 {object} dto.LancamentoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/ledger/estornos [post]
func (h *LedgerHandler) Estornar(c *gin.Context) {
	var req dto.EstornoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.reconcile.Estornar(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EstornarTodos godoc
// @Summary Estorna todos os pagamentos pagos de uma categoria
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EstornoTodosRequest true "Gerente e categoria"
// @Success 200 {object} dto.EstornoTodosResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/ledger/estornos/todos [post]
func (h *LedgerHandler) EstornarTodos(c *gin.Context) {
	var req dto.EstornoTodosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.reconcile.EstornarTodos(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Passivo godoc
// @Summary Calcula o passivo corrente de um gerente
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do gerente"
// @Success 200 {object} dto.PassivoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/gerentes/{id}/passivo [get]
func (h *LedgerHandler) Passivo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.ledger.CalcularPassivo(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetarPassivo godoc
// @Summary Reseta o passivo de um gerente para uma baseline (somente administrador)
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do gerente"
// @Param body body dto.ResetPassivoRequest true "Baseline e motivo"
// @Success 201 {object} dto.LancamentoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/gerentes/{id}/passivo/reset [post]
func (h *LedgerHandler) ResetarPassivo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ResetPassivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.ResetarPassivo(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fluxo godoc
// @Summary Retorna o fluxo financeiro dos ultimos N dias
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do gerente"
// @Param dias query int false "Janela em dias (default 7, max 90)"
// @Success 200 {object} dto.FluxoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/gerentes/{id}/fluxo [get]
func (h *LedgerHandler) Fluxo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	dias, err := strconv.Atoi(c.DefaultQuery("dias", "7"))
	if err != nil || dias < 1 || dias > 90 {
		c.JSON(http.StatusBadRequest, apierror.New("dias deve estar entre 1 e 90"))
		return
	}
	resp, err := h.ledger.RelatorioFluxo(c.Request.Context(), id, dias)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SolicitarRelatorio godoc
// @Summary Enfileira a geracao do relatorio PDF de fluxo
// @Tags ledger
// @Accept json
// @Security BearerAuth
// @Param id path string true "ID do gerente"
// @Param body body dto.RelatorioPDFRequest true "Janela e destinatario opcional"
// @Success 202
// @Failure 400 {object} apierror.APIError
// @Router /v1/gerentes/{id}/relatorio [post]
func (h *LedgerHandler) SolicitarRelatorio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RelatorioPDFRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.relatorios.EnqueueRelatorio(c.Request.Context(), id.String(), req.Dias, req.Email); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// AlertasPassivo godoc
// @Summary Lista alertas de passivo acima do limiar
// @Tags alertas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AlertaPassivoResponse
// @Router /v1/alertas/passivos [get]
func (h *LedgerHandler) AlertasPassivo(c *gin.Context) {
	resp, err := h.ledger.ListarAlertasPassivo(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarcarAlertaVisto godoc
// @Summary Marca um alerta como visto pelo fingerprint
// @Tags alertas
// @Accept json
// @Security BearerAuth
// @Param body body dto.MarcarVistoRequest true "Fingerprint do alerta"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/alertas/vistos [post]
func (h *LedgerHandler) MarcarAlertaVisto(c *gin.Context) {
	var req dto.MarcarVistoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.vistos.MarcarVisto(c.Request.Context(), req.Fingerprint); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
