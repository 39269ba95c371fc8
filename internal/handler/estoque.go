package handler

import (
	"net/http"

	"github.com/Jizar07/cabradapeste-sub002/internal/apierror"
	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{svc: svc}
}

// CriarConfig godoc
// @Summary Cadastra limites de estoque para um item
// @Tags estoque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EstoqueConfigRequest true "Limites do item"
// @Success 201 {object} dto.EstoqueConfigResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/estoque/configs [post]
func (h *EstoqueHandler) CriarConfig(c *gin.Context) {
	var req dto.EstoqueConfigRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarConfig(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarConfigs godoc
// @Summary Lista configuracoes de estoque
// @Tags estoque
// @Produce json
// @Security BearerAuth
// @Param somente_ativos query bool false "Somente itens ativos"
// @Success 200 {array} dto.EstoqueConfigResponse
// @Router /v1/estoque/configs [get]
func (h *EstoqueHandler) ListarConfigs(c *gin.Context) {
	somenteAtivos := c.Query("somente_ativos") == "true"
	resp, err := h.svc.ListarConfigs(c.Request.Context(), somenteAtivos)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarConfig godoc
// @Summary Atualiza limites de estoque de um item
// @Tags estoque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da configuracao"
// @Param body body dto.EstoqueConfigRequest true "Limites do item"
// @Success 200 {object} dto.EstoqueConfigResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/estoque/configs/{id} [put]
func (h *EstoqueHandler) AtualizarConfig(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.EstoqueConfigRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarConfig(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoverConfig godoc
// @Summary Remove a configuracao de estoque de um item
// @Tags estoque
// @Security BearerAuth
// @Param id path string true "ID da configuracao"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/estoque/configs/{id} [delete]
func (h *EstoqueHandler) RemoverConfig(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.RemoverConfig(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Avisos godoc
// @Summary Lista avisos de estoque derivados das quantidades atuais
// @Tags estoque
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AvisoEstoqueResponse
// @Failure 502 {object} apierror.APIError
// @Router /v1/estoque/avisos [get]
func (h *EstoqueHandler) Avisos(c *gin.Context) {
	resp, err := h.svc.ListarAvisos(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
