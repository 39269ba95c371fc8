package handler

import (
	"net/http"

	"github.com/Jizar07/cabradapeste-sub002/internal/apierror"
	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GerenteHandler struct{ svc service.GerenteService }

func NewGerenteHandler(svc service.GerenteService) *GerenteHandler {
	return &GerenteHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um gerente da fazenda
// @Tags gerentes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarGerenteRequest true "Dados do gerente"
// @Success 201 {object} dto.GerenteResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/gerentes [post]
func (h *GerenteHandler) Criar(c *gin.Context) {
	var req dto.CriarGerenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista gerentes
// @Tags gerentes
// @Produce json
// @Security BearerAuth
// @Param incluir_inativos query bool false "Incluir desativados"
// @Success 200 {array} dto.GerenteResponse
// @Router /v1/gerentes [get]
func (h *GerenteHandler) Listar(c *gin.Context) {
	incluirInativos := c.Query("incluir_inativos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInativos)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary Busca um gerente pelo id
// @Tags gerentes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do gerente"
// @Success 200 {object} dto.GerenteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/gerentes/{id} [get]
func (h *GerenteHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza funcao, taxa ou limiar de um gerente
// @Tags gerentes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do gerente"
// @Param body body dto.AtualizarGerenteRequest true "Campos a atualizar"
// @Success 200 {object} dto.GerenteResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/gerentes/{id} [put]
func (h *GerenteHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AtualizarGerenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desativar godoc
// @Summary Desativa um gerente (o historico do livro-razao permanece)
// @Tags gerentes
// @Security BearerAuth
// @Param id path string true "ID do gerente"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/gerentes/{id} [delete]
func (h *GerenteHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
