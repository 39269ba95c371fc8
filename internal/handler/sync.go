package handler

import (
	"net/http"

	"github.com/Jizar07/cabradapeste-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct{ svc service.SyncService }

func NewSyncHandler(svc service.SyncService) *SyncHandler { return &SyncHandler{svc: svc} }

// Sincronizar godoc
// @Summary Dispara um ciclo completo de sincronizacao com o feed de atividades
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SyncResumo
// @Router /v1/sync [post]
func (h *SyncHandler) Sincronizar(c *gin.Context) {
	// Re-running is always safe: ingestion dedupe makes the cycle idempotent,
	// and a dead feed degrades to an empty summary.
	resumo, err := h.svc.SincronizarTudo(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resumo)
}
