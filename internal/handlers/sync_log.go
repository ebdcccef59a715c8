package handlers

import (
	"github.com/consultly-app/consultly/internal/services"
	"github.com/consultly-app/consultly/pkg/response"
	"github.com/gin-gonic/gin"
)

// SyncLogHandler exposes the reconciliation journal to administrators.
type SyncLogHandler struct {
	logs *services.SyncLogService
}

func NewSyncLogHandler(logs *services.SyncLogService) *SyncLogHandler {
	return &SyncLogHandler{logs: logs}
}

func (h *SyncLogHandler) List(c *gin.Context) {
	var req services.SyncLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.logs.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result, "ok")
}
