package handlers

import (
	"github.com/consultly-app/consultly/internal/services"
	"github.com/consultly-app/consultly/pkg/response"
	"github.com/gin-gonic/gin"
)

type LookupHandler struct {
	lookups *services.LookupService
}

func NewLookupHandler(lookups *services.LookupService) *LookupHandler {
	return &LookupHandler{lookups: lookups}
}

func (h *LookupHandler) ListCategories(c *gin.Context) {
	categories, err := h.lookups.ListCategories()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories, "ok")
}

func (h *LookupHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	category, err := h.lookups.CreateCategory(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category, "category created")
}

func (h *LookupHandler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	category, err := h.lookups.UpdateCategory(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category, "category updated")
}

func (h *LookupHandler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.lookups.DeleteCategory(id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "category deleted")
}

func (h *LookupHandler) ListPositions(c *gin.Context) {
	positions, err := h.lookups.ListPositions()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, positions, "ok")
}

func (h *LookupHandler) CreatePosition(c *gin.Context) {
	var req services.CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	position, err := h.lookups.CreatePosition(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, position, "position created")
}

func (h *LookupHandler) UpdatePosition(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid position id")
		return
	}

	var req services.CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	position, err := h.lookups.UpdatePosition(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, position, "position updated")
}

func (h *LookupHandler) DeletePosition(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid position id")
		return
	}

	if err := h.lookups.DeletePosition(id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "position deleted")
}
