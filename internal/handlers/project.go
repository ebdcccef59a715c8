package handlers

import (
	"github.com/consultly-app/consultly/internal/middleware"
	"github.com/consultly-app/consultly/internal/services"
	"github.com/consultly-app/consultly/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	project, err := h.projects.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project, "project created")
}

// List returns projects scoped by the caller's role.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(middleware.GetRole(c), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects, "ok")
}

func (h *ProjectHandler) StatusCount(c *gin.Context) {
	counts, err := h.projects.StatusCount()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, counts, "ok")
}

func (h *ProjectHandler) Names(c *gin.Context) {
	names, err := h.projects.Names()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, names, "ok")
}

// Allocated returns the projects a given user is staffed on.
func (h *ProjectHandler) Allocated(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	projects, err := h.projects.AllocatedForUser(userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects, "ok")
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projects.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project, "ok")
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	project, err := h.projects.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project, "project updated")
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	if err := h.projects.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "project deleted")
}
