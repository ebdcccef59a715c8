package handlers

import (
	"github.com/consultly-app/consultly/internal/services"
	"github.com/consultly-app/consultly/pkg/response"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create registers a user and emails them a password-setup link.
func (h *UserHandler) Create(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.users.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user, "user created")
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users, "ok")
}

// Search matches users by name or email substring, case-insensitive.
func (h *UserHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "query parameter q is required")
		return
	}

	users, err := h.users.Search(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users, "ok")
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user, "ok")
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.users.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user, "user updated")
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.users.Delete(id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "user deleted")
}

func (h *UserHandler) PaymentHistory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	records, err := h.users.PaymentHistory(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, records, "ok")
}

func (h *UserHandler) AssignedProjects(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	projects, err := h.users.AssignedProjects(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects, "ok")
}
