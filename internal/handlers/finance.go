package handlers

import (
	"github.com/consultly-app/consultly/internal/services"
	"github.com/consultly-app/consultly/pkg/response"
	"github.com/gin-gonic/gin"
)

// FinanceHandler exposes the nested collections of a project (income,
// expenses, employees) and its financial summary.
type FinanceHandler struct {
	finance *services.FinanceService
	summary *services.SummaryService
}

func NewFinanceHandler(finance *services.FinanceService, summary *services.SummaryService) *FinanceHandler {
	return &FinanceHandler{finance: finance, summary: summary}
}

func (h *FinanceHandler) projectID(c *gin.Context) (uint, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid project id")
	}
	return id, ok
}

func (h *FinanceHandler) entryID(c *gin.Context) (uint, bool) {
	id, ok := idParam(c, "entryId")
	if !ok {
		response.BadRequest(c, "invalid entry id")
	}
	return id, ok
}

// --- Income ---

func (h *FinanceHandler) ListIncome(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	entries, err := h.finance.ListIncome(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries, "ok")
}

func (h *FinanceHandler) AddIncome(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	var req services.AddIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	entry, err := h.finance.AddIncome(projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry, "income entry added")
}

func (h *FinanceHandler) UpdateIncome(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}
	entryID, ok := h.entryID(c)
	if !ok {
		return
	}

	var req services.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	entry, err := h.finance.UpdateIncome(projectID, entryID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry, "income entry updated")
}

func (h *FinanceHandler) RemoveIncome(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}
	entryID, ok := h.entryID(c)
	if !ok {
		return
	}

	if err := h.finance.RemoveIncome(projectID, entryID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "income entry removed")
}

// --- Expenses ---

func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	entries, err := h.finance.ListExpenses(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries, "ok")
}

func (h *FinanceHandler) AddExpense(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	var req services.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	entry, err := h.finance.AddExpense(projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry, "expense entry added")
}

func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}
	entryID, ok := h.entryID(c)
	if !ok {
		return
	}

	var req services.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	entry, err := h.finance.UpdateExpense(projectID, entryID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry, "expense entry updated")
}

func (h *FinanceHandler) RemoveExpense(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}
	entryID, ok := h.entryID(c)
	if !ok {
		return
	}

	if err := h.finance.RemoveExpense(projectID, entryID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "expense entry removed")
}

// --- Employees ---

func (h *FinanceHandler) ListEmployees(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	assignments, err := h.finance.ListEmployees(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, assignments, "ok")
}

func (h *FinanceHandler) AddEmployee(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	var req services.AddEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	assignment, err := h.finance.AddEmployee(projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment, "employee assigned")
}

func (h *FinanceHandler) UpdateEmployee(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}
	entryID, ok := h.entryID(c)
	if !ok {
		return
	}

	var req services.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	assignment, err := h.finance.UpdateEmployee(projectID, entryID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, assignment, "employee assignment updated")
}

func (h *FinanceHandler) RemoveEmployee(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}
	entryID, ok := h.entryID(c)
	if !ok {
		return
	}

	if err := h.finance.RemoveEmployee(projectID, entryID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil, "employee removed from project")
}

// Summary returns the project's financial snapshot.
func (h *FinanceHandler) Summary(c *gin.Context) {
	projectID, ok := h.projectID(c)
	if !ok {
		return
	}

	summary, err := h.summary.ProjectSummary(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary, "ok")
}
