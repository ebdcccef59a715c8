package services

import (
	"errors"
	"time"

	"github.com/consultly-app/consultly/internal/models"
	"github.com/consultly-app/consultly/pkg/response"
	"gorm.io/gorm"
)

// SummaryService computes point-in-time financial snapshots for a project.
// This is a read-only aggregation path: sums are re-derived from the
// entries, independent of the stored totals on the project row.
type SummaryService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{db: db, now: time.Now}
}

// FinancialSummary is a flat snapshot of a project's finances.
type FinancialSummary struct {
	ProjectID            uint    `json:"project_id"`
	AgreedAmount         float64 `json:"agreed_amount"`
	TotalIncome          float64 `json:"total_income"`
	TotalExpenses        float64 `json:"total_expenses"`
	IncomeCurrentMonth   float64 `json:"income_current_month"`
	ExpensesCurrentMonth float64 `json:"expenses_current_month"`
	RemainingExpenses    float64 `json:"remaining_expenses"`
	RemainingIncome      float64 `json:"remaining_income"`
	TotalProfit          float64 `json:"total_profit"`
	CurrentMonthProfit   float64 `json:"current_month_profit"`
	ExpensesPercentage   float64 `json:"expenses_percentage"`
	IncomePercentage     float64 `json:"income_percentage"`
}

// ProjectSummary aggregates lifetime and current-calendar-month figures for
// one project. Percentages with a zero divisor are reported as 0 rather
// than NaN or infinity.
func (s *SummaryService) ProjectSummary(projectID uint) (*FinancialSummary, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	totalIncome, err := s.sumAmounts(&models.IncomeEntry{}, projectID, nil, nil)
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.sumAmounts(&models.ExpenseEntry{}, projectID, nil, nil)
	if err != nil {
		return nil, err
	}
	incomeMonth, err := s.sumAmounts(&models.IncomeEntry{}, projectID, &monthStart, &monthEnd)
	if err != nil {
		return nil, err
	}
	expensesMonth, err := s.sumAmounts(&models.ExpenseEntry{}, projectID, &monthStart, &monthEnd)
	if err != nil {
		return nil, err
	}

	return &FinancialSummary{
		ProjectID:            project.ID,
		AgreedAmount:         project.AgreedAmount,
		TotalIncome:          totalIncome,
		TotalExpenses:        totalExpenses,
		IncomeCurrentMonth:   incomeMonth,
		ExpensesCurrentMonth: expensesMonth,
		RemainingExpenses:    totalIncome - totalExpenses,
		RemainingIncome:      project.AgreedAmount - totalIncome,
		TotalProfit:          totalIncome - totalExpenses,
		CurrentMonthProfit:   incomeMonth - expensesMonth,
		ExpensesPercentage:   percentage(totalExpenses, totalIncome),
		IncomePercentage:     percentage(totalIncome, project.AgreedAmount),
	}, nil
}

func (s *SummaryService) sumAmounts(model interface{}, projectID uint, from, to *time.Time) (float64, error) {
	query := s.db.Model(model).Where("project_id = ?", projectID)
	if from != nil && to != nil {
		query = query.Where("date >= ? AND date < ?", *from, *to)
	}

	var total float64
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
