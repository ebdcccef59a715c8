package services

import (
	"testing"
	"time"
)

func TestProjectSummary_DerivedFigures(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	summary := NewSummaryService(db)
	project := createTestProject(t, db, "Figures", 1000)

	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	summary.now = func() time.Time { return now }

	lastMonth := now.AddDate(0, -1, 0)

	// Lifetime: 600 income, 250 expenses. Current month: 400 / 100.
	if _, err := finance.AddIncome(project.ID, &AddIncomeRequest{Amount: 400, Date: &now}); err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if _, err := finance.AddIncome(project.ID, &AddIncomeRequest{Amount: 200, Date: &lastMonth}); err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if _, err := finance.AddExpense(project.ID, &AddExpenseRequest{Amount: 100, Category: "Ops", Date: &now}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if _, err := finance.AddExpense(project.ID, &AddExpenseRequest{Amount: 150, Category: "Ops", Date: &lastMonth}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	got, err := summary.ProjectSummary(project.ID)
	if err != nil {
		t.Fatalf("ProjectSummary: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"TotalIncome", got.TotalIncome, 600},
		{"TotalExpenses", got.TotalExpenses, 250},
		{"IncomeCurrentMonth", got.IncomeCurrentMonth, 400},
		{"ExpensesCurrentMonth", got.ExpensesCurrentMonth, 100},
		{"RemainingExpenses", got.RemainingExpenses, 350},
		{"RemainingIncome", got.RemainingIncome, 400},
		{"TotalProfit", got.TotalProfit, 350},
		{"CurrentMonthProfit", got.CurrentMonthProfit, 300},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, expected %v", c.name, c.got, c.want)
		}
	}

	if got.ExpensesPercentage < 41.6 || got.ExpensesPercentage > 41.7 {
		t.Errorf("ExpensesPercentage = %v, expected ~41.67", got.ExpensesPercentage)
	}
	if got.IncomePercentage != 60 {
		t.Errorf("IncomePercentage = %v, expected 60", got.IncomePercentage)
	}
}

func TestProjectSummary_ZeroDivisorsYieldZero(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	summary := NewSummaryService(db)

	// No income, agreed amount zero: both percentage divisors are zero.
	project := createTestProject(t, db, "Empty", 0)
	if _, err := finance.AddExpense(project.ID, &AddExpenseRequest{Amount: 50, Category: "Ops"}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	got, err := summary.ProjectSummary(project.ID)
	if err != nil {
		t.Fatalf("ProjectSummary: %v", err)
	}
	if got.ExpensesPercentage != 0 {
		t.Errorf("ExpensesPercentage = %v, expected 0 with zero income", got.ExpensesPercentage)
	}
	if got.IncomePercentage != 0 {
		t.Errorf("IncomePercentage = %v, expected 0 with zero agreed amount", got.IncomePercentage)
	}
}

func TestProjectSummary_UnknownProject(t *testing.T) {
	db := newTestDB(t)
	summary := NewSummaryService(db)

	_, err := summary.ProjectSummary(424242)
	if appErrorStatus(t, err) != 404 {
		t.Error("summary for unknown project should be not-found")
	}
}
