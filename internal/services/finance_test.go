package services

import (
	"errors"
	"testing"

	"github.com/consultly-app/consultly/internal/models"
	"github.com/consultly-app/consultly/pkg/response"
)

func appErrorStatus(t *testing.T, err error) int {
	t.Helper()
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *response.AppError, got %T (%v)", err, err)
	}
	return appErr.HTTPStatus
}

func TestAddIncome_RecomputesTotals(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Totals", 5000)

	if _, err := finance.AddIncome(project.ID, &AddIncomeRequest{Amount: 300}); err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if _, err := finance.AddIncome(project.ID, &AddIncomeRequest{Amount: 200}); err != nil {
		t.Fatalf("AddIncome: %v", err)
	}

	got := reloadProject(t, db, project.ID)
	if got.TotalIncome != 500 {
		t.Errorf("TotalIncome = %v, expected 500", got.TotalIncome)
	}
}

func TestIncome_ExplicitInvoiceRoundTrip(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Explicit", 0)

	entry, err := finance.AddIncome(project.ID, &AddIncomeRequest{Amount: 100, InvoiceNumber: "INV1"})
	if err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if entry.InvoiceNumber != "INV1" {
		t.Errorf("InvoiceNumber = %q, expected INV1", entry.InvoiceNumber)
	}

	entries, err := finance.ListIncome(project.ID)
	if err != nil {
		t.Fatalf("ListIncome: %v", err)
	}
	if len(entries) != 1 || entries[0].InvoiceNumber != "INV1" {
		t.Errorf("listed entries = %+v, expected one with invoice INV1", entries)
	}
}

func TestAddIncome_DuplicateInvoiceConflicts(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Dup", 0)

	if _, err := finance.AddIncome(project.ID, &AddIncomeRequest{Amount: 100, InvoiceNumber: "INV1"}); err != nil {
		t.Fatalf("AddIncome: %v", err)
	}

	// Same number on an expense entry of the same project must also clash:
	// uniqueness spans both entry types across all projects.
	_, err := finance.AddExpense(project.ID, &AddExpenseRequest{
		Amount:        50,
		Category:      "Supplies",
		InvoiceNumber: "INV1",
	})
	if status := appErrorStatus(t, err); status != 409 {
		t.Errorf("status = %d, expected 409", status)
	}
}

func TestUpdateIncome_PartialMergeAndTotals(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Merge", 0)

	entry, err := finance.AddIncome(project.ID, &AddIncomeRequest{
		Amount:     100,
		ReceivedBy: "Bank transfer",
	})
	if err != nil {
		t.Fatalf("AddIncome: %v", err)
	}

	amount := 250.0
	updated, err := finance.UpdateIncome(project.ID, entry.ID, &UpdateIncomeRequest{Amount: &amount})
	if err != nil {
		t.Fatalf("UpdateIncome: %v", err)
	}
	if updated.Amount != 250 {
		t.Errorf("Amount = %v, expected 250", updated.Amount)
	}
	if updated.ReceivedBy != "Bank transfer" {
		t.Errorf("ReceivedBy = %q, untouched field should survive the merge", updated.ReceivedBy)
	}

	got := reloadProject(t, db, project.ID)
	if got.TotalIncome != 250 {
		t.Errorf("TotalIncome = %v, expected 250", got.TotalIncome)
	}
}

func TestRemoveIncome_RecomputesTotals(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Remove", 0)

	entry, err := finance.AddIncome(project.ID, &AddIncomeRequest{Amount: 100})
	if err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if _, err := finance.AddIncome(project.ID, &AddIncomeRequest{Amount: 40}); err != nil {
		t.Fatalf("AddIncome: %v", err)
	}

	if err := finance.RemoveIncome(project.ID, entry.ID); err != nil {
		t.Fatalf("RemoveIncome: %v", err)
	}

	got := reloadProject(t, db, project.ID)
	if got.TotalIncome != 40 {
		t.Errorf("TotalIncome = %v, expected 40", got.TotalIncome)
	}
}

func TestIncomeEntry_UnknownProjectOrEntry(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Missing", 0)

	if _, err := finance.AddIncome(9999, &AddIncomeRequest{Amount: 10}); appErrorStatus(t, err) != 404 {
		t.Error("AddIncome on unknown project should be not-found")
	}

	amount := 5.0
	_, err := finance.UpdateIncome(project.ID, 9999, &UpdateIncomeRequest{Amount: &amount})
	if appErrorStatus(t, err) != 404 {
		t.Error("UpdateIncome on unknown entry should be not-found")
	}
}

func TestAddExpense_WithEmployeePushesPayment(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Payments", 0)
	employee := createTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)

	expense, err := finance.AddExpense(project.ID, &AddExpenseRequest{
		Amount:     150,
		Category:   "Salary",
		Vendor:     "Internal",
		EmployeeID: &employee.ID,
	})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if expense.EmployeeName != "Bob" || expense.EmployeeEmail != "bob@example.com" {
		t.Errorf("employee snapshot = %q/%q, expected Bob/bob@example.com",
			expense.EmployeeName, expense.EmployeeEmail)
	}

	var records []models.PaymentRecord
	if err := db.Where("user_id = ?", employee.ID).Find(&records).Error; err != nil {
		t.Fatalf("load payment records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("payment records = %d, expected 1", len(records))
	}
	record := records[0]
	if record.ExpenseEntryID != expense.ID || record.ProjectID != project.ID {
		t.Errorf("record correlation = entry %d project %d, expected entry %d project %d",
			record.ExpenseEntryID, record.ProjectID, expense.ID, project.ID)
	}
	if record.Amount != 150 || record.InvoiceNumber != expense.InvoiceNumber {
		t.Errorf("record = %+v, expected amount and invoice mirrored from the expense", record)
	}
}

func TestUpdateExpense_ReassignmentMovesPayment(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Reassign", 0)
	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)

	expense, err := finance.AddExpense(project.ID, &AddExpenseRequest{
		Amount:     100,
		Category:   "Salary",
		EmployeeID: &alice.ID,
	})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	if _, err := finance.UpdateExpense(project.ID, expense.ID, &UpdateExpenseRequest{EmployeeID: &bob.ID}); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}

	var aliceCount, bobCount int64
	db.Model(&models.PaymentRecord{}).Where("user_id = ?", alice.ID).Count(&aliceCount)
	db.Model(&models.PaymentRecord{}).Where("user_id = ?", bob.ID).Count(&bobCount)
	if aliceCount != 0 {
		t.Errorf("old employee still has %d payment records, expected 0", aliceCount)
	}
	if bobCount != 1 {
		t.Errorf("new employee has %d payment records, expected 1", bobCount)
	}
}

func TestUpdateExpense_AmountChangeReplacesPayment(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Replace", 0)
	employee := createTestUser(t, db, "Cara", "cara@example.com", models.RoleUser)

	expense, err := finance.AddExpense(project.ID, &AddExpenseRequest{
		Amount:     100,
		Category:   "Salary",
		EmployeeID: &employee.ID,
	})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	amount := 175.0
	if _, err := finance.UpdateExpense(project.ID, expense.ID, &UpdateExpenseRequest{Amount: &amount}); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}

	var records []models.PaymentRecord
	db.Where("user_id = ?", employee.ID).Find(&records)
	if len(records) != 1 {
		t.Fatalf("payment records = %d, expected the row to be replaced, not duplicated", len(records))
	}
	if records[0].Amount != 175 {
		t.Errorf("payment amount = %v, expected 175", records[0].Amount)
	}
}

func TestRemoveExpense_PullsPaymentAndTotals(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Pull", 0)
	employee := createTestUser(t, db, "Dan", "dan@example.com", models.RoleUser)

	expense, err := finance.AddExpense(project.ID, &AddExpenseRequest{
		Amount:     80,
		Category:   "Salary",
		EmployeeID: &employee.ID,
	})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	if err := finance.RemoveExpense(project.ID, expense.ID); err != nil {
		t.Fatalf("RemoveExpense: %v", err)
	}

	var count int64
	db.Model(&models.PaymentRecord{}).Where("user_id = ?", employee.ID).Count(&count)
	if count != 0 {
		t.Errorf("payment records = %d, expected 0 after expense removal", count)
	}

	got := reloadProject(t, db, project.ID)
	if got.TotalExpenses != 0 {
		t.Errorf("TotalExpenses = %v, expected 0", got.TotalExpenses)
	}
}

func TestAddEmployee_DuplicateConflicts(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Staffing", 0)
	employee := createTestUser(t, db, "Eve", "eve@example.com", models.RoleUser)

	assignment, err := finance.AddEmployee(project.ID, &AddEmployeeRequest{EmployeeID: employee.ID})
	if err != nil {
		t.Fatalf("AddEmployee: %v", err)
	}
	if assignment.EmployeeName != "Eve" || assignment.Position != "Consultant" {
		t.Errorf("assignment snapshot = %+v, expected name and position from the user", assignment)
	}

	_, err = finance.AddEmployee(project.ID, &AddEmployeeRequest{EmployeeID: employee.ID})
	if appErrorStatus(t, err) != 409 {
		t.Error("duplicate assignment should conflict")
	}
}

func TestAddEmployee_UnknownUserNotFound(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Ghost", 0)

	_, err := finance.AddEmployee(project.ID, &AddEmployeeRequest{EmployeeID: 9999})
	if appErrorStatus(t, err) != 404 {
		t.Error("unknown employee should be not-found")
	}
}

func TestEmployeeAssignment_SyncsUserSet(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "SetUnion", 0)
	employee := createTestUser(t, db, "Finn", "finn@example.com", models.RoleUser)

	assignment, err := finance.AddEmployee(project.ID, &AddEmployeeRequest{EmployeeID: employee.ID})
	if err != nil {
		t.Fatalf("AddEmployee: %v", err)
	}

	var count int64
	db.Model(&models.ProjectAssignment{}).
		Where("user_id = ? AND project_id = ?", employee.ID, project.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("assignment set rows = %d, expected 1", count)
	}

	if err := finance.RemoveEmployee(project.ID, assignment.ID); err != nil {
		t.Fatalf("RemoveEmployee: %v", err)
	}

	db.Model(&models.ProjectAssignment{}).
		Where("user_id = ? AND project_id = ?", employee.ID, project.ID).
		Count(&count)
	if count != 0 {
		t.Errorf("assignment set rows = %d, expected 0 after removal", count)
	}
}

func TestSyncWrites_AreJournaled(t *testing.T) {
	db := newTestDB(t)
	finance := newFinanceService(db)
	project := createTestProject(t, db, "Journal", 0)
	employee := createTestUser(t, db, "Gil", "gil@example.com", models.RoleUser)

	if _, err := finance.AddEmployee(project.ID, &AddEmployeeRequest{EmployeeID: employee.ID}); err != nil {
		t.Fatalf("AddEmployee: %v", err)
	}
	expense, err := finance.AddExpense(project.ID, &AddExpenseRequest{
		Amount:     10,
		Category:   "Salary",
		EmployeeID: &employee.ID,
	})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if err := finance.RemoveExpense(project.ID, expense.ID); err != nil {
		t.Fatalf("RemoveExpense: %v", err)
	}

	var logs []models.SyncLog
	if err := db.Order("id ASC").Find(&logs).Error; err != nil {
		t.Fatalf("load sync logs: %v", err)
	}

	actions := make([]string, len(logs))
	for i, l := range logs {
		if l.Outcome != models.SyncOutcomeApplied {
			t.Errorf("log %s outcome = %q, expected applied", l.Action, l.Outcome)
		}
		actions[i] = l.Action
	}

	want := []string{
		models.SyncActionAddAssignment,
		models.SyncActionPushPayment,
		models.SyncActionPullPayment,
	}
	if len(actions) != len(want) {
		t.Fatalf("journal actions = %v, expected %v", actions, want)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Errorf("journal action[%d] = %q, expected %q", i, actions[i], want[i])
		}
	}
}
