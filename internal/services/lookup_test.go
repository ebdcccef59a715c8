package services

import (
	"testing"
)

func TestLookup_CategoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewLookupService(db)

	category, err := svc.CreateCategory(&CreateCategoryRequest{Category: "Audit"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	_, err = svc.CreateCategory(&CreateCategoryRequest{Category: "Audit"})
	if appErrorStatus(t, err) != 409 {
		t.Error("duplicate category should conflict")
	}

	categories, err := svc.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("categories = %d, expected 1", len(categories))
	}

	if err := svc.DeleteCategory(category.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := svc.DeleteCategory(category.ID); appErrorStatus(t, err) != 404 {
		t.Error("deleting a missing category should be not-found")
	}
}

func TestLookup_CategoryRename(t *testing.T) {
	db := newTestDB(t)
	svc := NewLookupService(db)

	audit, err := svc.CreateCategory(&CreateCategoryRequest{Category: "Audit"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := svc.CreateCategory(&CreateCategoryRequest{Category: "Tax"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	renamed, err := svc.UpdateCategory(audit.ID, &CreateCategoryRequest{Category: "Assurance"})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if renamed.Category != "Assurance" {
		t.Errorf("Category = %q, expected Assurance", renamed.Category)
	}

	// Renaming onto another label collides.
	_, err = svc.UpdateCategory(audit.ID, &CreateCategoryRequest{Category: "Tax"})
	if appErrorStatus(t, err) != 409 {
		t.Error("renaming onto an existing category should conflict")
	}
}

func TestLookup_PositionLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewLookupService(db)

	if _, err := svc.CreatePosition(&CreatePositionRequest{Position: "Analyst"}); err != nil {
		t.Fatalf("CreatePosition: %v", err)
	}

	_, err := svc.CreatePosition(&CreatePositionRequest{Position: "Analyst"})
	if appErrorStatus(t, err) != 409 {
		t.Error("duplicate position should conflict")
	}

	positions, err := svc.ListPositions()
	if err != nil {
		t.Fatalf("ListPositions: %v", err)
	}
	if len(positions) != 1 || positions[0].Position != "Analyst" {
		t.Errorf("positions = %v, expected just Analyst", positions)
	}
}
