package services

import (
	"testing"

	"github.com/consultly-app/consultly/internal/models"
	"github.com/consultly-app/consultly/internal/utils"
)

func TestLogin_Outcomes(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, disabledEmail(), testJWTConfig())
	createTestUser(t, db, "Sam", "sam@example.com", models.RoleUser)

	// Unknown email is not-found, distinct from a wrong password.
	_, err := svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "whatever1"})
	if appErrorStatus(t, err) != 404 {
		t.Error("unknown email should be not-found")
	}

	_, err = svc.Login(&LoginRequest{Email: "sam@example.com", Password: "wrong-password"})
	if appErrorStatus(t, err) != 401 {
		t.Error("wrong password should be unauthorized")
	}

	result, err := svc.Login(&LoginRequest{Email: "SAM@example.com", Password: "initial-password-123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("login should issue a token")
	}

	claims, err := utils.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Email != "sam@example.com" || claims.Role != models.RoleUser || claims.Name != "Sam" {
		t.Errorf("claims = %+v, expected identity embedded in the token", claims)
	}
}

func TestForgotPassword_PersistsExpectedToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, disabledEmail(), testJWTConfig())
	user := createTestUser(t, db, "Tess", "tess@example.com", models.RoleUser)

	if err := svc.ForgotPassword(&ForgotPasswordRequest{Email: "tess@example.com"}); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.PwResetToken == "" {
		t.Fatal("expected reset token to be persisted")
	}

	claims, err := utils.ParseResetToken(reloaded.PwResetToken)
	if err != nil {
		t.Fatalf("ParseResetToken: %v", err)
	}
	if claims.Email != "tess@example.com" {
		t.Errorf("token email = %q, expected tess@example.com", claims.Email)
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, disabledEmail(), testJWTConfig())

	err := svc.ForgotPassword(&ForgotPasswordRequest{Email: "ghost@example.com"})
	if appErrorStatus(t, err) != 404 {
		t.Error("unknown email should be not-found")
	}
}

func TestResetPassword_FullFlow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, disabledEmail(), testJWTConfig())
	createTestUser(t, db, "Uma", "uma@example.com", models.RoleUser)

	if err := svc.ForgotPassword(&ForgotPasswordRequest{Email: "uma@example.com"}); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	var user models.User
	if err := db.Where("email = ?", "uma@example.com").First(&user).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	token := user.PwResetToken

	err := svc.ResetPassword(&ResetPasswordRequest{Token: token, Password: "brand-new-pass-1"})
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := svc.Login(&LoginRequest{Email: "uma@example.com", Password: "brand-new-pass-1"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(&LoginRequest{Email: "uma@example.com", Password: "initial-password-123"}); err == nil {
		t.Error("old password should no longer work")
	}

	// The token is single-use: the persisted copy is cleared.
	err = svc.ResetPassword(&ResetPasswordRequest{Token: token, Password: "another-pass-123"})
	if appErrorStatus(t, err) != 401 {
		t.Error("reusing a consumed reset token should be unauthorized")
	}
}

func TestResetPassword_TokenMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, disabledEmail(), testJWTConfig())
	createTestUser(t, db, "Vic", "vic@example.com", models.RoleUser)

	if err := svc.ForgotPassword(&ForgotPasswordRequest{Email: "vic@example.com"}); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	// A structurally valid token that is not the persisted one is rejected.
	// The different lifetime guarantees it differs from the stored token.
	stray, err := utils.GenerateResetToken("vic@example.com", 200)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}

	resetErr := svc.ResetPassword(&ResetPasswordRequest{Token: stray, Password: "sneaky-pass-123"})
	if appErrorStatus(t, resetErr) != 401 {
		t.Error("a token that does not match the persisted one should be unauthorized")
	}
}

func TestResetPassword_MalformedToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, disabledEmail(), testJWTConfig())

	err := svc.ResetPassword(&ResetPasswordRequest{Token: "not.a.token", Password: "whatever-pass-1"})
	if appErrorStatus(t, err) != 401 {
		t.Error("malformed token should be unauthorized")
	}
}
