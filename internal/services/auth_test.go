package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/studypulse-backend/internal/repos"
	"github.com/yungbote/studypulse-backend/internal/repos/testutil"
	"github.com/yungbote/studypulse-backend/internal/requestdata"
	"github.com/yungbote/studypulse-backend/internal/types"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	userTokenRepo := repos.NewUserTokenRepo(tx, log)
	return NewAuthService(tx, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	email := uuid.NewString() + "@Example.com"
	user := &types.User{
		Email:     email,
		Password:  "password123",
		FirstName: "  Ada ",
		LastName:  "Lovelace",
	}
	if err := svc.RegisterUser(ctx, user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.FirstName != "Ada" {
		t.Fatalf("expected trimmed first name, got %q", user.FirstName)
	}
	if user.Password == "password123" {
		t.Fatal("expected the stored password to be hashed")
	}

	// Duplicate registration is rejected.
	dup := &types.User{Email: email, Password: "password123", FirstName: "A", LastName: "B"}
	if err := svc.RegisterUser(ctx, dup); err == nil {
		t.Fatal("expected duplicate email registration to fail")
	}

	// Email lookup is case-insensitive via normalization.
	access, refresh, err := svc.LoginUser(ctx, email, "password123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens from login")
	}

	if _, _, err := svc.LoginUser(ctx, email, "wrongpassword"); err == nil {
		t.Fatal("expected login with a wrong password to fail")
	}
	if _, _, err := svc.LoginUser(ctx, "nobody@example.com", "password123"); err == nil {
		t.Fatal("expected login for an unknown email to fail")
	}
}

func TestAuthServiceTokenLifecycle(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	email := uuid.NewString() + "@example.com"
	user := &types.User{Email: email, Password: "password123", FirstName: "Test", LastName: "User"}
	if err := svc.RegisterUser(ctx, user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	access, refresh, err := svc.LoginUser(ctx, email, "password123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	authedCtx, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil {
		t.Fatal("expected request data in the authed context")
	}
	if rd.UserID != user.ID {
		t.Fatalf("expected user %s in request data, got %s", user.ID, rd.UserID)
	}
	if rd.RefreshToken != refresh {
		t.Fatal("expected the session's refresh token in request data")
	}

	if _, err := svc.SetContextFromToken(ctx, "not-a-jwt"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}

	newAccess, newRefresh, err := svc.RefreshUser(authedCtx)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if newAccess == access || newRefresh == refresh {
		t.Fatal("expected refresh to rotate both tokens")
	}

	// The old session row is gone, so the old access token is dead.
	if _, err := svc.SetContextFromToken(ctx, access); err == nil {
		t.Fatal("expected the pre-refresh access token to be rejected")
	}

	authedCtx, err = svc.SetContextFromToken(ctx, newAccess)
	if err != nil {
		t.Fatalf("SetContextFromToken after refresh: %v", err)
	}
	if err := svc.LogoutUser(authedCtx); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, newAccess); err == nil {
		t.Fatal("expected the access token to be rejected after logout")
	}
}
