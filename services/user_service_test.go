package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogapi/models"
	"blogapi/utils"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, &models.SignupRequest{Username: "alice", Email: "Alice@Example.com ", Password: "hunter22"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Email != "alice@example.com" || user.IsAdmin {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.Password == "hunter22" || !user.CheckPassword("hunter22") {
		t.Fatalf("password not hashed")
	}

	_, err = users.CreateUser(ctx, &models.SignupRequest{Username: "alice2", Email: "alice@example.com", Password: "hunter22"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserAdministration(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	ctx := context.Background()
	admin := seedUser(t, db, "admin", true)
	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)

	if _, err := users.GetUser(ctx, actorFor(alice), alice.ID); err != nil {
		t.Fatalf("self lookup: %v", err)
	}
	if _, err := users.GetUser(ctx, actorFor(alice), bob.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := users.GetUser(ctx, actorFor(admin), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := users.ListUsers(ctx, actorFor(alice), models.PageQuery{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden list, got %v", err)
	}
	page, err := users.ListUsers(ctx, actorFor(admin), models.PageQuery{Q: "EXAMPLE.COM"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("total %d, want 3", page.Total)
	}

	promoted, err := users.SetAdmin(ctx, actorFor(admin), bob.ID, true)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !promoted.IsAdmin {
		t.Fatalf("bob should be admin")
	}
	if _, err := users.SetAdmin(ctx, actorFor(alice), bob.ID, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin role change should be forbidden, got %v", err)
	}
	if _, err := users.SetAdmin(ctx, actorFor(admin), admin.ID, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("self demotion should be forbidden, got %v", err)
	}
	if _, err := users.SetAdminByEmail(ctx, "nobody@example.com", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	reloaded, err := users.GetUserByID(ctx, bob.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsAdmin {
		t.Fatalf("role change not persisted")
	}
}

func TestAuthLoginAndLogout(t *testing.T) {
	db := newTestDB(t)
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	auth := NewAuthService(NewUserService(db), tokens, NewMemoryRevocationStore())
	ctx := context.Background()

	if _, err := auth.Signup(ctx, &models.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, err := auth.Login(ctx, &models.LoginRequest{Email: "alice@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := auth.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "hunter22"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}

	token, user, err := auth.Login(ctx, &models.LoginRequest{Email: " ALICE@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := auth.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "alice@example.com" || claims.IsAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if err := auth.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.Authenticate(ctx, token); !errors.Is(err, utils.ErrInvalidToken) {
		t.Fatalf("revoked token accepted: %v", err)
	}
}
