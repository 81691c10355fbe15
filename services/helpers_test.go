package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"blogapi/database"
	"blogapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "blog.db"), logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *models.User {
	t.Helper()

	user, err := NewUserService(db).CreateUser(context.Background(), &models.SignupRequest{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "secret-" + username,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", username, err)
	}
	if isAdmin {
		user, err = NewUserService(db).SetAdminByEmail(context.Background(), user.Email, true)
		if err != nil {
			t.Fatalf("promote %s: %v", username, err)
		}
	}
	return user
}

func actorFor(u *models.User) models.Actor {
	return models.Actor{UserID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

type notification struct {
	Type   string
	Owners []uint
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (r *recordingNotifier) Notify(messageType string, _ interface{}, ownerIDs ...uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, notification{Type: messageType, Owners: ownerIDs})
}

func (r *recordingNotifier) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
