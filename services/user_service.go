package services

import (
	"context"
	"fmt"
	"strings"

	"blogapi/models"

	"gorm.io/gorm"
)

const userOrder = "users.created_at DESC, users.id DESC"

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a non-admin account. A duplicate email yields
// ErrConflict whether it is caught by the lookup or by the unique index.
func (s *UserService) CreateUser(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    NormalizeEmail(req.Email),
		Password: req.Password,
		IsAdmin:  false,
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&existing).Error; err != nil {
		return nil, storeError("check email", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("email %s: %w", user.Email, ErrConflict)
	}

	if err := user.HashPassword(); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, storeError("create user", err)
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, storeError("get user", err)
	}
	return &user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, storeError("get user by email", err)
	}
	return &user, nil
}

// GetUser returns a user to themselves or to an admin.
func (s *UserService) GetUser(ctx context.Context, actor models.Actor, id uint) (*models.User, error) {
	if !actor.CanManage(id) {
		return nil, ErrForbidden
	}
	return s.GetUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, actor models.Actor, q models.PageQuery) (models.Page[models.User], error) {
	if !actor.IsAdmin {
		return models.Page[models.User]{}, ErrForbidden
	}
	q = q.Normalize()

	page, err := listPage[models.User](s.db.WithContext(ctx), q, func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(&models.User{})
		if q.Q != "" {
			tx = matchAny(tx, q.Q, "users.username", "users.email")
		}
		return tx
	}, userOrder)
	if err != nil {
		return page, storeError("list users", err)
	}
	return page, nil
}

// SetAdmin changes the role of a user. Admins cannot demote themselves.
func (s *UserService) SetAdmin(ctx context.Context, actor models.Actor, id uint, isAdmin bool) (*models.User, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if actor.UserID == id && !isAdmin {
		return nil, fmt.Errorf("demote self: %w", ErrForbidden)
	}
	return s.updateRole(ctx, "id = ?", id, isAdmin)
}

// SetAdminByEmail is the bootstrap path used by the command line.
func (s *UserService) SetAdminByEmail(ctx context.Context, email string, isAdmin bool) (*models.User, error) {
	return s.updateRole(ctx, "email = ?", NormalizeEmail(email), isAdmin)
}

func (s *UserService) updateRole(ctx context.Context, cond string, value interface{}, isAdmin bool) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(cond, value).First(&user).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("is_admin", isAdmin).Error
	})
	if err != nil {
		return nil, storeError("update role", err)
	}
	user.IsAdmin = isAdmin
	return &user, nil
}
