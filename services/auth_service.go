package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"blogapi/models"
	"blogapi/utils"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users       *UserService
	tokens      *utils.TokenManager
	revocations RevocationStore
}

func NewAuthService(users *UserService, tokens *utils.TokenManager, revocations RevocationStore) *AuthService {
	if revocations == nil {
		revocations = NewMemoryRevocationStore()
	}
	return &AuthService{users: users, tokens: tokens, revocations: revocations}
}

func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	return s.users.CreateUser(ctx, req)
}

// Login returns a signed token for valid credentials. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials after a bcrypt compare.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(req.Password))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.CheckPassword(req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// Logout revokes the presented token until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Authenticate verifies a bearer token and checks the revocation list.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.Claims, error) {
	claims, err := s.tokens.ValidateJWT(token)
	if err != nil {
		return nil, err
	}
	if claims.ID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, utils.ErrInvalidToken
		}
	}
	return claims, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummy
}
