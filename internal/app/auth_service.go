package app

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"crewline/internal/common"
	"crewline/internal/domain/user"
	"crewline/internal/security"
)

type AuthService struct {
	users    user.Repository
	jwt      *security.JWTProvider
	tokenTTL time.Duration
}

func NewAuthService(users user.Repository, jwt *security.JWTProvider, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwt: jwt, tokenTTL: tokenTTL}
}

type AuthResult struct {
	User      *user.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func (s *AuthService) Register(ctx context.Context, email, password, fullName string, role user.Role) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, common.NewValidationError("invalid registration", map[string]string{"email": "a valid email is required"})
	}
	if len(password) < 8 {
		return nil, common.NewValidationError("invalid registration", map[string]string{"password": "password must be at least 8 characters"})
	}
	if role != user.RoleHost && role != user.RoleTeamLeader {
		return nil, common.NewValidationError("invalid registration", map[string]string{"role": "role must be host or team_leader"})
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "email is already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}
	return s.issue(created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *user.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(u.ID, string(u.Role), s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}
