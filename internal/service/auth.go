package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"farmasaude-api/internal/domain"
	"farmasaude-api/pkg/utils"
)

// TokenIssuer is the external collaborator that mints bearer tokens.
type TokenIssuer interface {
	Issue(uid, email, role string) (string, error)
}

type Registration struct {
	Email     string     `json:"email" binding:"required,email"`
	Password  string     `json:"password" binding:"required,min=6"`
	Name      string     `json:"name" binding:"required,max=64"`
	Phone     string     `json:"phone" binding:"omitempty,max=32"`
	BirthDate *time.Time `json:"birthDate"`
}

type AuthService struct {
	users  domain.UserRepository
	tokens TokenIssuer
}

func NewAuthService(users domain.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	tok, err := s.tokens.Issue(u.ID, u.Email, u.Role.String())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, tok, nil
}

// RegisterCustomer creates a customer account and logs it straight in.
func (s *AuthService) RegisterCustomer(ctx context.Context, in Registration) (*domain.User, string, error) {
	return s.register(ctx, in, domain.RoleCustomer, "")
}

// RegisterSeller creates a seller account on behalf of the acting admin.
func (s *AuthService) RegisterSeller(ctx context.Context, actor Actor, in Registration) (*domain.User, string, error) {
	if !CanManageSellers(actor) {
		return nil, "", ErrForbidden
	}
	return s.register(ctx, in, domain.RoleSeller, actor.ID)
}

func (s *AuthService) register(ctx context.Context, in Registration, role domain.Role, createdBy string) (*domain.User, string, error) {
	email := strings.TrimSpace(in.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: utils.HashPassword(in.Password),
		Role:         role,
		Phone:        in.Phone,
		BirthDate:    in.BirthDate,
		CreatedBy:    createdBy,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	tok, err := s.tokens.Issue(u.ID, u.Email, u.Role.String())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, tok, nil
}

// EnsureAdmin 保证引导 admin 账号存在；已存在时不动它（密码也不重置）。
// 返回值表示这次调用是否真的建了账号。
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	email = strings.TrimSpace(email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	if name == "" {
		name = "Administrador"
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         name,
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}
	return true, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *AuthService) ListUsers(ctx context.Context, actor Actor, q string, offset, limit int) ([]domain.User, int64, error) {
	if !CanManageSellers(actor) {
		return nil, 0, ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.users.List(ctx, q, offset, limit)
}

// DeleteSeller removes a seller account; other roles are rejected.
func (s *AuthService) DeleteSeller(ctx context.Context, actor Actor, id string) error {
	if !CanManageSellers(actor) {
		return ErrForbidden
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return ErrUserNotFound
	}
	if u.Role != domain.RoleSeller {
		return ErrNotASeller
	}
	return s.users.SoftDelete(ctx, id)
}
