package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmasaude-api/internal/domain"
	"farmasaude-api/pkg/utils"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo(us ...*domain.User) *memUserRepo {
	m := &memUserRepo{users: make(map[string]*domain.User)}
	for _, u := range us {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return m.users[id], nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) List(_ context.Context, _ string, _, _ int) ([]domain.User, int64, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *memUserRepo) SoftDelete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

type stubTokens struct{ issued int }

func (s *stubTokens) Issue(uid, _, _ string) (string, error) {
	s.issued++
	return "tok-" + uid, nil
}

func seedUser(email, password string, role domain.Role) *domain.User {
	return &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         "Conta " + email,
		PasswordHash: utils.HashPassword(password),
		Role:         role,
	}
}

func TestAuthService_Login(t *testing.T) {
	u := seedUser("ana@example.com", "segredo1", domain.RoleCustomer)
	svc := NewAuthService(newMemUserRepo(u), &stubTokens{})

	got, tok, err := svc.Login(context.Background(), "ana@example.com", "segredo1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "tok-"+u.ID, tok)

	// 未知邮箱和错误密码给同一个错误，不泄露哪个错了
	_, _, err = svc.Login(context.Background(), "ana@example.com", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), "ninguem@example.com", "segredo1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterCustomer(t *testing.T) {
	repo := newMemUserRepo()
	tokens := &stubTokens{}
	svc := NewAuthService(repo, tokens)

	u, tok, err := svc.RegisterCustomer(context.Background(), Registration{
		Email: "bia@example.com", Password: "segredo1", Name: "Bia",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, u.Role)
	assert.Empty(t, u.CreatedBy)
	assert.NotEmpty(t, tok, "registration logs straight in")
	assert.NotEqual(t, "segredo1", u.PasswordHash)
	assert.True(t, utils.CheckPassword("segredo1", u.PasswordHash))

	_, _, err = svc.RegisterCustomer(context.Background(), Registration{
		Email: "bia@example.com", Password: "outra123", Name: "Bia 2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_RegisterSeller(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), &stubTokens{})
	admin := Actor{ID: "adm-1", Role: domain.RoleAdmin}

	u, _, err := svc.RegisterSeller(context.Background(), admin, Registration{
		Email: "loja@example.com", Password: "segredo1", Name: "Farmácia Central",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSeller, u.Role)
	assert.Equal(t, "adm-1", u.CreatedBy)

	for _, role := range []domain.Role{domain.RoleCustomer, domain.RoleSeller} {
		_, _, err := svc.RegisterSeller(context.Background(),
			Actor{ID: "x", Role: role}, Registration{
				Email: "outra@example.com", Password: "segredo1", Name: "Outra",
			})
		assert.ErrorIs(t, err, ErrForbidden)
	}
}

func TestAuthService_DeleteSeller(t *testing.T) {
	seller := seedUser("loja@example.com", "segredo1", domain.RoleSeller)
	customer := seedUser("cli@example.com", "segredo1", domain.RoleCustomer)
	repo := newMemUserRepo(seller, customer)
	svc := NewAuthService(repo, &stubTokens{})
	admin := Actor{ID: "adm-1", Role: domain.RoleAdmin}

	assert.ErrorIs(t, svc.DeleteSeller(context.Background(),
		Actor{ID: "s", Role: domain.RoleSeller}, seller.ID), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteSeller(context.Background(), admin, customer.ID), ErrNotASeller)
	assert.ErrorIs(t, svc.DeleteSeller(context.Background(), admin, "missing"), ErrUserNotFound)

	require.NoError(t, svc.DeleteSeller(context.Background(), admin, seller.ID))
	_, err := svc.GetUser(context.Background(), seller.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_EnsureAdmin_FreshDatabase(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, &stubTokens{})

	created, err := svc.EnsureAdmin(context.Background(),
		"admin@farmasaude.com", "admin123", "Administrador")
	require.NoError(t, err)
	assert.True(t, created, "empty database must get the bootstrap account")

	u, err := repo.FindByEmail(context.Background(), "admin@farmasaude.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.True(t, utils.CheckPassword("admin123", u.PasswordHash))

	// 幂等：重启不重建
	created, err = svc.EnsureAdmin(context.Background(),
		"admin@farmasaude.com", "admin123", "Administrador")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.users, 1)
}

func TestAuthService_EnsureAdmin_KeepsExistingAccount(t *testing.T) {
	admin := seedUser("admin@farmasaude.com", "senha-atual", domain.RoleAdmin)
	repo := newMemUserRepo(admin)
	svc := NewAuthService(repo, &stubTokens{})

	created, err := svc.EnsureAdmin(context.Background(),
		"admin@farmasaude.com", "outra-senha", "Outro Nome")
	require.NoError(t, err)
	assert.False(t, created)

	// 已有账号原样保留，密码不被配置覆盖
	u, _ := repo.FindByEmail(context.Background(), "admin@farmasaude.com")
	require.NotNil(t, u)
	assert.Equal(t, admin.ID, u.ID)
	assert.True(t, utils.CheckPassword("senha-atual", u.PasswordHash))
}

func TestAuthService_ListUsers_AdminOnly(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(seedUser("a@b.com", "x12345", domain.RoleCustomer)), &stubTokens{})

	_, _, err := svc.ListUsers(context.Background(),
		Actor{ID: "c", Role: domain.RoleCustomer}, "", 0, 20)
	assert.ErrorIs(t, err, ErrForbidden)

	users, total, err := svc.ListUsers(context.Background(),
		Actor{ID: "a", Role: domain.RoleAdmin}, "", 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, users, 1)
}
