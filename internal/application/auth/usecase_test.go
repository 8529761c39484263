package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/pkg/jwt"
)

type fakeUsers struct {
	repository.UserRepository
	byEmail map[string]*entity.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

type fakeCompanies struct {
	repository.CompanyRepository
	created []*entity.Company
}

func (f *fakeCompanies) Create(_ context.Context, c *entity.Company) error {
	f.created = append(f.created, c)
	return nil
}

type fakeWarehouses struct {
	repository.WarehouseRepository
	created []*entity.Warehouse
	err     error
}

func (f *fakeWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, w)
	return nil
}

type fakeTx struct {
	companies  *fakeCompanies
	users      *fakeUsers
	warehouses *fakeWarehouses
}

func (f *fakeTx) RunRegistration(_ context.Context, fn func(repository.CompanyRepository, repository.UserRepository, repository.WarehouseRepository) error) error {
	return fn(f.companies, f.users, f.warehouses)
}

const secret = "test-secret"

func newAuth() (*AuthUseCase, *fakeTx) {
	users := &fakeUsers{byEmail: map[string]*entity.User{}}
	tx := &fakeTx{companies: &fakeCompanies{}, users: users, warehouses: &fakeWarehouses{}}
	uc := NewAuthUseCase(users, tx, JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
	uc.cost = bcrypt.MinCost
	return uc, tx
}

func TestRegister_CreaEmpresaAdminYBodega(t *testing.T) {
	uc, tx := newAuth()
	res, err := uc.Register(context.Background(), dto.RegisterRequest{
		CompanyName: "Boutique Awa", Name: "Awa", Email: " Awa@Example.com ", Password: "secret123",
	})
	require.NoError(t, err)

	require.Len(t, tx.companies.created, 1)
	require.Len(t, tx.warehouses.created, 1)
	company := tx.companies.created[0]
	assert.Equal(t, DefaultCurrency, company.Currency)
	assert.Equal(t, entity.DefaultWarehouseCode, tx.warehouses.created[0].Code)
	assert.Equal(t, company.ID, tx.warehouses.created[0].CompanyID)

	assert.Equal(t, entity.RoleAdmin, res.User.Role)
	assert.Equal(t, "awa@example.com", res.User.Email)
	assert.Equal(t, company.ID, res.User.CompanyID)

	userID, companyID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
	assert.Equal(t, company.ID, companyID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, tx := newAuth()
	tx.users.byEmail["awa@example.com"] = &entity.User{ID: "u0"}

	_, err := uc.Register(context.Background(), dto.RegisterRequest{CompanyName: "X", Name: "Y", Email: "awa@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, tx.companies.created)
}

func TestRegister_ErrorEnTxSePropaga(t *testing.T) {
	uc, tx := newAuth()
	tx.warehouses.err = errors.New("boom")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{CompanyName: "X", Name: "Y", Email: "a@b.co", Password: "secret123"})
	assert.ErrorContains(t, err, "create warehouse")
}

func TestLogin(t *testing.T) {
	uc, tx := newAuth()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	tx.users.byEmail["ok@example.com"] = &entity.User{ID: "u1", CompanyID: "c1", Email: "ok@example.com", PasswordHash: string(hash), Role: entity.RoleSeller, Status: "active"}
	tx.users.byEmail["off@example.com"] = &entity.User{ID: "u2", CompanyID: "c1", Email: "off@example.com", PasswordHash: string(hash), Role: entity.RoleSeller, Status: "inactive"}

	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "OK@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", res.User.ID)
	assert.NotEmpty(t, res.Token)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ok@example.com", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "off@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
