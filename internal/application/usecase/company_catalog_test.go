package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
)

type memCompanies struct {
	items map[string]*entity.Company
}

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.items[c.ID] = c
	return nil
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m.items[id], nil
}

func (m *memCompanies) Update(_ context.Context, c *entity.Company) error {
	m.items[c.ID] = c
	return nil
}

func strp(s string) *string { return &s }

func TestCompanyUseCase(t *testing.T) {
	repo := &memCompanies{items: map[string]*entity.Company{
		"c1": {ID: "c1", Name: "Boutique Awa", Currency: "XOF", Status: entity.CompanyStatusActive},
	}}
	uc := NewCompanyUseCase(repo)
	ctx := context.Background()

	got, err := uc.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Boutique Awa", got.Name)

	_, err = uc.Get(ctx, "otra")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	upd, err := uc.Update(ctx, "c1", dto.UpdateCompanyRequest{Name: strp("  Awa & Fils "), Currency: strp("eur")})
	require.NoError(t, err)
	assert.Equal(t, "Awa & Fils", upd.Name)
	assert.Equal(t, "EUR", upd.Currency)
	// Campos ausentes no se tocan.
	assert.Equal(t, entity.CompanyStatusActive, upd.Status)
	assert.False(t, repo.items["c1"].UpdatedAt.IsZero())

	_, err = uc.Update(ctx, "otra", dto.UpdateCompanyRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type memCategories struct {
	items    map[string]*entity.Category
	lastPage [2]int
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	for _, o := range m.items {
		if o.CompanyID == c.CompanyID && o.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	m.items[c.ID] = c
	return nil
}

func (m *memCategories) GetByID(_ context.Context, companyID, id string) (*entity.Category, error) {
	c, ok := m.items[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return c, nil
}

func (m *memCategories) Update(_ context.Context, c *entity.Category) error {
	m.items[c.ID] = c
	return nil
}

func (m *memCategories) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Category, error) {
	m.lastPage = [2]int{limit, offset}
	var out []*entity.Category
	for _, c := range m.items {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCategories) Delete(_ context.Context, companyID, id string) error {
	c, ok := m.items[id]
	if !ok || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestCategoryUseCase_AisladoPorEmpresa(t *testing.T) {
	repo := &memCategories{items: map[string]*entity.Category{}}
	uc := NewCategoryUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, "c1", dto.CategoryRequest{Name: " Boissons "})
	require.NoError(t, err)
	assert.Equal(t, "Boissons", created.Name)
	assert.Equal(t, "c1", repo.items[created.ID].CompanyID)

	_, err = uc.Create(ctx, "c1", dto.CategoryRequest{Name: "Boissons"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, "c2", dto.CategoryRequest{Name: "Boissons"})
	require.NoError(t, err)

	_, err = uc.Get(ctx, "c2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, "c2", created.ID, dto.CategoryRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, "c1", dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, [2]int{dto.MaxPageLimit, 0}, repo.lastPage)

	assert.ErrorIs(t, uc.Delete(ctx, "c2", created.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, "c1", created.ID))
}
