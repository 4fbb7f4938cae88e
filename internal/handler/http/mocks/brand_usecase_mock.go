package mocks

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
)

// MockBrandUsecase serves brands from a map keyed by id.
type MockBrandUsecase struct {
	Brands map[string]entity.Brand
	// Err, when set, is returned by every method.
	Err error

	// Owners stands in for the brand cache: CachedOwner only answers from it.
	Owners   map[string]string
	GetCalls int

	DeletedBy      string
	DeletedAsAdmin bool
}

var _ usecasecontract.IBrandUseCase = (*MockBrandUsecase)(nil)

func NewMockBrandUsecase(brands ...entity.Brand) *MockBrandUsecase {
	m := &MockBrandUsecase{Brands: make(map[string]entity.Brand), Owners: make(map[string]string)}
	for _, b := range brands {
		m.Brands[b.ID] = b
		m.Owners[b.ID] = b.OwnerID
	}
	return m
}

func (m *MockBrandUsecase) CreateBrand(ctx context.Context, ownerID string, in usecasecontract.BrandInput) (*entity.Brand, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	b := entity.Brand{
		ID:           "new-brand",
		OwnerID:      ownerID,
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		InstagramURL: in.InstagramURL,
		FacebookURL:  in.FacebookURL,
	}
	b.ApplyDefaults()
	m.Brands[b.ID] = b
	return &b, nil
}

func (m *MockBrandUsecase) UpdateBrand(ctx context.Context, brandID, actorID string, in usecasecontract.BrandInput) (*entity.Brand, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	b, ok := m.Brands[brandID]
	if !ok {
		return nil, entity.ErrBrandNotFound
	}
	if b.OwnerID != actorID {
		return nil, entity.ErrForbidden
	}
	b.Name = in.Name
	m.Brands[brandID] = b
	return &b, nil
}

func (m *MockBrandUsecase) DeleteBrand(ctx context.Context, brandID, actorID string, isAdmin bool) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Brands[brandID]; !ok {
		return entity.ErrBrandNotFound
	}
	m.DeletedBy = actorID
	m.DeletedAsAdmin = isAdmin
	delete(m.Brands, brandID)
	return nil
}

func (m *MockBrandUsecase) GetBrand(ctx context.Context, brandID string) (*entity.Brand, error) {
	m.GetCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	b, ok := m.Brands[brandID]
	if !ok {
		return nil, entity.ErrBrandNotFound
	}
	return &b, nil
}

func (m *MockBrandUsecase) CachedOwner(ctx context.Context, brandID string) (string, bool) {
	owner, ok := m.Owners[brandID]
	return owner, ok
}

func (m *MockBrandUsecase) ListBrands(ctx context.Context, page, pageSize int) ([]entity.Brand, int64, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	out := make([]entity.Brand, 0, len(m.Brands))
	for _, b := range m.Brands {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (m *MockBrandUsecase) ListBrandsByOwner(ctx context.Context, ownerID string) ([]entity.Brand, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entity.Brand
	for _, b := range m.Brands {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}
