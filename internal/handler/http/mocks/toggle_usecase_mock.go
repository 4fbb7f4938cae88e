package mocks

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
)

// ToggleCall records one Toggle invocation.
type ToggleCall struct {
	BrandID  string
	ActorID  string
	Relation entity.Relation
	OwnerID  string
}

// MockToggleUsecase flips an in-memory membership per (brand, actor, relation)
// unless Err is set.
type MockToggleUsecase struct {
	Err     error
	Calls   []ToggleCall
	members map[ToggleCall]bool
}

var _ usecasecontract.IMembershipToggleUseCase = (*MockToggleUsecase)(nil)

func NewMockToggleUsecase() *MockToggleUsecase {
	return &MockToggleUsecase{members: make(map[ToggleCall]bool)}
}

func (m *MockToggleUsecase) Toggle(ctx context.Context, brandID, actorID string, relation entity.Relation, ownerID string) (bool, error) {
	m.Calls = append(m.Calls, ToggleCall{BrandID: brandID, ActorID: actorID, Relation: relation, OwnerID: ownerID})
	if m.Err != nil {
		return false, m.Err
	}
	key := ToggleCall{BrandID: brandID, ActorID: actorID, Relation: relation}
	m.members[key] = !m.members[key]
	return m.members[key], nil
}
