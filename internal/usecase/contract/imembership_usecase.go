package usecasecontract

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

// IMembershipToggleUseCase flips an actor's membership in a brand relation.
type IMembershipToggleUseCase interface {
	// Toggle returns true when the actor is a member after the commit.
	// An empty ownerID defers the self-relation check to the stored owner.
	Toggle(ctx context.Context, brandID, actorID string, relation entity.Relation, ownerID string) (bool, error)
}
