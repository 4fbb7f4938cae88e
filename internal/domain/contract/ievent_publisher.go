package contract

import (
	"context"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

// IEventPublisher announces committed membership changes to other services.
type IEventPublisher interface {
	PublishMembershipEvent(ctx context.Context, event entity.MembershipEvent) error
}
