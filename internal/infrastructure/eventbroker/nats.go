package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/domain/entity"
	"github.com/classbrand/brandnet/internal/infrastructure/logger"
	"github.com/nats-io/nats.go"
)

const headerRequestID = "X-Request-ID"

// NatsPublisher publishes membership events on subjects such as "brand.followed".
type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

var _ contract.IEventPublisher = (*NatsPublisher)(nil)

// Connect dials the NATS server with reconnects enabled.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("brandnet-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}

func (p *NatsPublisher) PublishMembershipEvent(ctx context.Context, event entity.MembershipEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling error: %w", err)
	}

	msg := &nats.Msg{
		Subject: event.Subject(),
		Data:    data,
		Header:  nats.Header{},
	}
	if id := logger.RequestID(ctx); id != "" {
		msg.Header.Set(headerRequestID, id)
	}
	return p.nc.PublishMsg(msg)
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

var _ contract.IEventPublisher = NoopPublisher{}

func (NoopPublisher) PublishMembershipEvent(ctx context.Context, event entity.MembershipEvent) error {
	return nil
}
