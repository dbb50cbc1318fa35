package order

import (
	"context"

	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/order/dto"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)

	// GetByID enforces ownership: a non-admin requester only sees their own
	// orders.
	GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*model.Order, error)
	ListForUser(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int, error)
	ListAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
}

// EventPublisher is satisfied by broker.KafkaProducer.
type EventPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}
