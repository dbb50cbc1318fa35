package inventory

import (
	"context"
	"time"

	"github.com/sweetshop/backend/internal/inventory/dto"
	"github.com/sweetshop/backend/internal/model"
)

type UseCase interface {
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.AdjustStockResult, error)
	ListLedger(ctx context.Context, filters *dto.LedgerFilters) ([]model.LedgerEntry, int, error)
}

// Locker is the distributed-lock surface the usecase needs; satisfied by
// cache.RedisClient.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

// EventPublisher is satisfied by broker.KafkaProducer.
type EventPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}
