package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sweetshop/backend/internal/inventory"
	"github.com/sweetshop/backend/internal/inventory/dto"
	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo              inventory.Repository
	locker            inventory.Locker
	events            inventory.EventPublisher
	lowStockThreshold int
	logger            logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, locker inventory.Locker, events inventory.EventPublisher, lowStockThreshold int, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:              repo,
		locker:            locker,
		events:            events,
		lowStockThreshold: lowStockThreshold,
		logger:            log,
	}
}

// LowStockEvent is published after a decrement leaves a product at or below
// the configured threshold.
type LowStockEvent struct {
	EventType string    `json:"event_type"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.AdjustStockResult, error) {
	if input.Quantity <= 0 {
		return nil, inventory.ErrInvalidQuantity
	}
	if !input.Kind.Valid() {
		return nil, inventory.ErrInvalidKind
	}

	// The redis lock only limits contention on the hot row; correctness
	// comes from the row lock inside the repository transaction.
	lockKey := fmt.Sprintf("lock:stock:%s", input.ProductID)
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, inventory.ErrLockContention
	}
	defer uc.locker.ReleaseLock(ctx, lockKey, lockValue)

	product, entry, err := uc.repo.AdjustStock(ctx, input)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("stock adjusted",
		zap.String("product_id", product.ID),
		zap.String("kind", string(input.Kind)),
		zap.Int("quantity", input.Quantity),
		zap.Int("quantity_after", product.Quantity),
		zap.String("entry_id", entry.ID),
	)

	if input.Kind.Decrements() && product.Quantity <= uc.lowStockThreshold {
		uc.publishLowStock(product)
	}

	return &dto.AdjustStockResult{Product: product, Entry: entry}, nil
}

func (uc *inventoryUseCase) publishLowStock(p *model.Product) {
	if uc.events == nil {
		return
	}
	event := LowStockEvent{
		EventType: "stock.low",
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Timestamp: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	// Best-effort, detached from the request: the adjustment already
	// committed and must not be failed by a broker hiccup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.events.Publish(ctx, []byte(p.ID), payload); err != nil {
			uc.logger.Error("failed to publish low stock event",
				zap.String("product_id", p.ID), zap.Error(err))
		}
	}()
}

func (uc *inventoryUseCase) ListLedger(ctx context.Context, filters *dto.LedgerFilters) ([]model.LedgerEntry, int, error) {
	return uc.repo.ListLedger(ctx, filters)
}
