package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/order"
	"github.com/sweetshop/backend/internal/order/dto"
	"github.com/sweetshop/backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo   order.Repository
	events order.EventPublisher
	logger logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, events order.EventPublisher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:   repo,
		events: events,
		logger: log,
	}
}

// OrderCreatedEvent is published to the notifications topic after the order
// has committed.
type OrderCreatedEvent struct {
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	Timestamp time.Time `json:"timestamp"`
}

func (uc *orderUseCase) Create(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, order.ErrEmptyCart
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 || item.Price < 0 {
			return nil, order.ErrInvalidItem
		}
	}

	id := uuid.New().String()
	now := time.Now()

	// Total comes from the supplied snapshots, not the live product rows:
	// the stored price must equal what the buyer was quoted even if the
	// product is repriced mid-checkout.
	var total float64
	items := make([]model.OrderItem, len(input.Items))
	for i, item := range input.Items {
		total += item.Price * float64(item.Quantity)
		items[i] = model.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   id,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	o := &model.Order{
		BaseModel: model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		UserID:    input.UserID,
		Total:     total,
		Status:    model.OrderStatusPending,
		Items:     items,
	}
	if input.Delivery != nil {
		if input.Delivery.RecipientName != "" {
			o.RecipientName = &input.Delivery.RecipientName
		}
		if input.Delivery.Address != "" {
			o.Address = &input.Delivery.Address
		}
		if input.Delivery.Phone != "" {
			o.Phone = &input.Delivery.Phone
		}
		if input.Delivery.Notes != "" {
			o.Notes = &input.Delivery.Notes
		}
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("user_id", o.UserID),
		zap.Float64("total", o.Total),
		zap.Int("items", len(o.Items)),
	)

	uc.publishCreated(o)
	return o, nil
}

func (uc *orderUseCase) publishCreated(o *model.Order) {
	if uc.events == nil {
		return
	}
	event := OrderCreatedEvent{
		EventType: "OrderCreated",
		OrderID:   o.ID,
		UserID:    o.UserID,
		Total:     o.Total,
		ItemCount: len(o.Items),
		Timestamp: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	// Best-effort notification; the order is already durable.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.events.Publish(ctx, []byte(o.UserID), payload); err != nil {
			uc.logger.Error("failed to publish order created event",
				zap.String("order_id", o.ID), zap.Error(err))
		}
	}()
}

func (uc *orderUseCase) GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrOrderNotFound
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, order.ErrForbidden
	}
	return o, nil
}

func (uc *orderUseCase) ListForUser(ctx context.Context, userID string, page, pageSize int) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, &dto.OrderFilters{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

func (uc *orderUseCase) ListAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, order.ErrInvalidStatus
	}

	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrOrderNotFound
	}
	// Completed and cancelled orders are settled; everything else may move
	// freely, statuses get corrected by hand in the admin view.
	if o.Status.Final() {
		return nil, order.ErrOrderFinal
	}

	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	o.Status = status
	o.UpdatedAt = time.Now()
	return o, nil
}
