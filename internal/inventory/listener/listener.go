package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sweetshop/backend/internal/inventory"
	"github.com/sweetshop/backend/internal/inventory/dto"
	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/pkg/broker"
	"github.com/sweetshop/backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// ChannelSalesListener consumes sale events originating outside this API
// (marketplace and in-store channels) and applies them through the same
// stock protocol as direct purchases. Orders placed through this API do not
// flow through here; their stock was already decremented at reserve time.
type ChannelSalesListener struct {
	consumer *broker.KafkaConsumer
	uc       inventory.UseCase
	logger   logger.ZapLogger
}

func NewChannelSalesListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, logger logger.ZapLogger) *ChannelSalesListener {
	return &ChannelSalesListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *ChannelSalesListener) Start(ctx context.Context) {
	l.logger.Info("starting channel sales listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping channel sales listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type ChannelSaleEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Channel   string            `json:"channel"`
	Items     []ChannelSaleItem `json:"items"`
	Timestamp time.Time         `json:"timestamp"`
}

type ChannelSaleItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (l *ChannelSalesListener) processMessage(ctx context.Context, value []byte) {
	var event ChannelSaleEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal channel sale event", zap.Error(err))
		return
	}

	if event.EventType != "ChannelSale" {
		return
	}

	l.logger.Info("processing channel sale",
		zap.String("event_id", event.EventID),
		zap.String("channel", event.Channel),
	)

	for _, item := range event.Items {
		_, err := l.uc.AdjustStock(ctx, &dto.AdjustStockInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Kind:      model.KindPurchase,
			Note:      "channel sale " + event.EventID,
		})
		if err != nil {
			l.logger.Error("failed to apply channel sale item",
				zap.String("event_id", event.EventID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			// Oversold channel sales need manual reconciliation; the ledger
			// keeps the paper trail either way.
		}
	}
}
