package inventory

import (
	"context"
	"time"
)

// LowStockEvent 低库存告警事件
// 库存调整提交后，剩余数量跌到商品最低库存线（含）以下时发出
type LowStockEvent struct {
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	SKU          string    `json:"sku"`
	Quantity     int       `json:"quantity"`
	MinimumStock int       `json:"minimum_stock"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// AlertPublisher 告警发布接口
// 发布是尽力而为的旁路：失败只记日志，绝不影响已提交的库存调整
type AlertPublisher interface {
	PublishLowStock(ctx context.Context, event LowStockEvent) error
}
