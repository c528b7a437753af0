package event

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/inventory/internal/domain/inventory"
	"github.com/xiebiao/inventory/pkg/circuitbreaker"
	"github.com/xiebiao/inventory/pkg/metrics"
	"github.com/xiebiao/inventory/pkg/mq"
)

// 低库存告警的路由键(topic交换机)
const routingKeyLowStock = "inventory.low_stock"

// LowStockPublisher 低库存告警发布器(RabbitMQ实现)
// 设计说明:
// 1. 实现domain/inventory的AlertPublisher接口
// 2. 用熔断器包住MQ调用:Broker故障时快速失败,
//    不让每次库存调整都拖着一次失败的网络往返
// 3. 发布失败只记日志,库存调整本身已经提交成功
type LowStockPublisher struct {
	publisher *mq.Publisher
	breaker   *circuitbreaker.CircuitBreaker
}

// NewLowStockPublisher 创建低库存告警发布器
func NewLowStockPublisher(publisher *mq.Publisher) *LowStockPublisher {
	breaker := circuitbreaker.NewCircuitBreaker("low_stock_alerts", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			// 连续5次失败后熔断
			return counts.ConsecutiveFailures >= 5
		},
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("[alert] 熔断器%s状态变更: %s → %s", name, from, to)
	})

	return &LowStockPublisher{
		publisher: publisher,
		breaker:   breaker,
	}
}

// PublishLowStock 发布低库存事件
func (p *LowStockPublisher) PublishLowStock(ctx context.Context, event inventory.LowStockEvent) error {
	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(ctx, routingKeyLowStock, event)
	})

	if err != nil {
		metrics.IncMessagePublished(routingKeyLowStock, "error")
		log.Printf("[alert] 低库存告警发布失败(商品ID=%d): %v", event.ProductID, err)
		return err
	}

	metrics.IncMessagePublished(routingKeyLowStock, "success")
	return nil
}

// NoopPublisher 空实现(未配置消息队列时使用)
// 低库存信息依然通过API响应的low_stock字段返回,只是不再外发事件
type NoopPublisher struct{}

// PublishLowStock 丢弃事件
func (NoopPublisher) PublishLowStock(ctx context.Context, event inventory.LowStockEvent) error {
	return nil
}
