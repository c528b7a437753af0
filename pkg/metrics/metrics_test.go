package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics_Idempotent 重复初始化不应panic（promauto重复注册会panic）
func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	InitMetrics() // 第二次应被initialized标记拦截

	if HTTPRequestsTotal == nil {
		t.Fatal("期望HTTPRequestsTotal已初始化")
	}
	if StockAdjustmentsTotal == nil {
		t.Fatal("期望StockAdjustmentsTotal已初始化")
	}
}

// TestHelpers_BeforeInit 未初始化时所有记录函数静默跳过
// 指标是旁路观测,不依赖InitMetrics的调用方(如单元测试)不应因计数panic
func TestHelpers_BeforeInit(t *testing.T) {
	saved := initialized
	initialized = false
	defer func() { initialized = saved }()

	ObserveAdjustment("remove", "success", 0.001)
	IncLowStockAlert()
	IncMessagePublished("inventory.low_stock", "success")
}

// TestObserveAdjustment 库存调整指标按direction/result维度累加
func TestObserveAdjustment(t *testing.T) {
	InitMetrics()

	before := counterValue(t, StockAdjustmentsTotal.WithLabelValues("remove", "insufficient"))

	ObserveAdjustment("remove", "insufficient", 0.002)
	ObserveAdjustment("remove", "insufficient", 0.003)

	after := counterValue(t, StockAdjustmentsTotal.WithLabelValues("remove", "insufficient"))
	if after-before != 2 {
		t.Errorf("期望计数增加2，实际增加%v", after-before)
	}
}

// counterValue 读取Counter当前值
func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("读取指标失败: %v", err)
	}
	return m.GetCounter().GetValue()
}
