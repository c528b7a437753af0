package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker() *CircuitBreaker {
	return NewCircuitBreaker("mq-publisher", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// TestCircuitBreaker_ClosedState 测试关闭状态（正常）
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := newTestBreaker()

	// 执行成功请求
	for i := 0; i < 10; i++ {
		err := cb.Execute(func() error {
			return nil // 模拟发布成功
		})
		if err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}

	counts := cb.Counts()
	if counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_OpenState 测试打开状态（熔断）
func TestCircuitBreaker_OpenState(t *testing.T) {
	cb := newTestBreaker()

	// 连续失败5次触发熔断
	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error {
			return errors.New("broker unavailable")
		})
	}

	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	// 打开状态下请求应快速失败，不调用req
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if err != ErrOpenState {
		t.Errorf("期望ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断打开时不应调用业务函数")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 测试半开状态恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("mq-publisher", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     50 * time.Millisecond, // 缩短超时便于测试
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	// 触发熔断
	for i := 0; i < 2; i++ {
		_ = cb.Execute(func() error { return errors.New("down") })
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望OPEN，实际%s", cb.State())
	}

	// 等待超时，进入半开
	time.Sleep(60 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("期望HALF_OPEN，实际%s", cb.State())
	}

	// 半开状态下成功一次，恢复关闭
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("探测请求应成功: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("期望CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 测试状态变化回调
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := newTestBreaker()

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}

	if len(transitions) != 1 || transitions[0] != "CLOSED->OPEN" {
		t.Errorf("期望一次CLOSED->OPEN转换，实际%v", transitions)
	}
}
