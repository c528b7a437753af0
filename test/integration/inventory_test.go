package integration

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：库存调整集成测试
// 覆盖整个系统最核心的业务流程：
// 1. 入库/出库调整与流水落账
// 2. 库存不足整单拒绝
// 3. 并发出库不超卖（悲观锁验证）
//
// 运行方式:
//  1. 启动服务: go run ./cmd/api
//  2. 运行测试: go test ./test/integration/ -run TestAdjustStock -v

func TestAdjustStockFlow(t *testing.T) {
	_, token := RegisterTestUser(t, "stocker")
	productID := CreateTestProduct(t, token, "测试沙发", 10)

	t.Run("入库增加库存", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), map[string]interface{}{
			"type":     "add",
			"quantity": 5,
			"notes":    "到货入库",
		}, token)
		require.Equal(t, 0, resp.Code, "入库失败: %s", resp.Message)

		var data AdjustData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 15, data.Quantity, "10 + 5 = 15")
		assert.Equal(t, 10, data.PreviousQuantity, "应返回调整前数量")
		assert.Equal(t, 5, data.Adjusted)
		assert.NotZero(t, data.MovementID, "应产生流水")

		t.Logf("✓ 入库成功，当前库存: %d", data.Quantity)
	})

	t.Run("出库减少库存", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), map[string]interface{}{
			"type":     "remove",
			"quantity": 4,
			"notes":    "门店销售",
		}, token)
		require.Equal(t, 0, resp.Code, "出库失败: %s", resp.Message)

		var data AdjustData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 11, data.Quantity, "15 - 4 = 11")
		assert.Equal(t, -4, data.Adjusted, "出库变动为负")

		t.Logf("✓ 出库成功，当前库存: %d", data.Quantity)
	})

	t.Run("库存不足整单拒绝", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), map[string]interface{}{
			"type":     "remove",
			"quantity": 999,
		}, token)
		assert.Equal(t, 40001, resp.Code, "应返回库存不足错误")

		// 数量应保持不变(不允许部分出库)
		stockResp := GetJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), "")
		require.Equal(t, 0, stockResp.Code)
		var stock StockData
		require.NoError(t, json.Unmarshal(stockResp.Data, &stock))
		assert.Equal(t, 11, stock.Quantity, "失败的出库不应改变库存")

		t.Logf("✓ 库存不足被正确拒绝，库存保持: %d", stock.Quantity)
	})

	t.Run("非法调整类型被拒绝", func(t *testing.T) {
		for _, badType := range []string{"in", "out", "ADD", "Remove"} {
			resp := PostJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), map[string]interface{}{
				"type":     badType,
				"quantity": 1,
			}, token)
			assert.NotEqual(t, 0, resp.Code, "类型%q应被拒绝", badType)
		}
		t.Log("✓ 非法调整类型被正确拒绝")
	})

	t.Run("数量必须为正", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), map[string]interface{}{
			"type":     "add",
			"quantity": 0,
		}, token)
		assert.NotEqual(t, 0, resp.Code, "数量0应被拒绝")

		resp = PostJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), map[string]interface{}{
			"type":     "remove",
			"quantity": -5,
		}, token)
		assert.NotEqual(t, 0, resp.Code, "负数数量应被拒绝")

		t.Log("✓ 非正数量被正确拒绝")
	})

	t.Run("未登录不能调整库存", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), map[string]interface{}{
			"type":     "add",
			"quantity": 1,
		}, "")
		assert.NotEqual(t, 0, resp.Code, "未登录应被拒绝")
		t.Log("✓ 未认证请求被正确拒绝")
	})

	t.Run("商品不存在", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/inventory/99999999", map[string]interface{}{
			"type":     "add",
			"quantity": 1,
		}, token)
		assert.Equal(t, 40402, resp.Code, "应返回商品不存在错误")
		t.Log("✓ 不存在的商品被正确拒绝")
	})
}

// TestAdjustStockConcurrent 并发出库不超卖
//
// 教学重点:这是悲观锁(SELECT FOR UPDATE)的端到端验证
// 库存10件,两个请求同时出库6件:
// 没有锁的实现会双双通过余额检查,最终发走12件、库存-2
// 正确的实现恰好放行一个,另一个返回40001库存不足
func TestAdjustStockConcurrent(t *testing.T) {
	_, token := RegisterTestUser(t, "racer")
	productID := CreateTestProduct(t, token, "并发测试餐桌", 10)

	const workers = 2
	results := make([]*Response, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = PostJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), map[string]interface{}{
				"type":     "remove",
				"quantity": 6,
				"notes":    fmt.Sprintf("并发出库#%d", idx),
			}, token)
		}(i)
	}
	wg.Wait()

	var succeeded, insufficient int
	for _, resp := range results {
		switch resp.Code {
		case 0:
			succeeded++
		case 40001:
			insufficient++
		default:
			t.Fatalf("意外的响应码: %d (%s)", resp.Code, resp.Message)
		}
	}
	assert.Equal(t, 1, succeeded, "两个并发出库应恰好一个成功")
	assert.Equal(t, 1, insufficient, "另一个应因库存不足失败")

	// 最终库存 = 10 - 6 = 4，永不为负
	stockResp := GetJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), "")
	require.Equal(t, 0, stockResp.Code)
	var stock StockData
	require.NoError(t, json.Unmarshal(stockResp.Data, &stock))
	assert.Equal(t, 4, stock.Quantity, "最终库存应为4")
	assert.GreaterOrEqual(t, stock.Quantity, 0, "库存永不为负")

	t.Logf("✓ 并发出库正确串行化，最终库存: %d", stock.Quantity)
}

// TestMovementLedger 流水账与库存对账
func TestMovementLedger(t *testing.T) {
	username, token := RegisterTestUser(t, "auditor")
	productID := CreateTestProduct(t, token, "对账测试书柜", 20)

	// 执行一组调整: +5, -8, +3 → 最终 20+5-8+3 = 20
	ops := []struct {
		typ      string
		quantity int
	}{
		{"add", 5}, {"remove", 8}, {"add", 3},
	}
	for _, op := range ops {
		resp := PostJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), map[string]interface{}{
			"type":     op.typ,
			"quantity": op.quantity,
		}, token)
		require.Equal(t, 0, resp.Code, "调整失败: %s", resp.Message)
	}

	t.Run("流水完整且带符号", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/inventory/movements?product_id=%d&page_size=50", BaseURL, productID), "")
		require.Equal(t, 0, resp.Code, "查询流水失败: %s", resp.Message)

		var list MovementListData
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		require.Equal(t, int64(3), list.Total, "应有3条流水(初始库存不产生流水)")

		// 倒序返回:最新的在前
		assert.Equal(t, 3, list.List[0].Quantity)
		assert.Equal(t, "add", list.List[0].Type)
		assert.Equal(t, -8, list.List[1].Quantity)
		assert.Equal(t, "remove", list.List[1].Type)
		assert.Equal(t, 5, list.List[2].Quantity)

		// 每条流水记录操作人
		for _, m := range list.List {
			assert.Equal(t, username, m.Username, "流水应记录操作人")
		}

		t.Logf("✓ 流水账完整: %d 条记录", list.Total)
	})

	t.Run("账实相符", func(t *testing.T) {
		stockResp := GetJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), "")
		require.Equal(t, 0, stockResp.Code)
		var stock StockData
		require.NoError(t, json.Unmarshal(stockResp.Data, &stock))

		// 初始20 + (5-8+3) = 20
		assert.Equal(t, 20, stock.Quantity, "库存数量应等于初始库存加流水净变动")
		t.Logf("✓ 账实相符，库存: %d", stock.Quantity)
	})
}

// TestInventoryQuery 库存查询接口
func TestInventoryQuery(t *testing.T) {
	_, token := RegisterTestUser(t, "viewer")
	productID := CreateTestProduct(t, token, "查询测试衣柜", 2)

	t.Run("单品库存带低库存标记", func(t *testing.T) {
		// minimum_stock=3,库存2,应标记低库存
		resp := GetJSON(t, fmt.Sprintf("%s/inventory/%d", BaseURL, productID), "")
		require.Equal(t, 0, resp.Code)

		var stock StockData
		require.NoError(t, json.Unmarshal(resp.Data, &stock))
		assert.Equal(t, 2, stock.Quantity)
		assert.True(t, stock.LowStock, "库存2低于告警线3,应标记低库存")

		t.Logf("✓ 低库存标记正确: quantity=%d low_stock=%v", stock.Quantity, stock.LowStock)
	})

	t.Run("库存列表包含新建商品", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/inventory", "")
		require.Equal(t, 0, resp.Code)

		var list []StockData
		require.NoError(t, json.Unmarshal(resp.Data, &list))

		found := false
		for _, s := range list {
			if s.ProductID == productID {
				found = true
				assert.Equal(t, 2, s.Quantity)
			}
		}
		assert.True(t, found, "库存列表应包含新建商品")
		t.Logf("✓ 库存列表共 %d 条", len(list))
	})

	t.Run("不存在商品的库存返回404", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/inventory/99999999", "")
		assert.Equal(t, 40402, resp.Code, "不存在的商品应返回商品不存在")
		t.Log("✓ 不存在商品的库存查询被正确拒绝")
	})
}
