package dashboard

import (
	"context"

	"github.com/xiebiao/inventory/internal/domain/inventory"
)

// Queries 仪表盘聚合查询接口
// 设计说明:仪表盘是跨表的只读统计,不属于任何单个领域实体,
// 直接定义查询接口由infrastructure层用SQL聚合实现
type Queries interface {
	// LowStock 低库存商品列表(当前数量 <= 最低库存阈值)
	LowStock(ctx context.Context) ([]*inventory.StockView, error)

	// TotalValue 库存总价值(分): sum(price * quantity)
	TotalValue(ctx context.Context) (int64, error)

	// Summary 汇总统计
	Summary(ctx context.Context) (*Summary, error)
}

// Summary 仪表盘汇总统计
type Summary struct {
	ProductCount  int64 `json:"product_count"`  // 商品种类数
	CategoryCount int64 `json:"category_count"` // 分类数
	TotalQuantity int64 `json:"total_quantity"` // 在库总件数
	LowStockCount int64 `json:"low_stock_count"`
	TotalValue    int64 `json:"total_value"` // 库存总价值(分)
}

// DashboardUseCase 仪表盘用例
type DashboardUseCase struct {
	queries      Queries
	movementRepo inventory.MovementRepository
}

// NewDashboardUseCase 创建仪表盘用例
func NewDashboardUseCase(queries Queries, movementRepo inventory.MovementRepository) *DashboardUseCase {
	return &DashboardUseCase{queries: queries, movementRepo: movementRepo}
}

// LowStock 查询低库存商品
func (uc *DashboardUseCase) LowStock(ctx context.Context) ([]*inventory.StockView, error) {
	return uc.queries.LowStock(ctx)
}

// TotalValue 查询库存总价值(分)
func (uc *DashboardUseCase) TotalValue(ctx context.Context) (int64, error) {
	return uc.queries.TotalValue(ctx)
}

// Summary 查询汇总统计
func (uc *DashboardUseCase) Summary(ctx context.Context) (*Summary, error) {
	return uc.queries.Summary(ctx)
}

// RecentMovements 查询最近的库存流水
func (uc *DashboardUseCase) RecentMovements(ctx context.Context, limit int) ([]*inventory.MovementView, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return uc.movementRepo.ListRecent(ctx, limit)
}
