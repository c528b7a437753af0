package product

import (
	"context"
	"time"
)

// Repository 商品仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现,便于Mock测试
type Repository interface {
	// Create 创建商品(商品创建事务内调用)
	Create(ctx context.Context, p *Product) error

	// FindByID 根据ID查找商品
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindBySKU 根据SKU查找商品
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// Update 更新商品信息
	Update(ctx context.Context, p *Product) error

	// Delete 删除商品(商品删除事务内调用)
	Delete(ctx context.Context, id uint) error

	// List 分页查询商品列表(关联分类名与当前库存数量)
	List(ctx context.Context, params ListParams) ([]*Detail, int64, error)

	// FindDetail 查询单个商品详情(关联分类名与当前库存数量)
	FindDetail(ctx context.Context, id uint) (*Detail, error)

	// CountByCategory 统计分类下的商品数(分类删除前的守卫检查)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page       int    // 页码(从1开始)
	PageSize   int    // 每页数量
	Keyword    string // 搜索关键词(商品名、SKU)
	CategoryID uint   // 按分类过滤(0表示全部)
	SortBy     string // 排序字段(price_asc, price_desc, created_at_desc)
}

// Detail 商品详情视图(关联分类名与库存数量,只读)
type Detail struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Description  string    `json:"description,omitempty"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Price        int64     `json:"price"`
	MinimumStock int       `json:"minimum_stock"`
	ImageURL     string    `json:"image_url,omitempty"`
	Quantity     int       `json:"quantity"` // 当前库存(来自库存表)
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
