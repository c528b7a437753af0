package category

import (
	"context"
)

// Repository 分类仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建分类
	Create(ctx context.Context, c *Category) error

	// FindByID 根据ID查找分类
	FindByID(ctx context.Context, id uint) (*Category, error)

	// FindByName 根据名称查找分类
	FindByName(ctx context.Context, name string) (*Category, error)

	// Update 更新分类
	Update(ctx context.Context, c *Category) error

	// Delete 删除分类
	Delete(ctx context.Context, id uint) error

	// List 查询全部分类(附带每个分类的商品数)
	List(ctx context.Context) ([]*WithCount, error)
}

// WithCount 分类视图(附带商品数,只读)
type WithCount struct {
	Category
	ProductCount int64 `json:"product_count"`
}
