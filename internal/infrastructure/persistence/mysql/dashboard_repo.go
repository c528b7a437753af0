package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/inventory/internal/application/dashboard"
	"github.com/xiebiao/inventory/internal/domain/inventory"
	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// dashboardRepository 仪表盘聚合查询实现(MySQL)
// 设计说明:仪表盘都是跨表只读统计,直接用SQL聚合,
// 不经过领域实体(没有业务行为,只有数字)
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘查询
func NewDashboardRepository(db *gorm.DB) dashboard.Queries {
	return &dashboardRepository{db: db}
}

// LowStock 低库存商品列表(当前数量 <= 最低库存阈值)
func (r *dashboardRepository) LowStock(ctx context.Context) ([]*inventory.StockView, error) {
	var views []*inventory.StockView

	err := r.db.WithContext(ctx).
		Table("inventories AS i").
		Select("i.product_id, p.name AS product_name, p.sku, p.price, p.minimum_stock, i.quantity, i.updated_at").
		Joins("JOIN products p ON p.id = i.product_id AND p.deleted_at IS NULL").
		Where("i.quantity <= p.minimum_stock").
		Order("i.quantity ASC").
		Scan(&views).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询低库存商品失败")
	}

	return views, nil
}

// TotalValue 库存总价值(分): sum(price * quantity)
func (r *dashboardRepository) TotalValue(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Table("inventories AS i").
		Joins("JOIN products p ON p.id = i.product_id AND p.deleted_at IS NULL").
		Select("COALESCE(SUM(p.price * i.quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计库存价值失败")
	}
	return total, nil
}

// Summary 汇总统计
func (r *dashboardRepository) Summary(ctx context.Context) (*dashboard.Summary, error) {
	var s dashboard.Summary

	if err := r.db.WithContext(ctx).Model(&ProductModel{}).Count(&s.ProductCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计商品数失败")
	}

	if err := r.db.WithContext(ctx).Model(&CategoryModel{}).Count(&s.CategoryCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计分类数失败")
	}

	err := r.db.WithContext(ctx).
		Table("inventories AS i").
		Joins("JOIN products p ON p.id = i.product_id AND p.deleted_at IS NULL").
		Select("COALESCE(SUM(i.quantity), 0)").
		Scan(&s.TotalQuantity).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计在库总件数失败")
	}

	err = r.db.WithContext(ctx).
		Table("inventories AS i").
		Joins("JOIN products p ON p.id = i.product_id AND p.deleted_at IS NULL").
		Where("i.quantity <= p.minimum_stock").
		Select("COUNT(*)").
		Scan(&s.LowStockCount).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计低库存商品数失败")
	}

	total, err := r.TotalValue(ctx)
	if err != nil {
		return nil, err
	}
	s.TotalValue = total

	return &s, nil
}
