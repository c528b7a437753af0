package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/inventory/internal/domain/inventory"
	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// movementRepository 库存流水仓储实现(MySQL)
// 教学要点:流水表是Append-Only的,这里只有INSERT和SELECT,
// 没有UPDATE/DELETE路径
type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository 创建流水仓储
func NewMovementRepository(db *gorm.DB) inventory.MovementRepository {
	return &movementRepository{db: db}
}

// Create 追加一条流水(事务内调用,与库存更新同生共死)
func (r *movementRepository) Create(ctx context.Context, m *inventory.Movement) error {
	model := &StockMovementModel{
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Type:      string(m.Direction),
		Notes:     m.Notes,
		UserID:    m.UserID,
	}

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		if isLockWaitTimeout(err) {
			return inventory.ErrConflict
		}
		return apperrors.Wrap(err, "写入库存流水失败")
	}

	// 回填自增ID与时间
	m.ID = model.ID
	m.CreatedAt = model.CreatedAt

	return nil
}

// List 分页查询全部流水(按创建时间倒序)
func (r *movementRepository) List(ctx context.Context, page, pageSize int) ([]*inventory.MovementView, int64, error) {
	return r.list(ctx, 0, page, pageSize)
}

// ListByProduct 分页查询指定商品的流水(按创建时间倒序)
func (r *movementRepository) ListByProduct(ctx context.Context, productID uint, page, pageSize int) ([]*inventory.MovementView, int64, error) {
	return r.list(ctx, productID, page, pageSize)
}

// list 流水查询的公共实现(productID为0表示全部商品)
func (r *movementRepository) list(ctx context.Context, productID uint, page, pageSize int) ([]*inventory.MovementView, int64, error) {
	var total int64

	countQuery := r.db.WithContext(ctx).Model(&StockMovementModel{})
	if productID != 0 {
		countQuery = countQuery.Where("product_id = ?", productID)
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询流水总数失败")
	}

	query := r.viewQuery(ctx)
	if productID != 0 {
		query = query.Where("m.product_id = ?", productID)
	}

	var views []*inventory.MovementView
	offset := (page - 1) * pageSize
	err := query.
		Order("m.created_at DESC, m.id DESC").
		Limit(pageSize).
		Offset(offset).
		Scan(&views).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询流水列表失败")
	}

	return views, total, nil
}

// CountByProduct 统计指定商品的流水条数
func (r *movementRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&StockMovementModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计流水条数失败")
	}
	return count, nil
}

// SumByProduct 指定商品流水带符号数量之和(对账用)
// 核对:库存数量 = 初始库存 + sum(quantity)
func (r *movementRepository) SumByProduct(ctx context.Context, productID uint) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&StockMovementModel{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计流水数量失败")
	}
	return sum, nil
}

// ListRecent 最近N条流水(仪表盘)
func (r *movementRepository) ListRecent(ctx context.Context, limit int) ([]*inventory.MovementView, error) {
	var views []*inventory.MovementView
	err := r.viewQuery(ctx).
		Order("m.created_at DESC, m.id DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询最近流水失败")
	}
	return views, nil
}

// viewQuery 流水视图的基础查询(JOIN商品表与用户表取摘要字段)
// 教学要点:
// 1. LEFT JOIN而非JOIN:商品/用户即使被软删除,流水依然要展示
// 2. 流水表的type列对应领域的Direction
func (r *movementRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("stock_movements AS m").
		Select("m.id, m.product_id, p.name AS product_name, p.sku, m.quantity, m.type AS direction, m.notes, m.user_id, u.username, m.created_at").
		Joins("LEFT JOIN products p ON p.id = m.product_id").
		Joins("LEFT JOIN users u ON u.id = m.user_id")
}
