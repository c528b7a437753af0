package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/inventory/internal/domain/inventory"
	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// inventoryRepository 库存仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/inventory/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 行锁等待超时(1205)转换为可重试的冲突错误
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

// GetByProductID 根据商品ID获取库存(普通读,不加锁)
func (r *inventoryRepository) GetByProductID(ctx context.Context, productID uint) (*inventory.Inventory, error) {
	var model InventoryModel
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存失败")
	}

	return toInventoryEntity(&model), nil
}

// LockByProductID 悲观锁读取库存行
// 教学要点:
// 1. SELECT * FROM inventories WHERE product_id = ? FOR UPDATE
// 2. 该行上的排他锁(X锁)把同一商品的并发调整串行化
// 3. 必须使用getDB(ctx)从context获取事务DB(FOR UPDATE只在事务内有意义)
// 4. 锁等待超过innodb_lock_wait_timeout返回1205,转换为ErrConflict
func (r *inventoryRepository) LockByProductID(ctx context.Context, productID uint) (*inventory.Inventory, error) {
	var model InventoryModel
	db := getDB(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryNotFound
		}
		if isLockWaitTimeout(err) {
			return nil, inventory.ErrConflict
		}
		return nil, apperrors.Wrap(err, "锁定库存失败")
	}

	return toInventoryEntity(&model), nil
}

// Create 创建库存记录
func (r *inventoryRepository) Create(ctx context.Context, inv *inventory.Inventory) error {
	model := &InventoryModel{
		ProductID: inv.ProductID,
		Quantity:  inv.Quantity,
	}

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 并发补建时另一个事务先插入了,对调用方按冲突处理(整体重试)
			return inventory.ErrConflict
		}
		if isLockWaitTimeout(err) {
			return inventory.ErrConflict
		}
		return apperrors.Wrap(err, "创建库存记录失败")
	}

	// 回填自增ID
	inv.ID = model.ID
	inv.CreatedAt = model.CreatedAt
	inv.UpdatedAt = model.UpdatedAt

	return nil
}

// UpdateQuantity 更新库存数量
// 前置条件:调用方已在同一事务内通过LockByProductID持有该行的锁
func (r *inventoryRepository) UpdateQuantity(ctx context.Context, productID uint, quantity int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&InventoryModel{}).
		Where("product_id = ?", productID).
		Update("quantity", quantity)

	if result.Error != nil {
		if isLockWaitTimeout(result.Error) {
			return inventory.ErrConflict
		}
		return apperrors.Wrap(result.Error, "更新库存数量失败")
	}

	if result.RowsAffected == 0 {
		return inventory.ErrInventoryNotFound
	}

	return nil
}

// DeleteByProductID 删除库存记录(商品删除的级联,事务内调用)
func (r *inventoryRepository) DeleteByProductID(ctx context.Context, productID uint) error {
	db := getDB(ctx, r.db)
	result := db.Where("product_id = ?", productID).Delete(&InventoryModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除库存记录失败")
	}

	if result.RowsAffected == 0 {
		return inventory.ErrInventoryNotFound
	}

	return nil
}

// ListWithProduct 查询全部库存(JOIN商品表取摘要字段)
func (r *inventoryRepository) ListWithProduct(ctx context.Context) ([]*inventory.StockView, error) {
	var views []*inventory.StockView

	err := r.db.WithContext(ctx).
		Table("inventories AS i").
		Select("i.product_id, p.name AS product_name, p.sku, p.price, p.minimum_stock, i.quantity, i.updated_at").
		Joins("JOIN products p ON p.id = i.product_id AND p.deleted_at IS NULL").
		Order("p.name ASC").
		Scan(&views).Error

	if err != nil {
		return nil, apperrors.Wrap(err, "查询库存列表失败")
	}

	return views, nil
}

// GetWithProduct 查询单个商品的库存(JOIN商品表取摘要字段)
func (r *inventoryRepository) GetWithProduct(ctx context.Context, productID uint) (*inventory.StockView, error) {
	var view inventory.StockView

	result := r.db.WithContext(ctx).
		Table("inventories AS i").
		Select("i.product_id, p.name AS product_name, p.sku, p.price, p.minimum_stock, i.quantity, i.updated_at").
		Joins("JOIN products p ON p.id = i.product_id AND p.deleted_at IS NULL").
		Where("i.product_id = ?", productID).
		Limit(1).
		Scan(&view)

	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, "查询库存失败")
	}
	if result.RowsAffected == 0 {
		return nil, inventory.ErrInventoryNotFound
	}

	return &view, nil
}

// toInventoryEntity GORM模型 → 领域实体
func toInventoryEntity(model *InventoryModel) *inventory.Inventory {
	return &inventory.Inventory{
		ID:        model.ID,
		ProductID: model.ProductID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
