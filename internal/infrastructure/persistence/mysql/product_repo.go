package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/inventory/internal/domain/product"
	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// productRepository 商品仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/product/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如SKU重复),转换为业务错误
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	// 1. 领域实体 → GORM模型
	model := &ProductModel{
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		Price:        p.Price,
		MinimumStock: p.MinimumStock,
		ImageURL:     p.ImageURL,
	}

	// 2. 插入数据库(可能在商品创建事务内)
	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		// 检查是否为SKU重复错误
		if isDuplicateError(err) {
			return product.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	// 3. 回填自增ID
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	db := getDB(ctx, r.db)
	err := db.First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toProductEntity(&model), nil
}

// FindBySKU 根据SKU查找商品
func (r *productRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toProductEntity(&model), nil
}

// Update 更新商品信息
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model := &ProductModel{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		Price:        p.Price,
		MinimumStock: p.MinimumStock,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt,
	}

	// 使用Save更新所有字段
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return product.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "更新商品失败")
	}

	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除商品(软删除,商品删除事务内调用)
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)
	result := db.Delete(&ProductModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}

	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

// List 分页查询商品列表(JOIN分类表与库存表)
func (r *productRepository) List(ctx context.Context, params product.ListParams) ([]*product.Detail, int64, error) {
	var total int64

	// 构建查询
	countQuery := r.db.WithContext(ctx).Model(&ProductModel{})

	// 关键词搜索(商品名、SKU)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		countQuery = countQuery.Where("name LIKE ? OR sku LIKE ?", keyword, keyword)
	}
	if params.CategoryID != 0 {
		countQuery = countQuery.Where("category_id = ?", params.CategoryID)
	}

	// 查询总数
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	query := r.detailQuery(ctx)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("p.name LIKE ? OR p.sku LIKE ?", keyword, keyword)
	}
	if params.CategoryID != 0 {
		query = query.Where("p.category_id = ?", params.CategoryID)
	}

	// 排序
	switch params.SortBy {
	case "price_asc":
		query = query.Order("p.price ASC")
	case "price_desc":
		query = query.Order("p.price DESC")
	case "created_at_desc":
		query = query.Order("p.created_at DESC")
	default:
		query = query.Order("p.created_at DESC") // 默认按创建时间降序
	}

	// 分页
	offset := (params.Page - 1) * params.PageSize
	query = query.Limit(params.PageSize).Offset(offset)

	// 查询数据
	var details []*product.Detail
	if err := query.Scan(&details).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	return details, total, nil
}

// FindDetail 查询单个商品详情
func (r *productRepository) FindDetail(ctx context.Context, id uint) (*product.Detail, error) {
	var detail product.Detail

	result := r.detailQuery(ctx).
		Where("p.id = ?", id).
		Limit(1).
		Scan(&detail)

	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, "查询商品详情失败")
	}
	if result.RowsAffected == 0 {
		return nil, product.ErrProductNotFound
	}

	return &detail, nil
}

// CountByCategory 统计分类下的商品数(分类删除前的守卫检查)
func (r *productRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ProductModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计分类商品数失败")
	}
	return count, nil
}

// detailQuery 商品详情视图的基础查询
// LEFT JOIN库存表:没有库存记录的商品按零库存展示
func (r *productRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.id, p.name, p.sku, p.description, p.category_id, c.name AS category_name, p.price, p.minimum_stock, p.image_url, COALESCE(i.quantity, 0) AS quantity, p.created_at, p.updated_at").
		Joins("LEFT JOIN categories c ON c.id = p.category_id AND c.deleted_at IS NULL").
		Joins("LEFT JOIN inventories i ON i.product_id = p.id").
		Where("p.deleted_at IS NULL")
}

// toProductEntity GORM模型 → 领域实体
func toProductEntity(model *ProductModel) *product.Product {
	return &product.Product{
		ID:           model.ID,
		Name:         model.Name,
		SKU:          model.SKU,
		Description:  model.Description,
		CategoryID:   model.CategoryID,
		Price:        model.Price,
		MinimumStock: model.MinimumStock,
		ImageURL:     model.ImageURL,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
