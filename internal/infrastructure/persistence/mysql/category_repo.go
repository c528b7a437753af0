package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/inventory/internal/domain/category"
	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// categoryRepository 分类仓储实现(MySQL)
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

// Create 创建分类
func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{
		Name:        c.Name,
		Description: c.Description,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找分类
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	return toCategoryEntity(&model), nil
}

// FindByName 根据名称查找分类
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	var model CategoryModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	return toCategoryEntity(&model), nil
}

// Update 更新分类
func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return category.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "更新分类失败")
	}

	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除分类(软删除)
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&CategoryModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}

	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

// List 查询全部分类(附带每个分类的商品数)
func (r *categoryRepository) List(ctx context.Context) ([]*category.WithCount, error) {
	var rows []*categoryWithCountRow

	err := r.db.WithContext(ctx).
		Table("categories AS c").
		Select("c.id, c.name, c.description, c.created_at, c.updated_at, COUNT(p.id) AS product_count").
		Joins("LEFT JOIN products p ON p.category_id = c.id AND p.deleted_at IS NULL").
		Where("c.deleted_at IS NULL").
		Group("c.id, c.name, c.description, c.created_at, c.updated_at").
		Order("c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	result := make([]*category.WithCount, len(rows))
	for i, row := range rows {
		result[i] = &category.WithCount{
			Category: category.Category{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			ProductCount: row.ProductCount,
		}
	}
	return result, nil
}

// categoryWithCountRow 分类+商品数的扫描结构
type categoryWithCountRow struct {
	CategoryModel
	ProductCount int64
}

// toCategoryEntity GORM模型 → 领域实体
func toCategoryEntity(model *CategoryModel) *category.Category {
	return &category.Category{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
