package category

import (
	"context"

	"github.com/xiebiao/inventory/internal/domain/category"
)

// ManageCategoryUseCase 分类管理用例
// 设计说明:分类的业务规则都在领域服务里(名称唯一、删除守卫),
// 应用层只做流程编排与DTO转换
type ManageCategoryUseCase struct {
	categoryService category.Service
}

// NewManageCategoryUseCase 创建分类管理用例
func NewManageCategoryUseCase(categoryService category.Service) *ManageCategoryUseCase {
	return &ManageCategoryUseCase{categoryService: categoryService}
}

// CategoryRequest 分类创建/更新请求DTO
type CategoryRequest struct {
	Name        string
	Description string
}

// Create 创建分类
func (uc *ManageCategoryUseCase) Create(ctx context.Context, req CategoryRequest) (*category.Category, error) {
	return uc.categoryService.CreateCategory(ctx, req.Name, req.Description)
}

// Get 获取分类
func (uc *ManageCategoryUseCase) Get(ctx context.Context, id uint) (*category.Category, error) {
	return uc.categoryService.GetCategory(ctx, id)
}

// Update 更新分类
func (uc *ManageCategoryUseCase) Update(ctx context.Context, id uint, req CategoryRequest) (*category.Category, error) {
	return uc.categoryService.UpdateCategory(ctx, id, req.Name, req.Description)
}

// Delete 删除分类(分类下存在商品时返回ErrCategoryInUse)
func (uc *ManageCategoryUseCase) Delete(ctx context.Context, id uint) error {
	return uc.categoryService.DeleteCategory(ctx, id)
}

// List 查询全部分类(附带商品数)
func (uc *ManageCategoryUseCase) List(ctx context.Context) ([]*category.WithCount, error) {
	return uc.categoryService.ListCategories(ctx)
}
