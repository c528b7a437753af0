package product

import (
	"context"

	"github.com/xiebiao/inventory/internal/domain/product"
)

// ManageProductUseCase 商品查询与更新用例
// 设计说明:这些操作只涉及商品单表,直接委托领域服务
type ManageProductUseCase struct {
	productService product.Service
}

// NewManageProductUseCase 创建商品管理用例
func NewManageProductUseCase(productService product.Service) *ManageProductUseCase {
	return &ManageProductUseCase{productService: productService}
}

// UpdateProductRequest 商品更新请求DTO
// 空值/零值字段表示不修改(SKU不在其中:SKU创建后不可变)
type UpdateProductRequest struct {
	ID           uint
	Name         string
	Description  string
	CategoryID   uint
	Price        int64 // 0表示不修改
	MinimumStock int   // 负数表示不修改
	ImageURL     string
}

// Get 获取商品详情(含分类名与当前库存)
func (uc *ManageProductUseCase) Get(ctx context.Context, id uint) (*product.Detail, error) {
	return uc.productService.GetProductDetail(ctx, id)
}

// List 分页查询商品列表
func (uc *ManageProductUseCase) List(ctx context.Context, params product.ListParams) ([]*product.Detail, int64, error) {
	return uc.productService.ListProducts(ctx, params)
}

// Update 更新商品信息
func (uc *ManageProductUseCase) Update(ctx context.Context, req UpdateProductRequest) (*product.Product, error) {
	return uc.productService.UpdateProduct(ctx, req.ID, req.Name, req.Description, req.CategoryID, req.Price, req.MinimumStock, req.ImageURL)
}
