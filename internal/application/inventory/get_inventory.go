package inventory

import (
	"context"
	"errors"

	"github.com/xiebiao/inventory/internal/domain/inventory"
	"github.com/xiebiao/inventory/internal/domain/product"
)

// GetInventoryUseCase 库存查询用例
// 设计说明:纯读用例,不需要事务和行锁
type GetInventoryUseCase struct {
	invRepo     inventory.Repository
	productRepo product.Repository
}

// NewGetInventoryUseCase 创建库存查询用例
func NewGetInventoryUseCase(invRepo inventory.Repository, productRepo product.Repository) *GetInventoryUseCase {
	return &GetInventoryUseCase{invRepo: invRepo, productRepo: productRepo}
}

// ListAll 查询全部商品的库存概览
func (uc *GetInventoryUseCase) ListAll(ctx context.Context) ([]*inventory.StockView, error) {
	return uc.invRepo.ListWithProduct(ctx)
}

// GetByProduct 查询单个商品的库存
// 商品存在但没有库存记录时按零库存返回(与调整时的懒创建语义一致)
func (uc *GetInventoryUseCase) GetByProduct(ctx context.Context, productID uint) (*inventory.StockView, error) {
	view, err := uc.invRepo.GetWithProduct(ctx, productID)
	if err == nil {
		return view, nil
	}
	if !errors.Is(err, inventory.ErrInventoryNotFound) {
		return nil, err
	}

	// 没有库存记录:确认商品存在后返回零库存视图
	p, err := uc.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &inventory.StockView{
		ProductID:    p.ID,
		ProductName:  p.Name,
		SKU:          p.SKU,
		Price:        p.Price,
		MinimumStock: p.MinimumStock,
		Quantity:     0,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}
