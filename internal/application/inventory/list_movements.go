package inventory

import (
	"context"

	"github.com/xiebiao/inventory/internal/domain/inventory"
	"github.com/xiebiao/inventory/internal/domain/product"
)

// ListMovementsUseCase 库存流水查询用例
type ListMovementsUseCase struct {
	movementRepo inventory.MovementRepository
	productRepo  product.Repository
}

// NewListMovementsUseCase 创建流水查询用例
func NewListMovementsUseCase(movementRepo inventory.MovementRepository, productRepo product.Repository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movementRepo: movementRepo, productRepo: productRepo}
}

// ListMovementsRequest 流水查询请求DTO
type ListMovementsRequest struct {
	ProductID uint // 商品ID(0表示查询全部商品)
	Page      int
	PageSize  int
}

// Execute 分页查询流水(按创建时间倒序)
func (uc *ListMovementsUseCase) Execute(ctx context.Context, req ListMovementsRequest) ([]*inventory.MovementView, int64, error) {
	// 分页参数兜底
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	if req.ProductID == 0 {
		return uc.movementRepo.List(ctx, req.Page, req.PageSize)
	}

	// 指定商品时先确认商品存在,区分"商品不存在"与"商品没有流水"
	if _, err := uc.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, 0, err
	}
	return uc.movementRepo.ListByProduct(ctx, req.ProductID, req.Page, req.PageSize)
}
