package product

import (
	"context"
	"errors"

	"github.com/xiebiao/inventory/internal/domain/inventory"
	"github.com/xiebiao/inventory/internal/domain/product"
)

// DeleteProductUseCase 商品删除用例
// 业务规则:
// 1. 存在库存流水的商品禁止删除(流水是审计记录,删除商品会让流水失去指向)
// 2. 删除商品时级联删除库存记录,两个删除在同一事务中
type DeleteProductUseCase struct {
	productRepo  product.Repository
	invRepo      inventory.Repository
	movementRepo inventory.MovementRepository
	tx           inventory.Transactor
}

// NewDeleteProductUseCase 创建商品删除用例
func NewDeleteProductUseCase(
	productRepo product.Repository,
	invRepo inventory.Repository,
	movementRepo inventory.MovementRepository,
	tx inventory.Transactor,
) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		productRepo:  productRepo,
		invRepo:      invRepo,
		movementRepo: movementRepo,
		tx:           tx,
	}
}

// Execute 执行商品删除
func (uc *DeleteProductUseCase) Execute(ctx context.Context, productID uint) error {
	// 1. 确认商品存在
	if _, err := uc.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	// 2. 流水守卫:有出入库历史的商品不允许删除
	count, err := uc.movementRepo.CountByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if count > 0 {
		return product.ErrHasMovementHistory
	}

	// 3. 事务内删除商品与库存记录
	return uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.invRepo.DeleteByProductID(txCtx, productID); err != nil {
			// 没有库存记录也视为删除成功
			if !errors.Is(err, inventory.ErrInventoryNotFound) {
				return err
			}
		}
		return uc.productRepo.Delete(txCtx, productID)
	})
}
