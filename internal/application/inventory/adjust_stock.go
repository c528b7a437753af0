package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/inventory/internal/domain/inventory"
	"github.com/xiebiao/inventory/internal/domain/product"
	apperrors "github.com/xiebiao/inventory/pkg/errors"
	"github.com/xiebiao/inventory/pkg/metrics"
)

// AdjustStockUseCase 库存调整用例
// 教学要点:这是整个项目最核心的用例
// 涉及:事务处理、并发控制、业务规则校验、审计流水
type AdjustStockUseCase struct {
	invRepo      inventory.Repository
	movementRepo inventory.MovementRepository
	productRepo  product.Repository
	tx           inventory.Transactor
	alerts       inventory.AlertPublisher
}

// NewAdjustStockUseCase 创建库存调整用例
// alerts可以为nil(未配置消息队列时告警静默关闭)
func NewAdjustStockUseCase(
	invRepo inventory.Repository,
	movementRepo inventory.MovementRepository,
	productRepo product.Repository,
	tx inventory.Transactor,
	alerts inventory.AlertPublisher,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		invRepo:      invRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		tx:           tx,
		alerts:       alerts,
	}
}

// AdjustStockRequest 库存调整请求DTO
type AdjustStockRequest struct {
	ProductID uint   // 商品ID
	Direction string // 调整方向("add"入库 / "remove"出库)
	Quantity  int    // 调整数量(正整数,方向由Direction表达)
	Notes     string // 备注(如"到货入库"、"门店销售")
	UserID    uint   // 操作人用户ID(从JWT中提取)
}

// AdjustStockResponse 库存调整响应DTO
// 返回调整前后的数量,调用方展示before/after无需再查一次
type AdjustStockResponse struct {
	ProductID        uint   `json:"product_id"`
	Quantity         int    `json:"quantity"`          // 调整后的库存数量
	PreviousQuantity int    `json:"previous_quantity"` // 调整前的库存数量
	MovementID       uint   `json:"movement_id"`       // 本次产生的流水ID
	Direction        string `json:"type"`
	Adjusted         int    `json:"adjusted"` // 本次调整量(带符号)
	LowStock         bool   `json:"low_stock"`
	AdjustedAt       string `json:"adjusted_at"`
}

// Execute 执行库存调整
// 教学重点:防止负库存的完整流程
//
// 核心问题:并发扣减导致库存为负
// 场景:库存10件,两个店员同时出库6件
// 错误实现:
//  1. 查询库存 → 10件
//  2. 判断够不够 → 够
//  3. 写回 stock = 10 - 6
//     结果:两个请求都通过了步骤2,最终库存4件但实际发走12件
//
// 正确实现:悲观锁
//  1. SELECT FOR UPDATE 锁定该商品的库存行
//  2. 判断库存是否充足
//  3. 写回新数量 + 追加流水
//  4. COMMIT释放锁
//     后到的请求在步骤1阻塞,拿到锁时看到的已是4件,出库6件被拒绝
//
// 库存更新与流水追加在同一事务中:要么都生效,要么都不生效,
// 不存在"库存变了但没有流水"或"有流水但库存没变"的中间状态
func (uc *AdjustStockUseCase) Execute(ctx context.Context, req AdjustStockRequest) (*AdjustStockResponse, error) {
	start := time.Now()

	// 1. 参数校验(进事务前完成,失败无任何副作用)
	direction, err := inventory.ParseDirection(req.Direction)
	if err != nil {
		metrics.ObserveAdjustment(req.Direction, "error", time.Since(start).Seconds())
		return nil, err
	}
	if req.Quantity <= 0 {
		metrics.ObserveAdjustment(req.Direction, "error", time.Since(start).Seconds())
		return nil, inventory.ErrInvalidQuantity
	}
	if req.ProductID == 0 {
		metrics.ObserveAdjustment(req.Direction, "error", time.Since(start).Seconds())
		return nil, inventory.ErrInvalidProductID
	}

	var (
		resp     *AdjustStockResponse
		alertEvt *inventory.LowStockEvent
	)

	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:确认商品存在
		// ========================================
		p, err := uc.productRepo.FindByID(txCtx, req.ProductID)
		if err != nil {
			return err // Repository已转换为ErrProductNotFound
		}

		// ========================================
		// 步骤2:锁定库存行(悲观锁,防止并发扣成负数)
		// ========================================
		// LockByProductID执行:SELECT * FROM inventories WHERE product_id = ? FOR UPDATE
		// 同一商品的并发调整在这里排队;锁等待超时返回ErrConflict,
		// 调用方可以安全地整体重试(事务里还没有任何写入)
		inv, err := uc.invRepo.LockByProductID(txCtx, req.ProductID)
		if err != nil {
			if errors.Is(err, inventory.ErrInventoryNotFound) {
				// 商品没有库存记录时按零库存补建,再走统一的调整逻辑
				// (历史数据迁移或直接建品可能出现无库存记录的商品)
				inv = inventory.New(req.ProductID, 0)
				if err := uc.invRepo.Create(txCtx, inv); err != nil {
					return err
				}
				// 新插入的行已被当前事务持有锁,无需再次锁定
			} else {
				return err
			}
		}

		// ========================================
		// 步骤3:应用调整(充足性检查在领域实体内完成)
		// ========================================
		// 必须在锁定后检查,否则可能并发扣减导致负库存
		previousQuantity := inv.Quantity
		if err := inv.Apply(direction, req.Quantity); err != nil {
			return err
		}

		// ========================================
		// 步骤4:写回新数量
		// ========================================
		if err := uc.invRepo.UpdateQuantity(txCtx, req.ProductID, inv.Quantity); err != nil {
			return err
		}

		// ========================================
		// 步骤5:追加流水(Append-Only审计记录)
		// ========================================
		m := inventory.NewMovement(req.ProductID, direction, req.Quantity, req.UserID, req.Notes)
		if err := m.Validate(); err != nil {
			return err
		}
		if err := uc.movementRepo.Create(txCtx, m); err != nil {
			return err
		}

		// ========================================
		// 步骤6:构建响应(事务自动COMMIT)
		// ========================================
		low := inv.IsLow(p.MinimumStock)
		resp = &AdjustStockResponse{
			ProductID:        req.ProductID,
			Quantity:         inv.Quantity,
			PreviousQuantity: previousQuantity,
			MovementID:       m.ID,
			Direction:        string(direction),
			Adjusted:         direction.Signed(req.Quantity),
			LowStock:         low,
			AdjustedAt:       m.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		// 低库存事件在此组装,COMMIT之后才发布
		// (事务内发布可能出现"告警发了但事务回滚了"的假告警)
		if low && direction == inventory.DirectionRemove {
			alertEvt = &inventory.LowStockEvent{
				ProductID:    p.ID,
				ProductName:  p.Name,
				SKU:          p.SKU,
				Quantity:     inv.Quantity,
				MinimumStock: p.MinimumStock,
				OccurredAt:   time.Now(),
			}
		}
		return nil
	})

	if err != nil {
		metrics.ObserveAdjustment(req.Direction, adjustResult(err), time.Since(start).Seconds())
		return nil, err
	}

	// 事务已提交,发布低库存告警(尽力而为,失败不影响调整结果)
	if alertEvt != nil && uc.alerts != nil {
		if pubErr := uc.alerts.PublishLowStock(ctx, *alertEvt); pubErr == nil {
			metrics.IncLowStockAlert()
		}
	}

	metrics.ObserveAdjustment(req.Direction, "success", time.Since(start).Seconds())
	return resp, nil
}

// adjustResult 将调整失败的错误归类为监控标签
func adjustResult(err error) string {
	appErr := apperrors.GetAppError(err)
	switch appErr.Code {
	case apperrors.ErrCodeInsufficientStock:
		return "insufficient"
	case apperrors.ErrCodeConflict:
		return "conflict"
	default:
		return "error"
	}
}
