package inventory

import "time"

// Movement 库存流水（领域模型）
//
// 设计原则：
// 1. 只增不改（Append-Only）：流水一经创建不再更新或删除
// 2. 带符号数量：add为正、remove为负，绝不为零
// 3. 记录操作人（UserID）与备注，所有库存变化必须可追溯
//
// 流水是"当前数量为什么是这个值"的事实记录：
// 任意时刻 Inventory.Quantity = 初始库存 + Σ(该商品流水的带符号数量)
type Movement struct {
	ID        uint
	ProductID uint
	Quantity  int // 带符号：+入库 / -出库，恒不为零
	Direction Direction
	Notes     string // 备注/单据号等自由文本
	UserID    uint   // 操作人
	CreatedAt time.Time
}

// NewMovement 创建流水（工厂方法）
// quantity传正数，内部按方向转为带符号数量
func NewMovement(productID uint, direction Direction, quantity int, userID uint, notes string) *Movement {
	return &Movement{
		ProductID: productID,
		Quantity:  direction.Signed(quantity),
		Direction: direction,
		Notes:     notes,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}

// Validate 校验流水合法性
func (m *Movement) Validate() error {
	if m.ProductID == 0 {
		return ErrInvalidProductID
	}
	if m.Quantity == 0 {
		return ErrZeroMovement
	}
	if m.Direction != DirectionAdd && m.Direction != DirectionRemove {
		return ErrInvalidDirection
	}
	// 符号必须与方向一致
	if m.Direction == DirectionAdd && m.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if m.Direction == DirectionRemove && m.Quantity > 0 {
		return ErrInvalidQuantity
	}
	if m.UserID == 0 {
		return ErrInvalidActor
	}
	return nil
}
