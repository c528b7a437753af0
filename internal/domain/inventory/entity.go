package inventory

import "time"

// Direction 库存调整方向
// 设计说明：系统内只有这一套方向词汇（add/remove），
// 当前数量的唯一事实来源是Inventory.Quantity，不在商品表上冗余库存字段
type Direction string

const (
	// DirectionAdd 入库（增加库存）
	DirectionAdd Direction = "add"

	// DirectionRemove 出库（减少库存）
	DirectionRemove Direction = "remove"
)

// ParseDirection 解析方向参数
// 只接受精确的"add"/"remove"，其他一律视为参数错误
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionAdd:
		return DirectionAdd, nil
	case DirectionRemove:
		return DirectionRemove, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Signed 将正数数量转为带符号数量（add为正，remove为负）
func (d Direction) Signed(quantity int) int {
	if d == DirectionRemove {
		return -quantity
	}
	return quantity
}

// Inventory 库存实体（领域模型）
//
// 每个商品恰好一条库存记录（一对一），Quantity是当前在库数量的
// 可变投影。核心不变量：Quantity >= 0恒成立，且Quantity等于初始
// 库存加上该商品全部流水的带符号数量之和（账实相符）。
// 不变量由库存调整服务在事务内保证，不只依赖列约束。
type Inventory struct {
	ID        uint
	ProductID uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New 创建库存记录（工厂方法）
// 商品创建时随初始数量建立；若商品没有库存记录，
// 第一次调整时会以数量0补建（等价于零库存）
func New(productID uint, quantity int) *Inventory {
	now := time.Now()
	return &Inventory{
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanRemove 判断是否可以出库指定数量
// 不允许部分出库：不足时整单拒绝
func (i *Inventory) CanRemove(quantity int) bool {
	return quantity > 0 && i.Quantity >= quantity
}

// Apply 应用一次调整（领域行为）
// 业务规则：
// - quantity必须为正整数
// - remove时现有数量必须足够，否则返回ErrInsufficientStock且不做任何修改
func (i *Inventory) Apply(direction Direction, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	switch direction {
	case DirectionAdd:
		i.Quantity += quantity
	case DirectionRemove:
		if i.Quantity < quantity {
			return ErrInsufficientStock
		}
		i.Quantity -= quantity
	default:
		return ErrInvalidDirection
	}

	i.UpdatedAt = time.Now()
	return nil
}

// IsLow 判断是否达到低库存线（需要告警）
func (i *Inventory) IsLow(minimumStock int) bool {
	return i.Quantity <= minimumStock
}
