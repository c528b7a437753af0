package inventory

import (
	"context"
	"time"
)

// Repository 库存仓储接口（领域层定义）
// 设计说明：
// 1. 依赖倒置原则（领域层定义接口，infrastructure层实现）
// 2. 带Lock前缀的方法必须在Transactor开启的事务内调用，
//    Repository实现从context提取事务连接
type Repository interface {
	// GetByProductID 根据商品ID获取库存（普通读，不加锁）
	GetByProductID(ctx context.Context, productID uint) (*Inventory, error)

	// LockByProductID 悲观锁读取库存行（SELECT FOR UPDATE）
	// 同一商品的并发调整在此串行化：读数量、校验充足性、写新数量
	// 这三步相对其他调整是原子的。必须在事务内调用。
	// 行锁等待超时返回ErrConflict（可整体重试）
	LockByProductID(ctx context.Context, productID uint) (*Inventory, error)

	// Create 创建库存记录
	Create(ctx context.Context, inv *Inventory) error

	// UpdateQuantity 更新库存数量
	UpdateQuantity(ctx context.Context, productID uint, quantity int) error

	// DeleteByProductID 删除库存记录（仅用于商品删除的级联，事务内调用）
	DeleteByProductID(ctx context.Context, productID uint) error

	// ListWithProduct 查询全部库存（关联商品摘要字段，纯读不需要事务）
	ListWithProduct(ctx context.Context) ([]*StockView, error)

	// GetWithProduct 查询单个商品的库存（关联商品摘要字段）
	GetWithProduct(ctx context.Context, productID uint) (*StockView, error)
}

// MovementRepository 库存流水仓储接口
// 流水只有Create和查询：没有Update/Delete（Append-Only）
type MovementRepository interface {
	// Create 追加一条流水（事务内调用）
	Create(ctx context.Context, m *Movement) error

	// List 分页查询全部流水（按创建时间倒序）
	List(ctx context.Context, page, pageSize int) ([]*MovementView, int64, error)

	// ListByProduct 分页查询指定商品的流水（按创建时间倒序）
	ListByProduct(ctx context.Context, productID uint, page, pageSize int) ([]*MovementView, int64, error)

	// CountByProduct 统计指定商品的流水条数（商品删除前的守卫检查）
	CountByProduct(ctx context.Context, productID uint) (int64, error)

	// SumByProduct 指定商品流水带符号数量之和（对账用）
	SumByProduct(ctx context.Context, productID uint) (int64, error)

	// ListRecent 最近N条流水（仪表盘）
	ListRecent(ctx context.Context, limit int) ([]*MovementView, error)
}

// Transactor 事务执行器（unit of work）
// fn内通过context拿到事务连接的Repository操作在同一事务中执行；
// fn返回error自动ROLLBACK，返回nil自动COMMIT。
// 由mysql.TxManager实现；领域层定义接口便于用内存实现做单元测试
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// =========================================
// 查询视图（跨表读模型，只读）
// =========================================

// StockView 库存+商品摘要（GET /inventory用）
type StockView struct {
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	SKU          string    `json:"sku"`
	Price        int64     `json:"price"` // 单位：分
	MinimumStock int       `json:"minimum_stock"`
	Quantity     int       `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MovementView 流水+商品/操作人摘要（流水列表用）
type MovementView struct {
	ID          uint      `json:"id"`
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"` // 带符号
	Direction   Direction `json:"type"`
	Notes       string    `json:"notes,omitempty"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
}
