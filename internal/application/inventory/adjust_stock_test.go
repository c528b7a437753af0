package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/inventory/internal/domain/inventory"
	"github.com/xiebiao/inventory/internal/domain/product"
	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// 教学说明：库存调整用例的单元测试
//
// 用例依赖的都是接口(Repository、Transactor、AlertPublisher)，
// 这里用内存实现替代MySQL：
// - memStore持有全部状态，Transaction用互斥锁整体串行(模拟行锁)
// - 事务前做快照，fn返回error时恢复快照(模拟ROLLBACK)
// 这样可以在不起数据库的情况下验证原子性和并发行为

// memStore 内存存储(被各个fake仓储共享)
type memStore struct {
	mu        sync.Mutex
	products  map[uint]*product.Product
	invs      map[uint]*inventory.Inventory
	movements []*inventory.Movement
	nextInvID uint
	nextMovID uint

	// 故障注入:流水写入失败(验证回滚)
	failMovementCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[uint]*product.Product),
		invs:     make(map[uint]*inventory.Inventory),
	}
}

// addProduct 预置一个商品,stock<0表示不建库存记录
func (s *memStore) addProduct(id uint, name string, minimumStock, stock int) {
	s.products[id] = &product.Product{
		ID:           id,
		Name:         name,
		SKU:          "SKU-" + name,
		CategoryID:   1,
		Price:        10000,
		MinimumStock: minimumStock,
	}
	if stock >= 0 {
		s.nextInvID++
		s.invs[id] = &inventory.Inventory{
			ID:        s.nextInvID,
			ProductID: id,
			Quantity:  stock,
		}
	}
}

// memTx 事务执行器:互斥锁串行 + 快照回滚
type memTx struct {
	store *memStore
}

func (t *memTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	// 快照(浅结构,值拷贝)
	invSnapshot := make(map[uint]inventory.Inventory, len(t.store.invs))
	for k, v := range t.store.invs {
		invSnapshot[k] = *v
	}
	movLen := len(t.store.movements)

	if err := fn(ctx); err != nil {
		// 回滚
		t.store.invs = make(map[uint]*inventory.Inventory, len(invSnapshot))
		for k, v := range invSnapshot {
			inv := v
			t.store.invs[k] = &inv
		}
		t.store.movements = t.store.movements[:movLen]
		return err
	}
	return nil
}

// memInvRepo 库存仓储的内存实现(只实现用例用到的方法)
type memInvRepo struct {
	store *memStore
}

func (r *memInvRepo) GetByProductID(ctx context.Context, productID uint) (*inventory.Inventory, error) {
	return r.LockByProductID(ctx, productID)
}

func (r *memInvRepo) LockByProductID(ctx context.Context, productID uint) (*inventory.Inventory, error) {
	inv, ok := r.store.invs[productID]
	if !ok {
		return nil, inventory.ErrInventoryNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvRepo) Create(ctx context.Context, inv *inventory.Inventory) error {
	if _, ok := r.store.invs[inv.ProductID]; ok {
		return inventory.ErrConflict
	}
	r.store.nextInvID++
	inv.ID = r.store.nextInvID
	cp := *inv
	r.store.invs[inv.ProductID] = &cp
	return nil
}

func (r *memInvRepo) UpdateQuantity(ctx context.Context, productID uint, quantity int) error {
	inv, ok := r.store.invs[productID]
	if !ok {
		return inventory.ErrInventoryNotFound
	}
	inv.Quantity = quantity
	inv.UpdatedAt = time.Now()
	return nil
}

func (r *memInvRepo) DeleteByProductID(ctx context.Context, productID uint) error {
	if _, ok := r.store.invs[productID]; !ok {
		return inventory.ErrInventoryNotFound
	}
	delete(r.store.invs, productID)
	return nil
}

func (r *memInvRepo) ListWithProduct(ctx context.Context) ([]*inventory.StockView, error) {
	return nil, nil
}

func (r *memInvRepo) GetWithProduct(ctx context.Context, productID uint) (*inventory.StockView, error) {
	return nil, inventory.ErrInventoryNotFound
}

// memMovementRepo 流水仓储的内存实现
type memMovementRepo struct {
	store *memStore
}

func (r *memMovementRepo) Create(ctx context.Context, m *inventory.Movement) error {
	if r.store.failMovementCreate {
		return apperrors.Wrap(errors.New("disk full"), "写入库存流水失败")
	}
	r.store.nextMovID++
	m.ID = r.store.nextMovID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *memMovementRepo) List(ctx context.Context, page, pageSize int) ([]*inventory.MovementView, int64, error) {
	return nil, 0, nil
}

func (r *memMovementRepo) ListByProduct(ctx context.Context, productID uint, page, pageSize int) ([]*inventory.MovementView, int64, error) {
	return nil, 0, nil
}

func (r *memMovementRepo) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *memMovementRepo) SumByProduct(ctx context.Context, productID uint) (int64, error) {
	var sum int64
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			sum += int64(m.Quantity)
		}
	}
	return sum, nil
}

func (r *memMovementRepo) ListRecent(ctx context.Context, limit int) ([]*inventory.MovementView, error) {
	return nil, nil
}

// memProductRepo 商品仓储的内存实现(只实现用例用到的方法)
type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) Create(ctx context.Context, p *product.Product) error { return nil }

func (r *memProductRepo) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	return nil, product.ErrProductNotFound
}

func (r *memProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }
func (r *memProductRepo) Delete(ctx context.Context, id uint) error            { return nil }

func (r *memProductRepo) List(ctx context.Context, params product.ListParams) ([]*product.Detail, int64, error) {
	return nil, 0, nil
}

func (r *memProductRepo) FindDetail(ctx context.Context, id uint) (*product.Detail, error) {
	return nil, product.ErrProductNotFound
}

func (r *memProductRepo) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	return 0, nil
}

// captureAlerts 低库存事件收集器
type captureAlerts struct {
	mu     sync.Mutex
	events []inventory.LowStockEvent
}

func (c *captureAlerts) PublishLowStock(ctx context.Context, event inventory.LowStockEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

// newTestUseCase 组装一个基于内存存储的用例
func newTestUseCase(store *memStore) (*AdjustStockUseCase, *captureAlerts) {
	alerts := &captureAlerts{}
	uc := NewAdjustStockUseCase(
		&memInvRepo{store: store},
		&memMovementRepo{store: store},
		&memProductRepo{store: store},
		&memTx{store: store},
		alerts,
	)
	return uc, alerts
}

// =========================================
// 测试用例
// =========================================

func TestAdjustStock_Add(t *testing.T) {
	store := newMemStore()
	store.addProduct(1, "sofa", 3, 10)
	uc, _ := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), AdjustStockRequest{
		ProductID: 1,
		Direction: "add",
		Quantity:  5,
		Notes:     "到货入库",
		UserID:    1,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.Quantity, "入库后数量应为15")
	assert.Equal(t, 10, resp.PreviousQuantity, "应返回调整前数量")
	assert.Equal(t, 5, resp.Adjusted, "入库变动为正")
	assert.False(t, resp.LowStock)
	assert.NotZero(t, resp.MovementID, "应产生一条流水")

	// 库存与流水同时落账
	assert.Equal(t, 15, store.invs[1].Quantity)
	require.Len(t, store.movements, 1)
	assert.Equal(t, 5, store.movements[0].Quantity, "流水带符号数量应为+5")
	assert.Equal(t, inventory.DirectionAdd, store.movements[0].Direction)
	assert.Equal(t, uint(1), store.movements[0].UserID, "流水应记录操作人")
}

func TestAdjustStock_Remove(t *testing.T) {
	store := newMemStore()
	store.addProduct(1, "sofa", 3, 10)
	uc, _ := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), AdjustStockRequest{
		ProductID: 1,
		Direction: "remove",
		Quantity:  4,
		UserID:    1,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, resp.Quantity)
	assert.Equal(t, 10, resp.PreviousQuantity)
	assert.Equal(t, -4, resp.Adjusted, "出库变动为负")
	require.Len(t, store.movements, 1)
	assert.Equal(t, -4, store.movements[0].Quantity, "流水带符号数量应为-4")
}

func TestAdjustStock_InsufficientStock(t *testing.T) {
	store := newMemStore()
	store.addProduct(1, "sofa", 0, 3)
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), AdjustStockRequest{
		ProductID: 1,
		Direction: "remove",
		Quantity:  5,
		UserID:    1,
	})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInsufficientStock, appErr.Code)

	// 整单拒绝:数量不变,不产生流水(不允许部分出库)
	assert.Equal(t, 3, store.invs[1].Quantity, "失败的出库不应改变库存")
	assert.Empty(t, store.movements, "失败的出库不应产生流水")
}

func TestAdjustStock_ExactRemove(t *testing.T) {
	// 边界:出库数量恰好等于现有库存,应成功且归零
	store := newMemStore()
	store.addProduct(1, "sofa", 0, 7)
	uc, _ := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), AdjustStockRequest{
		ProductID: 1,
		Direction: "remove",
		Quantity:  7,
		UserID:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Quantity)
}

func TestAdjustStock_InvalidParams(t *testing.T) {
	store := newMemStore()
	store.addProduct(1, "sofa", 0, 10)
	uc, _ := newTestUseCase(store)

	tests := []struct {
		name     string
		req      AdjustStockRequest
		wantCode int
	}{
		{
			name:     "方向非法",
			req:      AdjustStockRequest{ProductID: 1, Direction: "in", Quantity: 1, UserID: 1},
			wantCode: apperrors.ErrCodeInvalidParams,
		},
		{
			name:     "方向大小写敏感",
			req:      AdjustStockRequest{ProductID: 1, Direction: "ADD", Quantity: 1, UserID: 1},
			wantCode: apperrors.ErrCodeInvalidParams,
		},
		{
			name:     "数量为0",
			req:      AdjustStockRequest{ProductID: 1, Direction: "add", Quantity: 0, UserID: 1},
			wantCode: apperrors.ErrCodeInvalidParams,
		},
		{
			name:     "数量为负",
			req:      AdjustStockRequest{ProductID: 1, Direction: "remove", Quantity: -3, UserID: 1},
			wantCode: apperrors.ErrCodeInvalidParams,
		},
		{
			name:     "商品ID缺失",
			req:      AdjustStockRequest{ProductID: 0, Direction: "add", Quantity: 1, UserID: 1},
			wantCode: apperrors.ErrCodeInvalidParams,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.GetAppError(err).Code)
		})
	}

	// 参数校验失败不应留下任何痕迹
	assert.Equal(t, 10, store.invs[1].Quantity)
	assert.Empty(t, store.movements)
}

func TestAdjustStock_ProductNotFound(t *testing.T) {
	store := newMemStore()
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), AdjustStockRequest{
		ProductID: 999,
		Direction: "add",
		Quantity:  1,
		UserID:    1,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeProductNotFound, apperrors.GetAppError(err).Code)
}

func TestAdjustStock_LazyInventoryCreation(t *testing.T) {
	// 商品存在但没有库存记录:按零库存补建
	store := newMemStore()
	store.addProduct(1, "sofa", 0, -1) // 不建库存记录

	uc, _ := newTestUseCase(store)

	t.Run("入库补建记录", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), AdjustStockRequest{
			ProductID: 1,
			Direction: "add",
			Quantity:  3,
			UserID:    1,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Quantity, "0 + 3 = 3")
		assert.Equal(t, 0, resp.PreviousQuantity, "补建记录从零开始")
		require.NotNil(t, store.invs[1], "应补建库存记录")
	})

	t.Run("零库存出库被拒绝", func(t *testing.T) {
		store2 := newMemStore()
		store2.addProduct(2, "table", 0, -1)
		uc2, _ := newTestUseCase(store2)

		_, err := uc2.Execute(context.Background(), AdjustStockRequest{
			ProductID: 2,
			Direction: "remove",
			Quantity:  1,
			UserID:    1,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInsufficientStock, apperrors.GetAppError(err).Code)

		// 补建的零库存记录保留(等价于显式零库存)
		require.NotNil(t, store2.invs[2])
		assert.Equal(t, 0, store2.invs[2].Quantity)
	})
}

func TestAdjustStock_RollbackOnMovementFailure(t *testing.T) {
	// 原子性:流水写入失败时库存更新必须一起回滚
	store := newMemStore()
	store.addProduct(1, "sofa", 0, 10)
	store.failMovementCreate = true
	uc, _ := newTestUseCase(store)

	_, err := uc.Execute(context.Background(), AdjustStockRequest{
		ProductID: 1,
		Direction: "add",
		Quantity:  5,
		UserID:    1,
	})
	require.Error(t, err)

	assert.Equal(t, 10, store.invs[1].Quantity, "流水失败时库存更新应回滚")
	assert.Empty(t, store.movements)
}

func TestAdjustStock_LedgerBalance(t *testing.T) {
	// 账实相符:当前数量 = 初始库存 + sum(流水带符号数量)
	store := newMemStore()
	store.addProduct(1, "sofa", 0, 100)
	uc, _ := newTestUseCase(store)
	ctx := context.Background()

	ops := []struct {
		direction string
		quantity  int
	}{
		{"add", 20}, {"remove", 30}, {"add", 5}, {"remove", 200}, // 第4个失败
		{"remove", 95}, {"add", 1},
	}
	for _, op := range ops {
		_, _ = uc.Execute(ctx, AdjustStockRequest{
			ProductID: 1, Direction: op.direction, Quantity: op.quantity, UserID: 1,
		})
	}

	movRepo := &memMovementRepo{store: store}
	sum, err := movRepo.SumByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(store.invs[1].Quantity), 100+sum, "库存数量必须等于初始库存加流水净变动")
	assert.Equal(t, 1, store.invs[1].Quantity, "100+20-30+5-95+1 = 1")

	count, err := movRepo.CountByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count, "失败的调整不产生流水")
}

func TestAdjustStock_ConcurrentRemoves(t *testing.T) {
	// 并发场景:库存10,两个操作同时出库6
	// 正确行为:恰好一个成功(剩4),另一个因库存不足失败;库存永不为负
	store := newMemStore()
	store.addProduct(1, "sofa", 0, 10)
	uc, _ := newTestUseCase(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = uc.Execute(context.Background(), AdjustStockRequest{
				ProductID: 1,
				Direction: "remove",
				Quantity:  6,
				UserID:    uint(idx + 1),
			})
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, apperrors.ErrCodeInsufficientStock, apperrors.GetAppError(err).Code)
			failed++
		}
	}

	assert.Equal(t, 1, succeeded, "两个并发出库恰好一个成功")
	assert.Equal(t, 1, failed)
	assert.Equal(t, 4, store.invs[1].Quantity, "10 - 6 = 4")
	assert.GreaterOrEqual(t, store.invs[1].Quantity, 0, "库存永不为负")
	assert.Len(t, store.movements, 1, "只有成功的调整产生流水")
}

func TestAdjustStock_ConcurrentAdds(t *testing.T) {
	// 并发入库不丢更新
	store := newMemStore()
	store.addProduct(1, "sofa", 0, 0)
	uc, _ := newTestUseCase(store)

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), AdjustStockRequest{
				ProductID: 1, Direction: "add", Quantity: 1, UserID: 1,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, store.invs[1].Quantity, "10次并发入库1件,最终应为10")
	assert.Len(t, store.movements, workers)
}

func TestAdjustStock_LowStockAlert(t *testing.T) {
	store := newMemStore()
	store.addProduct(1, "sofa", 5, 8)
	uc, alerts := newTestUseCase(store)
	ctx := context.Background()

	// 出库后8-4=4 <= 5,应触发告警
	resp, err := uc.Execute(ctx, AdjustStockRequest{
		ProductID: 1, Direction: "remove", Quantity: 4, UserID: 1,
	})
	require.NoError(t, err)
	assert.True(t, resp.LowStock)

	require.Len(t, alerts.events, 1)
	evt := alerts.events[0]
	assert.Equal(t, uint(1), evt.ProductID)
	assert.Equal(t, 4, evt.Quantity)
	assert.Equal(t, 5, evt.MinimumStock)

	// 入库回到阈值之上,不再告警
	_, err = uc.Execute(ctx, AdjustStockRequest{
		ProductID: 1, Direction: "add", Quantity: 10, UserID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, alerts.events, 1, "入库不应触发低库存告警")
}

func TestAdjustStock_NilAlertPublisher(t *testing.T) {
	// 未配置告警发布器时低库存调整照常工作
	store := newMemStore()
	store.addProduct(1, "sofa", 5, 6)
	uc := NewAdjustStockUseCase(
		&memInvRepo{store: store},
		&memMovementRepo{store: store},
		&memProductRepo{store: store},
		&memTx{store: store},
		nil,
	)

	resp, err := uc.Execute(context.Background(), AdjustStockRequest{
		ProductID: 1, Direction: "remove", Quantity: 3, UserID: 1,
	})
	require.NoError(t, err)
	assert.True(t, resp.LowStock)
	assert.Equal(t, 3, resp.Quantity)
}
