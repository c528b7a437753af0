package product

import (
	"context"
)

// Service 商品领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务规则校验(SKU唯一性、价格范围等)
// 2. 商品的创建与删除涉及库存表,由application层的用例编排事务,
//    Service只提供单实体范围内的操作
type Service interface {
	// GetProduct 根据ID获取商品
	GetProduct(ctx context.Context, id uint) (*Product, error)

	// GetProductDetail 获取商品详情(含分类名与当前库存)
	GetProductDetail(ctx context.Context, id uint) (*Detail, error)

	// GetProductBySKU 根据SKU获取商品
	GetProductBySKU(ctx context.Context, sku string) (*Product, error)

	// UpdateProduct 更新商品信息
	// 业务规则:SKU不可修改,价格与最低库存阈值必须合法
	UpdateProduct(ctx context.Context, id uint, name, description string, categoryID uint, price int64, minimumStock int, imageURL string) (*Product, error)

	// ListProducts 分页查询商品列表
	ListProducts(ctx context.Context, params ListParams) ([]*Detail, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建商品领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetProduct 根据ID获取商品
func (s *service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

// GetProductDetail 获取商品详情
func (s *service) GetProductDetail(ctx context.Context, id uint) (*Detail, error) {
	return s.repo.FindDetail(ctx, id)
}

// GetProductBySKU 根据SKU获取商品
func (s *service) GetProductBySKU(ctx context.Context, sku string) (*Product, error) {
	return s.repo.FindBySKU(ctx, sku)
}

// UpdateProduct 更新商品信息
func (s *service) UpdateProduct(ctx context.Context, id uint, name, description string, categoryID uint, price int64, minimumStock int, imageURL string) (*Product, error) {
	// 1. 查询商品
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 更新基本信息(空值表示不修改)
	p.UpdateInfo(name, description, categoryID, imageURL)

	// 3. 更新价格
	if price > 0 {
		if err := p.UpdatePrice(price); err != nil {
			return nil, err
		}
	}

	// 4. 更新最低库存阈值(负值表示不修改)
	if minimumStock >= 0 {
		if err := p.UpdateMinimumStock(minimumStock); err != nil {
			return nil, err
		}
	}

	// 5. 持久化
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ListProducts 分页查询商品列表
func (s *service) ListProducts(ctx context.Context, params ListParams) ([]*Detail, int64, error) {
	// 分页参数兜底
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return s.repo.List(ctx, params)
}
