package category

import (
	"context"
	"errors"
)

// Service 分类领域服务
// 设计说明:
// 1. 分类删除涉及商品计数检查,计数能力在product包,
//    这里通过ProductCounter接口注入,避免domain包之间的循环依赖
type Service interface {
	// CreateCategory 创建分类
	// 业务规则:名称合法且全局唯一
	CreateCategory(ctx context.Context, name, description string) (*Category, error)

	// GetCategory 根据ID获取分类
	GetCategory(ctx context.Context, id uint) (*Category, error)

	// UpdateCategory 更新分类信息
	UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error)

	// DeleteCategory 删除分类
	// 业务规则:分类下存在商品时禁止删除
	DeleteCategory(ctx context.Context, id uint) error

	// ListCategories 查询全部分类(附带商品数)
	ListCategories(ctx context.Context) ([]*WithCount, error)
}

// ProductCounter 商品计数接口
// 由product.Repository实现(CountByCategory方法签名一致)
type ProductCounter interface {
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type service struct {
	repo     Repository
	products ProductCounter
}

// NewService 创建分类领域服务
func NewService(repo Repository, products ProductCounter) Service {
	return &service{repo: repo, products: products}
}

// CreateCategory 创建分类
func (s *service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	c := NewCategory(name, description)

	// 1. 名称合法性校验
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// 2. 名称唯一性预检(最终由数据库UNIQUE索引兜底)
	existing, err := s.repo.FindByName(ctx, c.Name)
	if err == nil && existing != nil {
		return nil, ErrNameDuplicate
	}
	if err != nil && !errors.Is(err, ErrCategoryNotFound) {
		return nil, err
	}

	// 3. 持久化
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// GetCategory 根据ID获取分类
func (s *service) GetCategory(ctx context.Context, id uint) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateCategory 更新分类信息
func (s *service) UpdateCategory(ctx context.Context, id uint, name, description string) (*Category, error) {
	// 1. 查询分类
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 名称变更时检查新名称是否被占用
	if name != "" && name != c.Name {
		existing, err := s.repo.FindByName(ctx, name)
		if err == nil && existing != nil && existing.ID != id {
			return nil, ErrNameDuplicate
		}
		if err != nil && !errors.Is(err, ErrCategoryNotFound) {
			return nil, err
		}
	}

	// 3. 更新并校验
	c.UpdateInfo(name, description)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// 4. 持久化
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// DeleteCategory 删除分类
func (s *service) DeleteCategory(ctx context.Context, id uint) error {
	// 1. 确认分类存在
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	// 2. 分类下存在商品时禁止删除
	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	// 3. 执行删除
	return s.repo.Delete(ctx, id)
}

// ListCategories 查询全部分类
func (s *service) ListCategories(ctx context.Context) ([]*WithCount, error) {
	return s.repo.List(ctx)
}
