package category

import (
	"strings"
	"time"
)

// Category 商品分类实体
// 设计说明:
// 1. 分类是商品的组织单位,名称全局唯一
// 2. 分类与商品是一对多关系,删除分类前必须保证分类下没有商品
type Category struct {
	ID          uint
	Name        string // 分类名称(唯一)
	Description string // 分类描述
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类实体(工厂方法)
func NewCategory(name, description string) *Category {
	return &Category{
		Name:        strings.TrimSpace(name),
		Description: description,
	}
}

// Validate 校验分类的业务不变量
func (c *Category) Validate() error {
	if c.Name == "" || len(c.Name) > 100 {
		return ErrInvalidName
	}
	return nil
}

// UpdateInfo 更新分类信息(空名称表示不修改)
func (c *Category) UpdateInfo(name, description string) {
	if name != "" {
		c.Name = strings.TrimSpace(name)
	}
	if description != "" {
		c.Description = description
	}
}
