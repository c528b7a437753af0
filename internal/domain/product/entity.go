package product

import (
	"strings"
	"time"
)

// Product 商品实体(聚合根)
// DDD设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. SKU作为业务唯一标识(数据库层保证唯一性)
// 3. MinimumStock是低库存告警线,库存数量跌到该线(含)以下触发告警
// 4. 当前库存数量不冗余在商品上,唯一事实来源是库存表
type Product struct {
	ID           uint
	Name         string // 商品名
	SKU          string // SKU编号(唯一,非空)
	Description  string // 商品描述(可选)
	CategoryID   uint   // 所属分类
	Price        int64  // 价格(单位:分,1元=100分)
	MinimumStock int    // 最低库存线(>=0)
	ImageURL     string // 商品图片URL(可选)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProduct 创建商品(工厂方法)
// 调用方需先做业务规则校验(SKU非空、价格非负等)
func NewProduct(name, sku, description string, categoryID uint, price int64, minimumStock int, imageURL string) *Product {
	now := time.Now()
	return &Product{
		Name:         name,
		SKU:          strings.TrimSpace(sku),
		Description:  description,
		CategoryID:   categoryID,
		Price:        price,
		MinimumStock: minimumStock,
		ImageURL:     imageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate 校验商品业务规则
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(p.SKU) == "" {
		return ErrInvalidSKU
	}
	if p.CategoryID == 0 {
		return ErrInvalidCategory
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.MinimumStock < 0 {
		return ErrInvalidMinimumStock
	}
	return nil
}

// UpdateInfo 更新商品基本信息(领域行为)
// 空字符串表示不修改对应字段;SKU创建后不可变更
func (p *Product) UpdateInfo(name, description string, categoryID uint, imageURL string) {
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	if categoryID != 0 {
		p.CategoryID = categoryID
	}
	if imageURL != "" {
		p.ImageURL = imageURL
	}
	p.UpdatedAt = time.Now()
}

// UpdatePrice 更新价格(领域行为)
func (p *Product) UpdatePrice(price int64) error {
	if price < 0 {
		return ErrInvalidPrice
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateMinimumStock 更新最低库存线
func (p *Product) UpdateMinimumStock(minimumStock int) error {
	if minimumStock < 0 {
		return ErrInvalidMinimumStock
	}
	p.MinimumStock = minimumStock
	p.UpdatedAt = time.Now()
	return nil
}
