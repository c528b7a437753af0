package dto

import "fmt"

// CreateProductRequest HTTP商品创建请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
type CreateProductRequest struct {
	Name         string `json:"name" binding:"required,max=200" example:"北欧三人沙发"`
	SKU          string `json:"sku" binding:"required,max=50" example:"SOFA-001"`
	Description  string `json:"description" binding:"max=5000" example:"布艺三人位沙发"`
	CategoryID   uint   `json:"category_id" binding:"required" example:"1"`
	Price        int64  `json:"price" binding:"required,min=1" example:"299900"` // 价格(分),2999.00元
	MinimumStock int    `json:"minimum_stock" binding:"min=0" example:"3"`
	ImageURL     string `json:"image_url" binding:"omitempty,url,max=500" example:"https://example.com/sofa.jpg"`
	InitialStock int    `json:"initial_stock" binding:"min=0" example:"10"`
}

// UpdateProductRequest HTTP商品更新请求
// 空字段/零值表示不修改;SKU创建后不可变,不在此请求中
type UpdateProductRequest struct {
	Name         string `json:"name" binding:"omitempty,max=200"`
	Description  string `json:"description" binding:"omitempty,max=5000"`
	CategoryID   uint   `json:"category_id" binding:"omitempty"`
	Price        int64  `json:"price" binding:"omitempty,min=1"`
	MinimumStock *int   `json:"minimum_stock" binding:"omitempty,min=0"` // 指针区分"不传"与"传0"
	ImageURL     string `json:"image_url" binding:"omitempty,url,max=500"`
}

// ProductResponse HTTP商品响应
type ProductResponse struct {
	ID           uint   `json:"id" example:"1"`
	Name         string `json:"name" example:"北欧三人沙发"`
	SKU          string `json:"sku" example:"SOFA-001"`
	Description  string `json:"description,omitempty"`
	CategoryID   uint   `json:"category_id" example:"1"`
	CategoryName string `json:"category_name,omitempty" example:"沙发"`
	Price        int64  `json:"price" example:"299900"`
	PriceYuan    string `json:"price_yuan" example:"2999.00"` // 价格(元),方便前端显示
	MinimumStock int    `json:"minimum_stock" example:"3"`
	ImageURL     string `json:"image_url,omitempty"`
	Quantity     int    `json:"quantity" example:"10"` // 当前库存
	CreatedAt    string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt    string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ListProductsRequest HTTP商品列表请求
type ListProductsRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword    string `form:"keyword" binding:"omitempty,max=100" example:"沙发"`
	CategoryID uint   `form:"category_id" binding:"omitempty"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc" example:"created_at_desc"`
}

// FormatPriceYuan 格式化价格(分→元)
func FormatPriceYuan(priceFen int64) string {
	return fmt.Sprintf("%.2f", float64(priceFen)/100.0)
}
