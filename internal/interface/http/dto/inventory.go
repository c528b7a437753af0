package dto

// AdjustStockRequest HTTP库存调整请求
// 商品ID在URL路径中;type只接受精确的add/remove;quantity恒为正,方向由type表达
type AdjustStockRequest struct {
	Type     string `json:"type" binding:"required" example:"add"`
	Quantity int    `json:"quantity" binding:"required,min=1" example:"5"`
	Notes    string `json:"notes" binding:"max=500" example:"到货入库"`
}

// AdjustStockResponse HTTP库存调整响应
// 同时返回调整前后的数量,前端展示before/after无需再查一次
type AdjustStockResponse struct {
	ProductID        uint   `json:"product_id" example:"1"`
	Quantity         int    `json:"quantity" example:"15"`           // 调整后的库存数量
	PreviousQuantity int    `json:"previous_quantity" example:"10"`  // 调整前的库存数量
	MovementID       uint   `json:"movement_id" example:"42"`
	Type             string `json:"type" example:"add"`
	Adjusted         int    `json:"adjusted" example:"5"` // 本次变动(带符号)
	LowStock         bool   `json:"low_stock" example:"false"`
	AdjustedAt       string `json:"adjusted_at" example:"2024-01-15 10:30:00"`
}

// StockResponse HTTP库存查询响应
type StockResponse struct {
	ProductID    uint   `json:"product_id" example:"1"`
	ProductName  string `json:"product_name" example:"北欧三人沙发"`
	SKU          string `json:"sku" example:"SOFA-001"`
	Price        int64  `json:"price" example:"299900"`
	PriceYuan    string `json:"price_yuan" example:"2999.00"`
	MinimumStock int    `json:"minimum_stock" example:"3"`
	Quantity     int    `json:"quantity" example:"15"`
	LowStock     bool   `json:"low_stock" example:"false"`
	UpdatedAt    string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ListMovementsRequest HTTP流水查询请求
type ListMovementsRequest struct {
	ProductID uint `form:"product_id" binding:"omitempty"`
	Page      int  `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize  int  `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// MovementResponse HTTP流水响应
type MovementResponse struct {
	ID          uint   `json:"id" example:"42"`
	ProductID   uint   `json:"product_id" example:"1"`
	ProductName string `json:"product_name" example:"北欧三人沙发"`
	SKU         string `json:"sku" example:"SOFA-001"`
	Type        string `json:"type" example:"add"`
	Quantity    int    `json:"quantity" example:"5"` // 带符号
	Notes       string `json:"notes,omitempty" example:"到货入库"`
	UserID      uint   `json:"user_id" example:"1"`
	Username    string `json:"username" example:"zhangsan"`
	CreatedAt   string `json:"created_at" example:"2024-01-15 10:30:00"`
}
