package dto

// SummaryResponse HTTP仪表盘汇总响应
type SummaryResponse struct {
	ProductCount   int64  `json:"product_count" example:"120"`
	CategoryCount  int64  `json:"category_count" example:"8"`
	TotalQuantity  int64  `json:"total_quantity" example:"1560"`
	LowStockCount  int64  `json:"low_stock_count" example:"4"`
	TotalValue     int64  `json:"total_value" example:"128990000"` // 分
	TotalValueYuan string `json:"total_value_yuan" example:"1289900.00"`
}

// TotalValueResponse HTTP库存价值响应
type TotalValueResponse struct {
	TotalValue     int64  `json:"total_value" example:"128990000"` // 分
	TotalValueYuan string `json:"total_value_yuan" example:"1289900.00"`
}
