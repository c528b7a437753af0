package dto

// CreateCategoryRequest HTTP分类创建请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"沙发"`
	Description string `json:"description" binding:"max=500" example:"各式沙发"`
}

// UpdateCategoryRequest HTTP分类更新请求
// 空字段表示不修改
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"omitempty,max=100" example:"布艺沙发"`
	Description string `json:"description" binding:"omitempty,max=500" example:"布艺类沙发"`
}

// CategoryResponse HTTP分类响应
type CategoryResponse struct {
	ID           uint   `json:"id" example:"1"`
	Name         string `json:"name" example:"沙发"`
	Description  string `json:"description" example:"各式沙发"`
	ProductCount int64  `json:"product_count" example:"12"`
	CreatedAt    string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt    string `json:"updated_at" example:"2024-01-15 10:30:00"`
}
