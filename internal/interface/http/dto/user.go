package dto

// RegisterRequest HTTP层注册请求
// 说明：HTTP层的DTO，包含参数验证tag
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"zhangsan"`
	Email    string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"abc12345"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"zhangsan"`
	Password string `json:"password" binding:"required" example:"abc12345"`
}

// UserResponse 用户响应（不包含密码）
type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"zhangsan"`
	Email    string `json:"email" example:"zhangsan@example.com"`
}

// UpdateProfileRequest HTTP层资料更新请求
type UpdateProfileRequest struct {
	Email string `json:"email" binding:"omitempty,email" example:"new@example.com"`
}

// ChangePasswordRequest HTTP层修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"abc12345"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=20" example:"xyz67890"`
}

// RefreshTokenRequest HTTP层刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
