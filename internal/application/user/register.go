package user

import (
	"context"

	"github.com/xiebiao/inventory/internal/domain/user"
)

// RegisterUseCase 用户注册用例
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求DTO
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// RegisterResponse 注册响应DTO
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Execute 执行注册
// 格式校验、密码强度、加密都由领域服务负责
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}, nil
}
