package user

import (
	"context"
	"time"

	"github.com/xiebiao/inventory/internal/domain/user"
	"github.com/xiebiao/inventory/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/inventory/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证用户名密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求DTO
type LoginRequest struct {
	Username string
	Password string
	ClientIP string // 请求来源IP(审计用)
}

// LoginResponse 登录响应DTO
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}

// UserInfo 用户信息
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证用户名密码（调用领域服务）
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Username, u.Email)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"username": u.Username,
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}

	// 会话有效期 = Refresh Token有效期
	// 会话保存失败不影响登录结果(Redis只承担辅助状态)
	_ = uc.sessionStore.SaveSession(ctx, u.ID, sessionData, 7*24*time.Hour)

	// 4. 返回登录响应
	return &LoginResponse{
		User: UserInfo{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	// 1. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	// 2. 将Access Token加入黑名单（防止Token在过期前继续使用）
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour)
}

// ProfileUseCase 用户资料用例
type ProfileUseCase struct {
	userService user.Service
}

// NewProfileUseCase 创建资料用例
func NewProfileUseCase(userService user.Service) *ProfileUseCase {
	return &ProfileUseCase{userService: userService}
}

// Get 获取当前用户资料
func (uc *ProfileUseCase) Get(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userService.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserInfo{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

// UpdateEmail 更新当前用户邮箱
func (uc *ProfileUseCase) UpdateEmail(ctx context.Context, userID uint, email string) (*UserInfo, error) {
	u, err := uc.userService.UpdateProfile(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	return &UserInfo{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

// ChangePassword 修改当前用户密码
func (uc *ProfileUseCase) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	return uc.userService.ChangePassword(ctx, userID, oldPassword, newPassword)
}
