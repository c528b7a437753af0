package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, username, email, password string) (*User, error)

	// Login 用户登录（用户名+密码）
	Login(ctx context.Context, username, password string) (*User, error)

	// GetUser 根据ID获取用户
	GetUser(ctx context.Context, id uint) (*User, error)

	// UpdateProfile 更新用户资料
	UpdateProfile(ctx context.Context, id uint, email string) (*User, error)

	// ChangePassword 修改密码
	// 业务规则：必须先验证旧密码
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 业务规则：
// 1. 用户名格式校验（3-50位，字母数字下划线）
// 2. 邮箱格式校验
// 3. 密码强度校验（8-20位，包含字母和数字）
// 4. 密码bcrypt加密（cost=12）
// 5. 用户名/邮箱唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, username, email, password string) (*User, error) {
	// 1. 用户名格式校验
	if !isValidUsername(username) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "用户名应为3-50位字母、数字或下划线")
	}

	// 2. 邮箱格式校验
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	// 3. 密码强度校验
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	// 4. 密码加密
	// 学习要点：
	// - bcrypt自动加盐，每次加密结果都不同（即使密码相同）
	// - cost=12是推荐值，平衡安全性与性能（cost每+1，耗时翻倍）
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 5. 创建用户实体
	u := NewUser(username, email, string(hashedPassword))

	// 6. 持久化到数据库
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return u, nil
}

// Login 用户登录
// 业务规则：
// 1. 用户名必须存在
// 2. 账号必须可用
// 3. 密码必须正确
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	// 1. 根据用户名查找用户
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err // Repository已转换为ErrUserNotFound
	}

	// 2. 账号可用性检查
	if !u.IsActive() {
		return nil, ErrUserDisabled
	}

	// 3. 验证密码
	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err // 返回ErrInvalidPassword
	}

	return u, nil
}

// GetUser 根据ID获取用户
func (s *service) GetUser(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile 更新用户资料
func (s *service) UpdateProfile(ctx context.Context, id uint, email string) (*User, error) {
	// 1. 查询用户
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 邮箱格式校验(仅在修改时)
	if email != "" && !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	// 3. 更新并持久化(邮箱唯一性由数据库UNIQUE索引保证)
	u.UpdateEmail(email)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// ChangePassword 修改密码
func (s *service) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	// 1. 查询用户
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. 验证旧密码
	if err := s.ValidatePassword(u.Password, oldPassword); err != nil {
		return err
	}

	// 3. 新密码强度校验
	if err := validatePasswordStrength(newPassword); err != nil {
		return err
	}

	// 4. 加密并持久化
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return apperrors.Wrap(err, "密码加密失败")
	}
	u.Password = string(hashedPassword)

	return s.repo.Update(ctx, u)
}

// ValidatePassword 验证密码
// 说明：登录时使用，验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

// isValidUsername 用户名格式校验
// 规则：3-50位，字母、数字、下划线
func isValidUsername(username string) bool {
	pattern := `^[a-zA-Z0-9_]{3,50}$`
	matched, _ := regexp.MatchString(pattern, username)
	return matched
}

// isValidEmail 邮箱格式校验
// 简单的正则校验，生产环境可使用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}

	return nil
}
