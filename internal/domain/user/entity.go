package user

import (
	"time"
)

// User 用户实体
// 设计说明:
// 1. Password存储bcrypt哈希,绝不存储明文
// 2. Username与Email均全局唯一,登录使用用户名
// 3. Active标记账号是否可用,禁用账号无法登录
type User struct {
	ID        uint
	Username  string // 用户名(唯一,登录凭证)
	Email     string // 邮箱(唯一)
	Password  string // bcrypt哈希后的密码
	Active    bool   // 账号是否可用
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建用户实体(工厂方法)
// 注意:password参数必须是已经bcrypt加密后的哈希值
func NewUser(username, email, hashedPassword string) *User {
	return &User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Active:   true,
	}
}

// IsActive 账号是否可用
func (u *User) IsActive() bool {
	return u.Active
}

// UpdateEmail 更新邮箱(空值表示不修改)
func (u *User) UpdateEmail(email string) {
	if email != "" {
		u.Email = email
	}
}
