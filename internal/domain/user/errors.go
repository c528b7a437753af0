package user

import (
	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrUsernameDuplicate 用户名已存在
	ErrUsernameDuplicate = apperrors.ErrUsernameDuplicate

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.ErrEmailDuplicate

	// ErrInvalidPassword 密码错误
	ErrInvalidPassword = apperrors.ErrInvalidPassword

	// ErrWeakPassword 密码强度不足
	ErrWeakPassword = apperrors.ErrWeakPassword

	// ErrUserDisabled 账号已被禁用
	ErrUserDisabled = apperrors.New(apperrors.ErrCodeForbidden, "账号已被禁用")
)
