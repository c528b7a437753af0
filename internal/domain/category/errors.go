package category

import (
	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// 分类领域错误定义
var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.ErrCategoryNotFound

	// ErrNameDuplicate 分类名称重复
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeNameDuplicate, "分类名称已存在")

	// ErrInvalidName 分类名称不合法
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称长度应为1-100个字符")

	// ErrCategoryInUse 分类下存在商品,不能删除
	ErrCategoryInUse = apperrors.ErrCategoryInUse
)
