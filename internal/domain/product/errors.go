package product

import (
	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	// ErrSKUDuplicate SKU已存在
	ErrSKUDuplicate = apperrors.New(apperrors.ErrCodeSKUDuplicate, "SKU编号已存在")

	// ErrInvalidName 商品名不能为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "商品名不能为空")

	// ErrInvalidSKU SKU不能为空
	ErrInvalidSKU = apperrors.New(apperrors.ErrCodeInvalidParams, "SKU编号不能为空")

	// ErrInvalidCategory 分类缺失
	ErrInvalidCategory = apperrors.New(apperrors.ErrCodeInvalidParams, "必须指定商品分类")

	// ErrInvalidPrice 价格不能为负数
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")

	// ErrInvalidMinimumStock 最低库存线不能为负数
	ErrInvalidMinimumStock = apperrors.New(apperrors.ErrCodeInvalidParams, "最低库存不能为负数")

	// ErrInvalidInitialStock 初始库存不能为负数
	ErrInvalidInitialStock = apperrors.New(apperrors.ErrCodeInvalidParams, "初始库存不能为负数")

	// ErrHasMovementHistory 商品存在库存流水,禁止删除
	// 流水是只增不改的审计账本,删除商品会让历史流水悬空、破坏账实相符
	ErrHasMovementHistory = apperrors.New(apperrors.ErrCodeProductHasHistory, "商品存在库存流水，禁止删除")
)
