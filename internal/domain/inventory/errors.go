package inventory

import (
	apperrors "github.com/xiebiao/inventory/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrInvalidDirection 调整类型非法（只接受add/remove）
	ErrInvalidDirection = apperrors.New(apperrors.ErrCodeInvalidParams, "类型必须为add或remove")

	// ErrInvalidQuantity 数量非法（必须为正整数，不记录零值流水）
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须为正整数")

	// ErrInvalidProductID 商品ID非法
	ErrInvalidProductID = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的商品ID")

	// ErrInvalidActor 操作人缺失
	ErrInvalidActor = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的操作人")

	// ErrZeroMovement 零值流水（不允许出现）
	ErrZeroMovement = apperrors.New(apperrors.ErrCodeInvalidParams, "流水数量不能为零")

	// ErrInventoryNotFound 库存记录不存在
	ErrInventoryNotFound = apperrors.New(apperrors.ErrCodeInventoryNotFound, "库存记录不存在")

	// ErrInsufficientStock 库存不足（出库数量超过现有数量，整单拒绝）
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrConflict 同一商品的并发调整发生行锁等待超时，可整体重试
	ErrConflict = apperrors.New(apperrors.ErrCodeConflict, "库存操作冲突，请稍后重试")
)
