package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isLockWaitTimeout 判断是否为行锁等待超时错误
// MySQL错误码:
// - 1205: Lock wait timeout exceeded; try restarting transaction
// - 1213: Deadlock found when trying to get lock
// 两者对调用方语义相同:事务已回滚,整个调整可以安全地从头重试
func isLockWaitTimeout(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Lock wait timeout exceeded") ||
		strings.Contains(msg, "Deadlock found")
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制,各Repository共用
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return fallback
}
