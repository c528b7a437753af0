package mysql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// TestIsDuplicateError 唯一索引冲突识别(MySQL 1062)
func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"GORM翻译后的错误", gorm.ErrDuplicatedKey, true},
		{"包装过的GORM错误", fmt.Errorf("创建失败: %w", gorm.ErrDuplicatedKey), true},
		{"MySQL 1062原始错误文本", errors.New("Error 1062 (23000): Duplicate entry 'SOFA-001' for key 'products.sku'"), true},
		{"记录不存在", gorm.ErrRecordNotFound, false},
		{"其他错误", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateError(tt.err))
		})
	}
}

// TestIsLockWaitTimeout 行锁超时与死锁识别(MySQL 1205/1213)
// 两者都意味着事务已回滚,调整可以安全地整体重试
func TestIsLockWaitTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"MySQL 1205锁等待超时", errors.New("Error 1205 (HY000): Lock wait timeout exceeded; try restarting transaction"), true},
		{"MySQL 1213死锁", errors.New("Error 1213 (40001): Deadlock found when trying to get lock; try restarting transaction"), true},
		{"唯一索引冲突", gorm.ErrDuplicatedKey, false},
		{"其他错误", errors.New("invalid connection"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLockWaitTimeout(tt.err))
		})
	}
}
