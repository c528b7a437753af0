package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDatabaseConfig_DSN 锁等待超时作为系统变量进入DSN
// go-sql-driver对DSN里的系统变量在每条新连接上执行SET,
// 连接池的所有连接都生效;连接建立后单独Exec只作用于其中一条
func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:            "localhost",
		Port:            3306,
		User:            "root",
		Password:        "secret",
		DBName:          "inventory",
		Charset:         "utf8mb4",
		ParseTime:       true,
		Loc:             "Asia/Shanghai",
		LockWaitTimeout: 3,
	}

	dsn := d.DSN()
	assert.Equal(t,
		"root:secret@tcp(localhost:3306)/inventory?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai&innodb_lock_wait_timeout=3",
		dsn)

	t.Run("未配置时不附加", func(t *testing.T) {
		d.LockWaitTimeout = 0
		assert.NotContains(t, d.DSN(), "innodb_lock_wait_timeout")
	})
}
