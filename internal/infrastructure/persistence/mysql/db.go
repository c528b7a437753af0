package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/inventory/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	// innodb_lock_wait_timeout随DSN下发到每条池化连接:
	// 热点商品上的并发调整在SELECT FOR UPDATE处排队,
	// 超过该时长的等待以1205错误返回,仓储层转换为可重试的冲突错误
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func autoMigrate(db *gorm.DB) error {
	// 注意：这里使用GORM的模型定义（带tag），不是domain层的实体
	return db.AutoMigrate(
		&UserModel{},
		&CategoryModel{},
		&ProductModel{},
		&InventoryModel{},
		&StockMovementModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Username  string         `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Active    bool           `gorm:"default:true;comment:账号是否可用"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
	Description string         `gorm:"size:500;comment:分类描述"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel GORM商品模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. SKU有唯一索引,防止重复
// 3. 商品表上不冗余库存数量字段,当前数量的唯一事实来源是inventories表
type ProductModel struct {
	ID           uint           `gorm:"primaryKey"`
	Name         string         `gorm:"index:idx_search;size:200;not null;comment:商品名称"` // 搜索索引
	SKU          string         `gorm:"uniqueIndex;size:50;not null;comment:SKU编号"`
	Description  string         `gorm:"type:text;comment:商品描述"`
	CategoryID   uint           `gorm:"index;not null;comment:分类ID"`
	Price        int64          `gorm:"index:idx_list;not null;comment:价格(分)"` // 排序索引
	MinimumStock int            `gorm:"default:0;comment:最低库存阈值"`
	ImageURL     string         `gorm:"size:500;comment:商品图片URL"`
	CreatedAt    time.Time      `gorm:"index:idx_list;comment:创建时间"` // 排序索引
	UpdatedAt    time.Time      `gorm:"comment:更新时间"`
	DeletedAt    gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// InventoryModel GORM库存模型
// 教学要点:
// 1. ProductID有唯一索引:每个商品恰好一条库存记录(一对一)
// 2. Quantity无符号:配合应用层校验双重防护,库存永不为负
// 3. 不使用软删除:库存记录随商品删除级联硬删,避免唯一索引冲突
type InventoryModel struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID uint      `gorm:"uniqueIndex;not null;comment:商品ID"`
	Quantity  int       `gorm:"not null;default:0;comment:当前库存数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (InventoryModel) TableName() string {
	return "inventories"
}

// StockMovementModel GORM库存流水模型
// 教学要点:
// 1. Append-Only:只插入,没有UPDATE/DELETE路径
// 2. Quantity带符号:入库为正,出库为负,sum(quantity)即净变动
// 3. 复合索引(product_id, created_at)支撑"按商品查流水+时间倒序"
type StockMovementModel struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID uint      `gorm:"index:idx_product_time;not null;comment:商品ID"`
	Quantity  int       `gorm:"not null;comment:变动数量(带符号)"`
	Type      string    `gorm:"size:10;not null;comment:变动类型(add/remove)"`
	Notes     string    `gorm:"size:500;comment:备注"`
	UserID    uint      `gorm:"index;not null;comment:操作人用户ID"`
	CreatedAt time.Time `gorm:"index:idx_product_time;comment:创建时间"`
}

// TableName 指定表名
func (StockMovementModel) TableName() string {
	return "stock_movements"
}
