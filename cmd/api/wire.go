//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入（如Spring的@Autowired）不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appcategory "github.com/xiebiao/inventory/internal/application/category"
	appdashboard "github.com/xiebiao/inventory/internal/application/dashboard"
	appinventory "github.com/xiebiao/inventory/internal/application/inventory"
	appproduct "github.com/xiebiao/inventory/internal/application/product"
	appuser "github.com/xiebiao/inventory/internal/application/user"
	"github.com/xiebiao/inventory/internal/domain/category"
	"github.com/xiebiao/inventory/internal/domain/inventory"
	"github.com/xiebiao/inventory/internal/domain/product"
	"github.com/xiebiao/inventory/internal/domain/user"
	"github.com/xiebiao/inventory/internal/infrastructure/config"
	"github.com/xiebiao/inventory/internal/infrastructure/event"
	"github.com/xiebiao/inventory/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/inventory/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/inventory/internal/interface/http/handler"
	"github.com/xiebiao/inventory/internal/interface/http/middleware"
	"github.com/xiebiao/inventory/pkg/jwt"
	"github.com/xiebiao/inventory/pkg/metrics"
	"github.com/xiebiao/inventory/pkg/mq"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,      // 用户仓储
	mysql.NewCategoryRepository,  // 分类仓储
	mysql.NewProductRepository,   // 商品仓储
	mysql.NewInventoryRepository, // 库存仓储
	mysql.NewMovementRepository,  // 流水仓储
	mysql.NewDashboardRepository, // 仪表盘聚合查询
	mysql.NewTxManager,           // 事务管理器
	provideTransactor,            // 事务接口绑定
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,       // 用户领域服务
	category.NewService,   // 分类领域服务
	product.NewService,    // 商品领域服务
	provideProductCounter, // 分类删除守卫的商品计数接口
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,            // 用户注册用例
	appuser.NewLoginUseCase,               // 用户登录用例
	appuser.NewLogoutUseCase,              // 用户登出用例
	appuser.NewProfileUseCase,             // 用户资料用例
	appcategory.NewManageCategoryUseCase,  // 分类管理用例
	appproduct.NewCreateProductUseCase,    // 商品创建用例
	appproduct.NewManageProductUseCase,    // 商品管理用例
	appproduct.NewDeleteProductUseCase,    // 商品删除用例
	appinventory.NewAdjustStockUseCase,    // 库存调整用例
	appinventory.NewGetInventoryUseCase,   // 库存查询用例
	appinventory.NewListMovementsUseCase,  // 流水查询用例
	appdashboard.NewDashboardUseCase,      // 仪表盘用例
	provideAlertPublisher,                 // 低库存告警发布器
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,            // JWT管理器（需要从config提取参数）
	provideSessionStore,          // Session存储（需要从Redis创建）
	middleware.NewAuthMiddleware, // 认证中间件
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,      // 用户处理器
	handler.NewCategoryHandler,  // 分类处理器
	handler.NewProductHandler,   // 商品处理器
	handler.NewInventoryHandler, // 库存处理器
	handler.NewDashboardHandler, // 仪表盘处理器
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideTransactor 将具体的事务管理器绑定为领域接口
// 教学要点：wire.Bind只支持接口←具体类型,这里用Provider函数做接口适配
func provideTransactor(tm *mysql.TxManager) inventory.Transactor {
	return tm
}

// provideProductCounter 分类领域服务需要的商品计数接口
// product.Repository本身就带CountByCategory方法,直接适配
func provideProductCounter(repo product.Repository) category.ProductCounter {
	return repo
}

// provideAlertPublisher 按配置创建低库存告警发布器
// 未启用消息队列时使用空实现,库存调整流程不受影响
func provideAlertPublisher(cfg *config.Config) (inventory.AlertPublisher, error) {
	if !cfg.MQ.Enabled {
		return event.NoopPublisher{}, nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}
	return event.NewLowStockPublisher(publisher), nil
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	inventoryHandler *handler.InventoryHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	// 设置运行模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.InitMetrics()

	r := gin.Default()
	r.Use(middleware.Metrics())

	// 路由注册与main.go共用同一个函数
	registerRoutes(r, userHandler, categoryHandler, productHandler, inventoryHandler, dashboardHandler, authMiddleware)

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================

// InitializeApp 初始化整个应用
// wire.Build告诉Wire需要哪些Provider来构建*gin.Engine,
// Wire在编译期分析依赖关系并生成初始化代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		// 基础设施层
		infrastructureSet,

		// 仓储层
		repositorySet,

		// 领域层
		domainSet,

		// 应用层
		applicationSet,

		// 中间件层
		middlewareSet,

		// 接口层
		handlerSet,

		// Gin引擎
		provideGinEngine,
	)

	// 返回值是占位符,实际运行时会被wire_gen.go替代
	return nil, nil
}
