package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/inventory/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供编译期自动生成的替代方案）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 初始化监控指标
	metrics.InitMetrics()

	// 5. 初始化低库存告警发布器(可选)
	var alertPublisher inventory.AlertPublisher = event.NoopPublisher{}
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer publisher.Close()
		alertPublisher = event.NewLowStockPublisher(publisher)
		fmt.Printf("  - 消息队列: %s (exchange=%s)\n", cfg.MQ.URL, cfg.MQ.Exchange)
	}

	// 6. 依赖注入（手动组装）
	// 依赖注入链：Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)
	invRepo := mysql.NewInventoryRepository(db)
	movementRepo := mysql.NewMovementRepository(db)
	dashboardRepo := mysql.NewDashboardRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	categoryService := category.NewService(categoryRepo, productRepo)
	productService := product.NewService(productRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	profileUseCase := appuser.NewProfileUseCase(userService)
	manageCategoryUseCase := appcategory.NewManageCategoryUseCase(categoryService)
	createProductUseCase := appproduct.NewCreateProductUseCase(productRepo, categoryRepo, invRepo, txManager)
	manageProductUseCase := appproduct.NewManageProductUseCase(productService)
	deleteProductUseCase := appproduct.NewDeleteProductUseCase(productRepo, invRepo, movementRepo, txManager)
	adjustStockUseCase := appinventory.NewAdjustStockUseCase(invRepo, movementRepo, productRepo, txManager, alertPublisher)
	getInventoryUseCase := appinventory.NewGetInventoryUseCase(invRepo, productRepo)
	listMovementsUseCase := appinventory.NewListMovementsUseCase(movementRepo, productRepo)
	dashboardUseCase := appdashboard.NewDashboardUseCase(dashboardRepo, movementRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, profileUseCase, jwtManager)
	categoryHandler := handler.NewCategoryHandler(manageCategoryUseCase)
	productHandler := handler.NewProductHandler(createProductUseCase, manageProductUseCase, deleteProductUseCase)
	inventoryHandler := handler.NewInventoryHandler(adjustStockUseCase, getInventoryUseCase, listMovementsUseCase)
	dashboardHandler := handler.NewDashboardHandler(dashboardUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 8. 注册路由
	registerRoutes(r, userHandler, categoryHandler, productHandler, inventoryHandler, dashboardHandler, authMiddleware)

	// 9. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	inventoryHandler *handler.InventoryHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus监控指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(生产环境建议禁用或加访问控制)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			// 公开接口
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/refresh", userHandler.RefreshToken)

			// 需要登录
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
			users.GET("/profile", authMiddleware.RequireAuth(), userHandler.GetProfile)
			users.PUT("/profile", authMiddleware.RequireAuth(), userHandler.UpdateProfile)
			users.PUT("/password", authMiddleware.RequireAuth(), userHandler.ChangePassword)
		}

		// 分类模块(查询公开,变更需要登录)
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)
			categories.POST("", authMiddleware.RequireAuth(), categoryHandler.Create)
			categories.PUT("/:id", authMiddleware.RequireAuth(), categoryHandler.Update)
			categories.DELETE("/:id", authMiddleware.RequireAuth(), categoryHandler.Delete)
		}

		// 商品模块(查询公开,变更需要登录)
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.POST("", authMiddleware.RequireAuth(), productHandler.Create)
			products.PUT("/:id", authMiddleware.RequireAuth(), productHandler.Update)
			products.DELETE("/:id", authMiddleware.RequireAuth(), productHandler.Delete)
		}

		// 库存模块
		inv := v1.Group("/inventory")
		{
			inv.GET("", inventoryHandler.List)
			// movements必须注册在/:id之前(gin路由按注册顺序匹配静态段)
			inv.GET("/movements", inventoryHandler.ListMovements)
			inv.GET("/:id", inventoryHandler.Get)
			// 库存调整需要登录(流水记录操作人)
			inv.POST("/:id", authMiddleware.RequireAuth(), inventoryHandler.AdjustStock)
		}

		// 仪表盘模块(需要登录)
		dashboard := v1.Group("/dashboard")
		dashboard.Use(authMiddleware.RequireAuth())
		{
			dashboard.GET("/low-stock", dashboardHandler.LowStock)
			dashboard.GET("/value", dashboardHandler.TotalValue)
			dashboard.GET("/summary", dashboardHandler.Summary)
			dashboard.GET("/recent", dashboardHandler.RecentMovements)
		}
	}
}
