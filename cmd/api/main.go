package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appauthor "github.com/xiebiao/bookdepot/internal/application/author"
	appbook "github.com/xiebiao/bookdepot/internal/application/book"
	appstock "github.com/xiebiao/bookdepot/internal/application/stock"
	"github.com/xiebiao/bookdepot/internal/domain/author"
	"github.com/xiebiao/bookdepot/internal/domain/book"
	"github.com/xiebiao/bookdepot/internal/domain/stock"
	"github.com/xiebiao/bookdepot/internal/infrastructure/config"
	"github.com/xiebiao/bookdepot/internal/infrastructure/event"
	"github.com/xiebiao/bookdepot/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookdepot/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookdepot/internal/interface/http/handler"
	"github.com/xiebiao/bookdepot/internal/interface/http/middleware"
	"github.com/xiebiao/bookdepot/pkg/metrics"
	"github.com/xiebiao/bookdepot/pkg/mq"
	"github.com/xiebiao/bookdepot/pkg/response"
	"github.com/xiebiao/bookdepot/pkg/tracing"
)

// @title           bookdepot 图书库存API
// @version         1.0
// @description     图书登记与库存台账服务:入库、出库、批量导入、历史查询
// @BasePath        /

// main 主程序入口
// 说明:手动依赖注入,与cmd/api/wire.go中的Wire配置保持一致
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

	// 2. 初始化指标
	metrics.InitMetrics()

	// 3. 初始化追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("bookdepot", cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化追踪失败: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Printf("关闭追踪失败: %v", err)
			}
		}()
		fmt.Printf("✓ 追踪已启用: %s\n", cfg.Tracing.Endpoint)
	}

	// 4. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 5. 初始化库存缓存(可选,Redis不可用时直接退化为无缓存)
	var leftoverCache appstock.LeftoverCache = appstock.NopLeftoverCache{}
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			log.Printf("初始化Redis失败,库存缓存已禁用: %v", err)
		} else {
			leftoverCache = redis.NewLeftoverCache(redisClient, cfg.Redis.CacheTTL)
		}
	}

	// 6. 初始化事件发布(可选)
	var eventPublisher appstock.EventPublisher = appstock.NopEventPublisher{}
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Printf("初始化消息队列失败,事件发布已禁用: %v", err)
		} else {
			defer publisher.Close()
			eventPublisher = event.NewStockPublisher(publisher)
		}
	}

	// 7. 依赖注入(手动组装)
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	txManager := mysql.NewTxManager(db)
	authorRepo := mysql.NewAuthorRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	stockRepo := mysql.NewStockRepository(db, txManager)
	historyRepo := mysql.NewHistoryRepository(db)

	// 领域层
	authorService := author.NewService(authorRepo)
	bookService := book.NewService(bookRepo)
	stockService := stock.NewService(stockRepo, bookRepo)

	// 应用层
	registerAuthorUseCase := appauthor.NewRegisterAuthorUseCase(authorService)
	getAuthorUseCase := appauthor.NewGetAuthorUseCase(authorService)
	addBookUseCase := appbook.NewAddBookUseCase(bookService, authorService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, authorService, stockService)
	searchBooksUseCase := appbook.NewSearchBooksUseCase(bookService, authorService, stockService)
	setLeftoverUseCase := appstock.NewSetLeftoverUseCase(stockService, bookService, leftoverCache, eventPublisher)
	addQuantityUseCase := appstock.NewAddQuantityUseCase(stockService, bookService, leftoverCache, eventPublisher)
	removeQuantityUseCase := appstock.NewRemoveQuantityUseCase(stockService, bookService, leftoverCache, eventPublisher)
	bulkImportUseCase := appstock.NewBulkImportUseCase(stockService, bookService, leftoverCache, eventPublisher)
	getLeftoverUseCase := appstock.NewGetLeftoverUseCase(stockService, leftoverCache)
	queryHistoryUseCase := appstock.NewQueryHistoryUseCase(historyRepo, bookRepo)

	// 接口层
	authorHandler := handler.NewAuthorHandler(registerAuthorUseCase, getAuthorUseCase)
	bookHandler := handler.NewBookHandler(addBookUseCase, getBookUseCase, searchBooksUseCase)
	leftoverHandler := handler.NewLeftoverHandler(setLeftoverUseCase, addQuantityUseCase, removeQuantityUseCase, bulkImportUseCase, getLeftoverUseCase)
	historyHandler := handler.NewHistoryHandler(queryHistoryUseCase)

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 9. 注册路由
	registerRoutes(r, authorHandler, bookHandler, leftoverHandler, historyHandler)

	// 10. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   指标: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	authorHandler *handler.AuthorHandler,
	bookHandler *handler.BookHandler,
	leftoverHandler *handler.LeftoverHandler,
	historyHandler *handler.HistoryHandler,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "pong", "status": "healthy"})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 作者
	r.POST("/author", authorHandler.AddAuthor)
	r.GET("/author/:author_Id", authorHandler.GetAuthor)

	// 图书
	r.POST("/book", bookHandler.AddBook)
	r.GET("/book", bookHandler.SearchBooks)
	r.GET("/book/:key", bookHandler.GetBook)

	// 库存
	r.POST("/leftover", leftoverHandler.SetLeftover)
	r.POST("/leftover/add", leftoverHandler.AddQuantity)
	r.POST("/leftover/remove", leftoverHandler.RemoveQuantity)
	r.POST("/leftover/bulk", leftoverHandler.BulkImport)
	r.GET("/leftover/:key", leftoverHandler.GetLeftover)

	// 历史
	r.GET("/history", historyHandler.SearchHistory)
	r.GET("/history/:key", historyHandler.GetHistory)
}
