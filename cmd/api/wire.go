//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 说明:
// 1. Wire是编译期依赖注入工具,运行 `wire gen ./cmd/api` 生成wire_gen.go
// 2. main.go中的手动组装与这里的Provider声明保持一致,
//    两者等价,手动版便于阅读依赖链
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

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
	"github.com/xiebiao/bookdepot/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	provideLeftoverCache,
	provideEventPublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewTxManager,
	mysql.NewAuthorRepository,
	mysql.NewBookRepository,
	mysql.NewStockRepository,
	mysql.NewHistoryRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	author.NewService,
	book.NewService,
	stock.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appauthor.NewRegisterAuthorUseCase,
	appauthor.NewGetAuthorUseCase,
	appbook.NewAddBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewSearchBooksUseCase,
	appstock.NewSetLeftoverUseCase,
	appstock.NewAddQuantityUseCase,
	appstock.NewRemoveQuantityUseCase,
	appstock.NewBulkImportUseCase,
	appstock.NewGetLeftoverUseCase,
	appstock.NewQueryHistoryUseCase,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewAuthorHandler,
	handler.NewBookHandler,
	handler.NewLeftoverHandler,
	handler.NewHistoryHandler,
)

// provideLeftoverCache 按配置创建库存缓存
// Redis未启用或连接失败时退化为无缓存
func provideLeftoverCache(cfg *config.Config) appstock.LeftoverCache {
	if !cfg.Redis.Enabled {
		return appstock.NopLeftoverCache{}
	}
	client, err := redis.NewClient(cfg)
	if err != nil {
		log.Printf("初始化Redis失败,库存缓存已禁用: %v", err)
		return appstock.NopLeftoverCache{}
	}
	return redis.NewLeftoverCache(client, cfg.Redis.CacheTTL)
}

// provideEventPublisher 按配置创建事件发布器
func provideEventPublisher(cfg *config.Config) appstock.EventPublisher {
	if !cfg.MQ.Enabled {
		return appstock.NopEventPublisher{}
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		log.Printf("初始化消息队列失败,事件发布已禁用: %v", err)
		return appstock.NopEventPublisher{}
	}
	return event.NewStockPublisher(publisher)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	authorHandler *handler.AuthorHandler,
	bookHandler *handler.BookHandler,
	leftoverHandler *handler.LeftoverHandler,
	historyHandler *handler.HistoryHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r, authorHandler, bookHandler, leftoverHandler, historyHandler)
	return r
}

// InitializeApp 初始化整个应用
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
