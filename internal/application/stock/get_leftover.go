package stock

import (
	"context"
	"log"

	"github.com/xiebiao/bookdepot/internal/domain/stock"
)

// GetLeftoverUseCase 库存数量查询用例
// 设计说明:
// 1. 读多写少,走缓存(Cache-Aside):先查缓存,未命中再查数据库并回填
// 2. 缓存出错(包括熔断器打开)不影响查询结果,直接穿透到数据库
type GetLeftoverUseCase struct {
	stockService stock.Service
	cache        LeftoverCache
}

// NewGetLeftoverUseCase 创建库存查询用例
func NewGetLeftoverUseCase(stockService stock.Service, cache LeftoverCache) *GetLeftoverUseCase {
	return &GetLeftoverUseCase{
		stockService: stockService,
		cache:        cache,
	}
}

// Execute 查询图书当前库存数量
func (uc *GetLeftoverUseCase) Execute(ctx context.Context, bookID uint) (*LeftoverResponse, error) {
	if quantity, hit, err := uc.cache.Get(ctx, bookID); err == nil && hit {
		return &LeftoverResponse{BookID: bookID, Quantity: quantity}, nil
	}

	quantity, err := uc.stockService.CurrentQuantity(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, bookID, quantity); err != nil {
		log.Printf("库存缓存回填失败 book_id=%d: %v", bookID, err)
	}

	return &LeftoverResponse{BookID: bookID, Quantity: quantity}, nil
}
