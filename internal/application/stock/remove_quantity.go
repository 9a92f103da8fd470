package stock

import (
	"context"

	"github.com/xiebiao/bookdepot/internal/domain/book"
	"github.com/xiebiao/bookdepot/internal/domain/stock"
	"github.com/xiebiao/bookdepot/pkg/metrics"
)

// RemoveQuantityUseCase 出库用例
// 业务规则:数量必须是正整数,扣减不允许把库存变成负数,
// 库存不足时整笔拒绝且不留历史
type RemoveQuantityUseCase struct {
	stockService stock.Service
	bookService  book.Service
	cache        LeftoverCache
	publisher    EventPublisher
}

// NewRemoveQuantityUseCase 创建出库用例
func NewRemoveQuantityUseCase(stockService stock.Service, bookService book.Service, cache LeftoverCache, publisher EventPublisher) *RemoveQuantityUseCase {
	return &RemoveQuantityUseCase{
		stockService: stockService,
		bookService:  bookService,
		cache:        cache,
		publisher:    publisher,
	}
}

// Execute 执行出库
func (uc *RemoveQuantityUseCase) Execute(ctx context.Context, req ChangeQuantityRequest) (*LeftoverResponse, error) {
	quantity, err := stock.ParsePositiveQuantity(req.Quantity)
	if err != nil {
		metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "remove", "result": "rejected"})
		return nil, err
	}

	b, err := uc.bookService.GetBookByBarcode(ctx, req.Barcode)
	if err != nil {
		metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "remove", "result": resultLabel(err)})
		return nil, err
	}

	record, entry, err := uc.stockService.RemoveQuantity(ctx, b.ID, quantity)
	if err != nil {
		metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "remove", "result": resultLabel(err)})
		return nil, err
	}
	metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "remove", "result": "success"})

	afterStockChanged(ctx, uc.cache, uc.publisher, record, entry, b.Barcode, "remove")

	return newLeftoverResponse(record), nil
}
