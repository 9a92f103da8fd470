package stock

import (
	"context"

	"github.com/xiebiao/bookdepot/internal/domain/book"
	"github.com/xiebiao/bookdepot/internal/domain/stock"
	"github.com/xiebiao/bookdepot/pkg/metrics"
)

// SetLeftoverUseCase 直接设置库存数量用例
// 设计说明:
// 1. 这是老接口(直接报一个目标数量)的兼容入口,内部统一换算为
//    增量变更走台账,保证历史完整、对账不变量成立
// 2. 目标数量允许为0(清空库存),但不允许为负
// 3. 目标值与当前值相同时是幂等空操作,不产生历史
type SetLeftoverUseCase struct {
	stockService stock.Service
	bookService  book.Service
	cache        LeftoverCache
	publisher    EventPublisher
}

// NewSetLeftoverUseCase 创建设置库存用例
func NewSetLeftoverUseCase(stockService stock.Service, bookService book.Service, cache LeftoverCache, publisher EventPublisher) *SetLeftoverUseCase {
	return &SetLeftoverUseCase{
		stockService: stockService,
		bookService:  bookService,
		cache:        cache,
		publisher:    publisher,
	}
}

// SetLeftoverRequest 设置库存请求DTO
type SetLeftoverRequest struct {
	BookID   uint   // 图书ID
	Quantity string // 目标数量原始文本(必须是非负整数)
}

// Execute 执行设置库存
func (uc *SetLeftoverUseCase) Execute(ctx context.Context, req SetLeftoverRequest) (*LeftoverResponse, error) {
	target, err := stock.ParseQuantity(req.Quantity)
	if err != nil {
		metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "set", "result": "rejected"})
		return nil, err
	}

	// 这个入口按图书ID定位,先取图书拿到条码供事件使用
	b, err := uc.bookService.GetBookByID(ctx, req.BookID)
	if err != nil {
		metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "set", "result": resultLabel(err)})
		return nil, err
	}

	record, entry, err := uc.stockService.SetQuantity(ctx, req.BookID, target)
	if err != nil {
		metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "set", "result": resultLabel(err)})
		return nil, err
	}
	metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "set", "result": "success"})

	// 幂等空操作:记录可能还不存在(目标0且从未有过库存)
	if record == nil {
		return &LeftoverResponse{BookID: req.BookID, Quantity: target}, nil
	}

	afterStockChanged(ctx, uc.cache, uc.publisher, record, entry, b.Barcode, "set")

	return newLeftoverResponse(record), nil
}
