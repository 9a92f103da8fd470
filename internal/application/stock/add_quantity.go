package stock

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookdepot/internal/domain/book"
	"github.com/xiebiao/bookdepot/internal/domain/stock"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
	"github.com/xiebiao/bookdepot/pkg/metrics"
)

// AddQuantityUseCase 入库用例
// 设计说明:
// 1. 请求里的数量是原始文本,在这里统一做整数校验,
//    格式错误与非正数是两类不同的错误
// 2. 变更提交成功后的缓存失效和事件发布是尽力而为,
//    失败只记日志不回滚库存
type AddQuantityUseCase struct {
	stockService stock.Service
	bookService  book.Service
	cache        LeftoverCache
	publisher    EventPublisher
}

// NewAddQuantityUseCase 创建入库用例
func NewAddQuantityUseCase(stockService stock.Service, bookService book.Service, cache LeftoverCache, publisher EventPublisher) *AddQuantityUseCase {
	return &AddQuantityUseCase{
		stockService: stockService,
		bookService:  bookService,
		cache:        cache,
		publisher:    publisher,
	}
}

// ChangeQuantityRequest 库存变更请求DTO(入库与出库共用)
// 对外接口按条码定位图书,条码到图书ID的解析在用例内完成
type ChangeQuantityRequest struct {
	Barcode  string // 图书条码
	Quantity string // 数量原始文本(必须是正整数)
}

// LeftoverResponse 库存响应DTO
type LeftoverResponse struct {
	BookID    uint   `json:"book_id"`
	Quantity  int    `json:"quantity"`
	UpdatedAt string `json:"updated_at"`
}

// Execute 执行入库
func (uc *AddQuantityUseCase) Execute(ctx context.Context, req ChangeQuantityRequest) (*LeftoverResponse, error) {
	quantity, err := stock.ParsePositiveQuantity(req.Quantity)
	if err != nil {
		metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "add", "result": "rejected"})
		return nil, err
	}

	b, err := uc.bookService.GetBookByBarcode(ctx, req.Barcode)
	if err != nil {
		metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "add", "result": resultLabel(err)})
		return nil, err
	}

	record, entry, err := uc.stockService.AddQuantity(ctx, b.ID, quantity)
	if err != nil {
		metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "add", "result": resultLabel(err)})
		return nil, err
	}
	metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "add", "result": "success"})

	afterStockChanged(ctx, uc.cache, uc.publisher, record, entry, b.Barcode, "add")

	return newLeftoverResponse(record), nil
}

// newLeftoverResponse 领域模型 → 响应DTO
func newLeftoverResponse(record *stock.StockRecord) *LeftoverResponse {
	return &LeftoverResponse{
		BookID:    record.BookID,
		Quantity:  record.Quantity,
		UpdatedAt: record.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// resultLabel 错误 → 指标结果标签
// 业务规则拒绝(库存不足等)与系统错误分开统计
func resultLabel(err error) string {
	code := apperrors.GetAppError(err).Code
	if code >= 40000 && code < 50000 {
		return "rejected"
	}
	return "error"
}

// afterStockChanged 变更提交后的公共收尾:失效缓存、发布事件
// 这些副作用失败不影响已提交的变更,只记日志
// 条码由调用方传入(各入口在变更前都已定位过图书),这里不再回查
func afterStockChanged(ctx context.Context, cache LeftoverCache, publisher EventPublisher, record *stock.StockRecord, entry *stock.HistoryEntry, barcode, source string) {
	if record == nil || entry == nil {
		return
	}

	if err := cache.Invalidate(ctx, record.BookID); err != nil {
		log.Printf("库存缓存失效失败 book_id=%d: %v", record.BookID, err)
	}

	event := StockChangedEvent{
		BookID:    record.BookID,
		Barcode:   barcode,
		Delta:     entry.SignedQuantity,
		Quantity:  record.Quantity,
		Source:    source,
		Timestamp: time.Now(),
	}
	if err := publisher.PublishStockChanged(ctx, event); err != nil {
		log.Printf("库存变更事件发布失败 book_id=%d: %v", record.BookID, err)
	}
}
