package stock

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/xiebiao/bookdepot/internal/domain/book"
	"github.com/xiebiao/bookdepot/internal/domain/stock"
	apperrors "github.com/xiebiao/bookdepot/pkg/errors"
	"github.com/xiebiao/bookdepot/pkg/metrics"
	"github.com/xiebiao/bookdepot/pkg/tracing"
)

// BulkImportUseCase 批量导入用例
//
// 设计说明:
// 1. 文件先整体解码为归一化的行序列,再按输入顺序逐行处理
// 2. 逐行处理顺序:条码定位图书 → 数量校验(带符号) → 台账应用;
//    任何一步失败立即中止整批,错误消息带上出错行号
// 3. 没有批级事务:失败行之前已提交的行保持提交,调用方按行号
//    修正文件后重新提交剩余部分
// 4. 行锁只在单行应用期间持有,单笔操作请求可以穿插在导入行之间
type BulkImportUseCase struct {
	stockService stock.Service
	bookService  book.Service
	cache        LeftoverCache
	publisher    EventPublisher
}

// NewBulkImportUseCase 创建批量导入用例
func NewBulkImportUseCase(stockService stock.Service, bookService book.Service, cache LeftoverCache, publisher EventPublisher) *BulkImportUseCase {
	return &BulkImportUseCase{
		stockService: stockService,
		bookService:  bookService,
		cache:        cache,
		publisher:    publisher,
	}
}

// ImportResult 批量导入结果DTO
type ImportResult struct {
	Success     bool `json:"success"`
	RowsApplied int  `json:"rows_applied"`
}

// Execute 执行批量导入
func (uc *BulkImportUseCase) Execute(ctx context.Context, filename string, file io.Reader) (*ImportResult, error) {
	ctx, span := tracing.StartSpan(ctx, "bookdepot/bulk-import", "ImportBatch")
	defer span.End()
	span.SetAttributes(attribute.String("import.filename", filename))

	start := time.Now()
	defer func() {
		metrics.ObserveHistogram(metrics.BulkImportDuration, time.Since(start).Seconds())
	}()

	rows, err := DecodeRows(filename, file)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("import.rows", len(rows)))

	applied, err := uc.importRows(ctx, rows)
	if err != nil {
		span.SetAttributes(attribute.Int("import.rows_applied", applied))
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("import.rows_applied", applied))
	return &ImportResult{Success: true, RowsApplied: applied}, nil
}

// importRows 按输入顺序逐行应用,返回成功行数与首个失败
func (uc *BulkImportUseCase) importRows(ctx context.Context, rows []RawRow) (int, error) {
	applied := 0
	for _, row := range rows {
		if err := uc.importRow(ctx, row); err != nil {
			metrics.IncCounterVec(metrics.BulkImportRowsTotal, map[string]string{"result": "failed"})
			metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "bulk_row", "result": resultLabel(err)})
			return applied, rowError(err, row.Line)
		}
		applied++
		metrics.IncCounterVec(metrics.BulkImportRowsTotal, map[string]string{"result": "applied"})
		metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{"op": "bulk_row", "result": "success"})
	}
	return applied, nil
}

// importRow 处理单行:条码定位 → 数量校验 → 台账应用
func (uc *BulkImportUseCase) importRow(ctx context.Context, row RawRow) error {
	b, err := uc.bookService.GetBookByBarcode(ctx, row.Barcode)
	if err != nil {
		return err
	}

	delta, err := stock.ParseQuantity(row.Quantity)
	if err != nil {
		return err
	}

	record, entry, err := uc.stockService.ApplyDelta(ctx, b.ID, delta)
	if err != nil {
		return err
	}

	afterStockChanged(ctx, uc.cache, uc.publisher, record, entry, b.Barcode, "bulk")
	return nil
}

// rowError 在原始错误消息前追加行号,错误码保持不变
func rowError(err error, line int) error {
	appErr := apperrors.GetAppError(err)
	return apperrors.WithCodeOf(appErr, "第%d行: %s", line, appErr.Message)
}
