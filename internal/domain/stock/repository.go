package stock

import (
	"context"
	"time"
)

// Repository 库存仓储接口(依赖倒置原则)
//
// 设计说明:
// 1. ApplyDelta是库存变更的唯一入口,实现必须保证:
//    - 按book_id加行锁(SELECT FOR UPDATE)串行化并发变更
//    - 记录不存在时在同一事务内惰性创建数量0的记录
//    - 记录更新与历史追加在同一事务提交,任何一步失败整体回滚
// 2. 非负校验由StockRecord.Apply完成,仓储只负责事务与持久化
type Repository interface {
	// ApplyDelta 在单个事务内应用一次带符号变更并追加历史
	ApplyDelta(ctx context.Context, bookID uint, delta int) (*StockRecord, *HistoryEntry, error)

	// GetByBookID 查询图书的库存记录(不存在返回ErrStockRecordNotFound)
	GetByBookID(ctx context.Context, bookID uint) (*StockRecord, error)
}

// HistoryFilter 历史检索条件(零值字段表示不过滤)
type HistoryFilter struct {
	// BookID 按图书过滤(0表示全部图书)
	BookID uint

	// Start 起始时间(含),零值表示不限
	Start time.Time

	// End 结束时间(含),零值表示不限
	End time.Time
}

// HistoryRepository 库存历史仓储接口
//
// 历史条目只通过Repository.ApplyDelta写入,此接口只读
type HistoryRepository interface {
	// ListByBookID 查询某本图书的全部历史,时间倒序,同一时间按ID倒序
	ListByBookID(ctx context.Context, bookID uint) ([]*HistoryEntry, error)

	// Search 按条件检索历史,排序同ListByBookID,无匹配返回空列表
	Search(ctx context.Context, filter HistoryFilter) ([]*HistoryEntry, error)
}
