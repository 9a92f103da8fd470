package stock

import "time"

// StockRecord 库存记录(领域模型)
//
// 设计说明:
// 1. 每本图书至多一条记录(book_id唯一),首次库存操作时惰性创建,
//    初始数量为0,之后只原地更新,永不删除
// 2. Quantity任何时刻不允许为负,扣减前校验,校验失败不落库
// 3. UpdatedAt与当次变更产生的HistoryEntry.Timestamp取同一个值,
//    保证按历史回放能对齐到记录的最后修改时间
type StockRecord struct {
	// 图书ID(唯一键)
	BookID uint

	// 当前数量
	Quantity int

	// 最后修改时间
	UpdatedAt time.Time

	CreatedAt time.Time
}

// NewStockRecord 创建初始库存记录(数量0)
func NewStockRecord(bookID uint, now time.Time) *StockRecord {
	return &StockRecord{
		BookID:    bookID,
		Quantity:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply 对库存记录应用一次带符号的变更
//
// 核心不变量在这里守住:
// - 变更后数量不允许为负,否则返回ErrInsufficientQuantity且记录保持原样
// - 成功时记录的UpdatedAt与返回的HistoryEntry.Timestamp是同一个时间值
//
// 仓储实现必须在同一个数据库事务里保存记录并追加返回的历史条目,
// 两者只提交其一会破坏对账不变量(数量==历史带符号数量之和)。
func (r *StockRecord) Apply(delta int, now time.Time) (*HistoryEntry, error) {
	candidate := r.Quantity + delta
	if candidate < 0 {
		return nil, ErrInsufficientQuantity
	}

	r.Quantity = candidate
	r.UpdatedAt = now

	return &HistoryEntry{
		BookID:         r.BookID,
		SignedQuantity: delta,
		Timestamp:      now,
	}, nil
}

// HistoryEntry 库存变更历史(领域模型)
//
// 设计说明:
// 1. 只增不改(Append-Only),记录每次变更的带符号数量
// 2. Timestamp取自当次变更后StockRecord的UpdatedAt
// 3. 展示顺序为时间倒序,时间相同时按插入顺序(自增ID)倒序
type HistoryEntry struct {
	// 主键ID
	ID uint

	// 图书ID
	BookID uint

	// 带符号的变更数量(正数=入库,负数=出库)
	SignedQuantity int

	// 变更时间(等于当次变更后StockRecord.UpdatedAt)
	Timestamp time.Time
}
