package stock

import (
	"context"
	"time"
)

// StockChangedEvent 库存变更事件
// 发布到消息队列供下游(补货提醒、报表)消费
type StockChangedEvent struct {
	BookID    uint      `json:"book_id"`
	Barcode   string    `json:"barcode"`
	Delta     int       `json:"delta"`    // 带符号的变更数量
	Quantity  int       `json:"quantity"` // 变更后数量
	Source    string    `json:"source"`   // 变更来源:add/remove/set/bulk
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher 库存事件发布接口
// 设计说明:事件发布是尽力而为(best-effort),发布失败只记日志,
// 不影响已提交的库存变更
type EventPublisher interface {
	PublishStockChanged(ctx context.Context, event StockChangedEvent) error
}

// NopEventPublisher 空实现,消息队列未启用时使用
type NopEventPublisher struct{}

func (NopEventPublisher) PublishStockChanged(ctx context.Context, event StockChangedEvent) error {
	return nil
}
