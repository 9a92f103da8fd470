package event

import (
	"context"

	appstock "github.com/xiebiao/bookdepot/internal/application/stock"
	"github.com/xiebiao/bookdepot/pkg/mq"
)

// 路由键:下游按 stock.* 订阅全部库存事件
const routingKeyStockChanged = "stock.changed"

// stockPublisher 库存事件发布实现(RabbitMQ)
// 设计说明:实现应用层的EventPublisher接口,把领域事件
// 序列化后发到topic交换机,发布失败由调用方记日志(尽力而为)
type stockPublisher struct {
	publisher *mq.Publisher
}

// NewStockPublisher 创建库存事件发布器
func NewStockPublisher(publisher *mq.Publisher) appstock.EventPublisher {
	return &stockPublisher{publisher: publisher}
}

// PublishStockChanged 发布库存变更事件
func (p *stockPublisher) PublishStockChanged(ctx context.Context, event appstock.StockChangedEvent) error {
	return p.publisher.Publish(ctx, routingKeyStockChanged, event)
}
