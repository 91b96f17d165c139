// Package messaging 订单事件的 Kafka 发布实现
package messaging

import (
	"context"

	"github.com/wyfcoding/marketplace/internal/order/domain"
	"github.com/wyfcoding/marketplace/pkg/mq"
)

// KafkaPublisher 将订单事件广播到 Kafka
// 发后即忘：调用方只记录失败，不重试
type KafkaPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaPublisher 创建 Kafka 事件发布者
func NewKafkaPublisher(producer *mq.KafkaProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// PublishOrderPlaced 发布订单落账事件，按卖家 ID 分区
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error {
	return p.producer.SendMessage(ctx, p.topic, event.SellerID, event)
}

// NopPublisher 未配置 Kafka 时的空实现
type NopPublisher struct{}

// PublishOrderPlaced 丢弃事件
func (NopPublisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error {
	return nil
}
