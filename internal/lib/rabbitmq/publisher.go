// Package rabbitmq публикует доменные события демо-приложения в RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

// Channel часть amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// PublishMessage сериализует message в JSON и публикует его.
func PublishMessage(ch Channel, exchange string, routingKey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Notifier публикует события о переходе пользователя на премиум.
type Notifier struct {
	ch         Channel
	exchange   string
	routingKey string
}

// NewNotifier создает Notifier поверх открытого канала.
func NewNotifier(ch Channel, exchange, routingKey string) *Notifier {
	return &Notifier{ch: ch, exchange: exchange, routingKey: routingKey}
}

// PremiumActivated публикует событие об активации премиума.
func (n *Notifier) PremiumActivated(ctx context.Context, event models.PremiumEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return PublishMessage(n.ch, n.exchange, n.routingKey, event)
}
