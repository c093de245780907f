package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"resto-pos/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchange = "pos_events"

// Publisher pushes order and stock events onto a RabbitMQ topic exchange so
// kitchen displays and back-office screens can subscribe instead of polling.
// Publish failures are logged and dropped: notifications are best-effort and
// must never fail the sale that triggered them.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *Publisher) publish(key string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notify: marshal %s event: %v", key, err)
		return
	}
	err = p.ch.PublishWithContext(context.Background(), exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		log.Printf("notify: publish %s event: %v", key, err)
	}
}

type orderEvent struct {
	OrderID     uint    `json:"order_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

type lowStockEvent struct {
	IngredientID   uint    `json:"ingredient_id"`
	Name           string  `json:"name"`
	QuantityOnHand float64 `json:"quantity_on_hand"`
	MinimumLevel   float64 `json:"minimum_level"`
	Unit           string  `json:"unit"`
}

func (p *Publisher) OrderPlaced(order *models.KitchenOrder) {
	p.publish("order.placed", orderEvent{OrderID: order.ID, Status: order.Status, TotalAmount: order.TotalAmount})
}

func (p *Publisher) OrderReady(order *models.KitchenOrder) {
	p.publish("order.ready", orderEvent{OrderID: order.ID, Status: order.Status, TotalAmount: order.TotalAmount})
}

func (p *Publisher) LowStock(ing models.Ingredient) {
	p.publish("stock.low", lowStockEvent{
		IngredientID:   ing.ID,
		Name:           ing.Name,
		QuantityOnHand: ing.QuantityOnHand,
		MinimumLevel:   ing.MinimumLevel,
		Unit:           ing.Unit,
	})
}
