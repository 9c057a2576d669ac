// Package events implementa el bus de eventos interno de la aplicación sobre
// Watermill con transporte en memoria (gochannel). Los suscriptores se
// cancelan con el contexto del proceso.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/shopspring/decimal"

	"github.com/cafevaldore/tienda-api/internal/domain/entity"
)

// Topics del bus.
const (
	TopicOrderCreated = "pedidos.creados"
	TopicChatMessage  = "chat.mensajes"
)

// Bus publica y entrega eventos de dominio dentro del proceso.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus construye el bus en memoria.
func NewBus() *Bus {
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewStdLogger(false, false))
	return &Bus{pubsub: pubsub}
}

// Close cierra el bus y los canales de los suscriptores.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// OrderCreatedEvent payload del evento de pedido confirmado. Lleva el pedido
// completo para que el suscriptor pueda aplicar el descuento de stock sin
// releer la base.
type OrderCreatedEvent struct {
	ID        string           `json:"id"`
	UserID    string           `json:"usuario_id"`
	Items     []OrderItemEvent `json:"items"`
	Total     decimal.Decimal  `json:"total"`
	Status    string           `json:"estado"`
	CreatedAt time.Time        `json:"fecha"`
}

// OrderItemEvent una línea del pedido en el evento.
type OrderItemEvent struct {
	ProductName string          `json:"producto"`
	UnitPrice   decimal.Decimal `json:"precio"`
	Quantity    int             `json:"cantidad"`
}

// Order reconstruye la entidad de pedido desde el evento.
func (e OrderCreatedEvent) Order() *entity.Order {
	items := make([]entity.OrderItem, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, entity.OrderItem{
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return &entity.Order{
		ID:        e.ID,
		UserID:    e.UserID,
		Items:     items,
		Total:     e.Total,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
	}
}

// PublishOrderCreated publica el evento de pedido confirmado.
func (b *Bus) PublishOrderCreated(ctx context.Context, order *entity.Order) error {
	items := make([]OrderItemEvent, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderItemEvent{ProductName: it.ProductName, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return b.publish(TopicOrderCreated, OrderCreatedEvent{
		ID:        order.ID,
		UserID:    order.UserID,
		Items:     items,
		Total:     order.Total,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	})
}

// ChatMessageEvent payload de un mensaje de chat nuevo.
type ChatMessageEvent struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversacion_id"`
	Content        string    `json:"texto"`
	Sender         string    `json:"remitente"`
	Date           time.Time `json:"fecha"`
}

// PublishMessageSent publica un mensaje de chat nuevo.
func (b *Bus) PublishMessageSent(ctx context.Context, msg *entity.Message) error {
	return b.publish(TopicChatMessage, ChatMessageEvent{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Content:        msg.Content,
		Sender:         msg.Sender,
		Date:           msg.Date,
	})
}

func (b *Bus) publish(topic string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal evento %s: %w", topic, err)
	}
	return b.pubsub.Publish(topic, message.NewMessage(watermill.NewUUID(), raw))
}

// SubscribeOrderCreated suscribe al topic de pedidos confirmados. El canal se
// cierra cuando el contexto se cancela.
func (b *Bus) SubscribeOrderCreated(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, TopicOrderCreated)
}

// SubscribeChatMessages suscribe al topic de mensajes de chat.
func (b *Bus) SubscribeChatMessages(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, TopicChatMessage)
}
