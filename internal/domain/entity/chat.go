package entity

import "time"

// Remitentes de un mensaje de chat.
const (
	SenderCustomer = "cliente"
	SenderAdmin    = "admin"
)

// Conversation es el hilo de chat de un cliente con la tienda
// (conversaciones_clientes, una por cliente).
type Conversation struct {
	ID            string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	Status        string // "activa"
	CreatedAt     time.Time
	LastMessage   string
	LastMessageAt time.Time
}

// Message un mensaje dentro de una conversación.
type Message struct {
	ID             string
	ConversationID string
	Content        string
	Sender         string // cliente | admin
	Date           time.Time
	Read           bool
}
