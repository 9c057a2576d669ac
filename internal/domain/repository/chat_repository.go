package repository

import "github.com/cafevaldore/tienda-api/internal/domain/entity"

// ConversationRepository define el puerto de persistencia para conversaciones.
type ConversationRepository interface {
	Create(conv *entity.Conversation) error
	GetByCustomer(customerID string) (*entity.Conversation, error)
	GetByID(id string) (*entity.Conversation, error)
	List() ([]*entity.Conversation, error)
	Touch(id, lastMessage string) error
}

// MessageRepository define el puerto de persistencia para mensajes de chat.
type MessageRepository interface {
	Create(msg *entity.Message) error
	// ListByConversation devuelve los mensajes en orden ascendente por fecha.
	ListByConversation(conversationID string) ([]*entity.Message, error)
	// MarkRead marca como leídos los mensajes del remitente indicado.
	MarkRead(conversationID, sender string) error
	CountUnread(conversationID, sender string) (int, error)
}
