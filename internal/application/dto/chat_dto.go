package dto

import "time"

// SendMessageRequest envía un mensaje en una conversación. Para el cliente la
// conversación se crea de forma diferida en el primer mensaje.
type SendMessageRequest struct {
	Content string `json:"texto" validate:"required,min=1"`
}

// MessageResponse un mensaje de chat.
type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversacion_id"`
	Content        string    `json:"texto"`
	Sender         string    `json:"remitente"`
	Date           time.Time `json:"fecha"`
	Read           bool      `json:"leido"`
}

// ConversationResponse una conversación con su contador de no leídos.
type ConversationResponse struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"cliente_id"`
	CustomerName  string    `json:"cliente_nombre"`
	CustomerEmail string    `json:"cliente_email"`
	Status        string    `json:"estado"`
	LastMessage   string    `json:"ultimo_mensaje"`
	LastMessageAt time.Time `json:"fecha_ultimo_mensaje"`
	Unread        int       `json:"mensajes_sin_leer"`
}

// ContactMessageRequest mensaje del formulario de contacto público.
type ContactMessageRequest struct {
	Name    string `json:"nombre" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"mensaje" validate:"required"`
}

// ContactMessageResponse salida de un mensaje de contacto (admin).
type ContactMessageResponse struct {
	ID      string    `json:"id"`
	Name    string    `json:"nombre"`
	Email   string    `json:"email"`
	Message string    `json:"mensaje"`
	Date    time.Time `json:"fecha"`
	Read    bool      `json:"leido"`
}
