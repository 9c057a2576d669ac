package postgres

import (
	"context"
	"fmt"

	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo implementación de MessageRepository sobre PostgreSQL.
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

// Create persiste un mensaje de chat.
func (r *MessageRepo) Create(msg *entity.Message) error {
	query := `
		INSERT INTO mensajes (id, conversacion_id, texto, remitente, fecha, leido)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		msg.ID, msg.ConversationID, msg.Content, msg.Sender, msg.Date, msg.Read,
	)
	if err != nil {
		return fmt.Errorf("insert mensaje: %w", err)
	}
	return nil
}

// ListByConversation devuelve los mensajes en orden cronológico ascendente.
func (r *MessageRepo) ListByConversation(conversationID string) ([]*entity.Message, error) {
	query := `
		SELECT id, conversacion_id, texto, remitente, fecha, leido
		FROM mensajes WHERE conversacion_id = $1 ORDER BY fecha ASC`
	rows, err := r.q.Query(context.Background(), query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list mensajes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Content, &m.Sender, &m.Date, &m.Read); err != nil {
			return nil, fmt.Errorf("scan mensaje: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// MarkRead marca como leídos los mensajes del remitente indicado.
func (r *MessageRepo) MarkRead(conversationID, sender string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE mensajes SET leido = true WHERE conversacion_id = $1 AND remitente = $2 AND NOT leido`,
		conversationID, sender)
	if err != nil {
		return fmt.Errorf("marcar leidos: %w", err)
	}
	return nil
}

// CountUnread cuenta los mensajes sin leer del remitente indicado.
func (r *MessageRepo) CountUnread(conversationID, sender string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM mensajes WHERE conversacion_id = $1 AND remitente = $2 AND NOT leido`,
		conversationID, sender).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("contar sin leer: %w", err)
	}
	return n, nil
}
