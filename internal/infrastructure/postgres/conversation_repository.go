package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

var _ repository.ConversationRepository = (*ConversationRepo)(nil)

// ConversationRepo implementación de ConversationRepository sobre PostgreSQL.
type ConversationRepo struct {
	q Querier
}

// NewConversationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConversationRepository(q Querier) *ConversationRepo {
	return &ConversationRepo{q: q}
}

// Create persiste una conversación nueva. Hay a lo más una por cliente.
func (r *ConversationRepo) Create(conv *entity.Conversation) error {
	query := `
		INSERT INTO conversaciones_clientes (id, cliente_id, cliente_nombre, cliente_email,
			estado, created_at, ultimo_mensaje, fecha_ultimo_mensaje)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		conv.ID, conv.CustomerID, conv.CustomerName, conv.CustomerEmail,
		conv.Status, conv.CreatedAt, conv.LastMessage, conv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert conversacion: %w", err)
	}
	return nil
}

const conversationColumns = `id, cliente_id, cliente_nombre, cliente_email,
	estado, created_at, ultimo_mensaje, fecha_ultimo_mensaje`

func scanConversation(row pgx.Row) (*entity.Conversation, error) {
	var c entity.Conversation
	err := row.Scan(&c.ID, &c.CustomerID, &c.CustomerName, &c.CustomerEmail,
		&c.Status, &c.CreatedAt, &c.LastMessage, &c.LastMessageAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByCustomer obtiene la conversación de un cliente, nil si todavía no existe.
func (r *ConversationRepo) GetByCustomer(customerID string) (*entity.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversaciones_clientes WHERE cliente_id = $1`
	c, err := scanConversation(r.q.QueryRow(context.Background(), query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversacion por cliente: %w", err)
	}
	return c, nil
}

// GetByID obtiene una conversación por ID.
func (r *ConversationRepo) GetByID(id string) (*entity.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversaciones_clientes WHERE id = $1`
	c, err := scanConversation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversacion: %w", err)
	}
	return c, nil
}

// List devuelve las conversaciones ordenadas por actividad reciente.
func (r *ConversationRepo) List() ([]*entity.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversaciones_clientes ORDER BY fecha_ultimo_mensaje DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list conversaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversacion: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Touch actualiza el último mensaje y su fecha.
func (r *ConversationRepo) Touch(id, lastMessage string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE conversaciones_clientes SET ultimo_mensaje = $2, fecha_ultimo_mensaje = now() WHERE id = $1`,
		id, lastMessage)
	if err != nil {
		return fmt.Errorf("touch conversacion: %w", err)
	}
	return nil
}
