package postgres

import (
	"context"
	"fmt"

	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

var _ repository.ContactMessageRepository = (*ContactMessageRepo)(nil)

// ContactMessageRepo implementación de ContactMessageRepository sobre PostgreSQL.
type ContactMessageRepo struct {
	q Querier
}

// NewContactMessageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactMessageRepository(q Querier) *ContactMessageRepo {
	return &ContactMessageRepo{q: q}
}

// Create persiste un mensaje del formulario de contacto.
func (r *ContactMessageRepo) Create(msg *entity.ContactMessage) error {
	query := `
		INSERT INTO mensajes_contacto (id, nombre, email, mensaje, fecha, leido)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.Date, msg.Read,
	)
	if err != nil {
		return fmt.Errorf("insert mensaje contacto: %w", err)
	}
	return nil
}

// List devuelve los mensajes de contacto, más recientes primero.
func (r *ContactMessageRepo) List() ([]*entity.ContactMessage, error) {
	query := `
		SELECT id, nombre, email, mensaje, fecha, leido
		FROM mensajes_contacto ORDER BY fecha DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list mensajes contacto: %w", err)
	}
	defer rows.Close()
	var list []*entity.ContactMessage
	for rows.Next() {
		var m entity.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Date, &m.Read); err != nil {
			return nil, fmt.Errorf("scan mensaje contacto: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// MarkRead marca un mensaje de contacto como leído.
func (r *ContactMessageRepo) MarkRead(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE mensajes_contacto SET leido = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marcar leido: %w", err)
	}
	return nil
}
