package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL. Las líneas del
// pedido se guardan como JSONB en la misma fila: el pedido es un documento
// inmutable una vez confirmado, solo cambia su estado.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// orderItemRow forma JSONB de una línea de pedido.
type orderItemRow struct {
	ProductName string          `json:"producto"`
	UnitPrice   decimal.Decimal `json:"precio"`
	Quantity    int             `json:"cantidad"`
}

func itemsToJSON(items []entity.OrderItem) ([]byte, error) {
	rows := make([]orderItemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, orderItemRow{ProductName: it.ProductName, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return json.Marshal(rows)
}

func itemsFromJSON(raw []byte) ([]entity.OrderItem, error) {
	var rows []orderItemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	items := make([]entity.OrderItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, entity.OrderItem{ProductName: r.ProductName, UnitPrice: r.UnitPrice, Quantity: r.Quantity})
	}
	return items, nil
}

// Create persiste un pedido confirmado.
func (r *OrderRepo) Create(order *entity.Order) error {
	items, err := itemsToJSON(order.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		INSERT INTO pedidos (id, usuario_id, cliente_nombre, cliente_telefono, cliente_direccion,
			cliente_ciudad, cliente_email, cliente_notas, items, total, estado, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		order.ID, order.UserID, order.Customer.Name, order.Customer.Phone, order.Customer.Address,
		order.Customer.City, order.Customer.Email, order.Customer.Notes,
		items, order.Total, order.Status, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

const orderColumns = `id, usuario_id, cliente_nombre, cliente_telefono, cliente_direccion,
	cliente_ciudad, cliente_email, cliente_notas, items, total, estado, fecha`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var rawItems []byte
	err := row.Scan(
		&o.ID, &o.UserID, &o.Customer.Name, &o.Customer.Phone, &o.Customer.Address,
		&o.Customer.City, &o.Customer.Email, &o.Customer.Notes,
		&rawItems, &o.Total, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if o.Items, err = itemsFromJSON(rawItems); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return &o, nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM pedidos WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return o, nil
}

// ListByUser lista los pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM pedidos WHERE usuario_id = $1 ORDER BY fecha DESC`
	return r.list(query, userID)
}

// List filtra por estado ("" = todos) y por día (nil = sin filtro de fecha).
func (r *OrderRepo) List(status string, day *time.Time) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM pedidos`
	args := []any{}
	where := ""
	if status != "" {
		where = ` WHERE estado = $1`
		args = append(args, status)
	}
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.Add(24 * time.Hour)
		if where == "" {
			where = fmt.Sprintf(` WHERE fecha >= $%d AND fecha < $%d`, len(args)+1, len(args)+2)
		} else {
			where += fmt.Sprintf(` AND fecha >= $%d AND fecha < $%d`, len(args)+1, len(args)+2)
		}
		args = append(args, start, end)
	}
	return r.list(query+where+` ORDER BY fecha DESC`, args...)
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de un pedido.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE pedidos SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update estado pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
