package repository

import "github.com/cafevaldore/tienda-api/internal/domain/entity"

// ContactMessageRepository define el puerto para mensajes del formulario de contacto.
type ContactMessageRepository interface {
	Create(msg *entity.ContactMessage) error
	List() ([]*entity.ContactMessage, error)
	MarkRead(id string) error
}
