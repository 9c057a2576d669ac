package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

// UseCase mensajes del formulario de contacto público y su bandeja admin.
type UseCase struct {
	repo repository.ContactMessageRepository
}

// NewUseCase construye el caso de uso de contacto.
func NewUseCase(repo repository.ContactMessageRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Submit guarda un mensaje del formulario de contacto.
func (uc *UseCase) Submit(in dto.ContactMessageRequest) (*dto.ContactMessageResponse, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, domain.ErrInvalidInput
	}
	msg := &entity.ContactMessage{
		ID:      uuid.New().String(),
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Date:    time.Now(),
	}
	if err := uc.repo.Create(msg); err != nil {
		return nil, err
	}
	return toResponse(msg), nil
}

// List devuelve la bandeja de mensajes de contacto (admin), más recientes primero.
func (uc *UseCase) List() ([]dto.ContactMessageResponse, error) {
	msgs, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, *toResponse(m))
	}
	return out, nil
}

// MarkRead marca un mensaje de contacto como leído.
func (uc *UseCase) MarkRead(id string) error {
	return uc.repo.MarkRead(id)
}

func toResponse(m *entity.ContactMessage) *dto.ContactMessageResponse {
	return &dto.ContactMessageResponse{
		ID:      m.ID,
		Name:    m.Name,
		Email:   m.Email,
		Message: m.Message,
		Date:    m.Date,
		Read:    m.Read,
	}
}
