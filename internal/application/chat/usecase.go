package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
	"github.com/cafevaldore/tienda-api/pkg/logger"
)

// EventPublisher publica los mensajes nuevos para los suscriptores en tiempo
// real (panel admin y cliente conectado).
type EventPublisher interface {
	PublishMessageSent(ctx context.Context, msg *entity.Message) error
}

// UseCase chat cliente-tienda: una conversación por cliente, creada de forma
// diferida con el primer mensaje, y marcado de leídos por remitente.
type UseCase struct {
	convRepo  repository.ConversationRepository
	msgRepo   repository.MessageRepository
	userRepo  repository.UserRepository
	publisher EventPublisher
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de chat.
func NewUseCase(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *UseCase {
	return &UseCase{convRepo: convRepo, msgRepo: msgRepo, userRepo: userRepo, publisher: publisher, log: log}
}

// SendFromCustomer envía un mensaje del cliente. Si el cliente todavía no
// tiene conversación se crea en ese momento con los datos de su cuenta.
func (uc *UseCase) SendFromCustomer(ctx context.Context, customerID string, in dto.SendMessageRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.ErrInvalidInput
	}

	conv, err := uc.convRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		user, err := uc.userRepo.GetByID(customerID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		conv = &entity.Conversation{
			ID:            uuid.New().String(),
			CustomerID:    customerID,
			CustomerName:  user.Name,
			CustomerEmail: user.Email,
			Status:        "activa",
			CreatedAt:     time.Now(),
		}
		if err := uc.convRepo.Create(conv); err != nil {
			return nil, err
		}
	}
	return uc.send(ctx, conv, content, entity.SenderCustomer)
}

// SendFromAdmin envía una respuesta del admin en una conversación existente.
func (uc *UseCase) SendFromAdmin(ctx context.Context, conversationID string, in dto.SendMessageRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.ErrInvalidInput
	}
	conv, err := uc.convRepo.GetByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.send(ctx, conv, content, entity.SenderAdmin)
}

func (uc *UseCase) send(ctx context.Context, conv *entity.Conversation, content, sender string) (*dto.MessageResponse, error) {
	msg := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Content:        content,
		Sender:         sender,
		Date:           time.Now(),
	}
	if err := uc.msgRepo.Create(msg); err != nil {
		return nil, err
	}
	if err := uc.convRepo.Touch(conv.ID, content); err != nil {
		return nil, err
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishMessageSent(ctx, msg); err != nil {
			uc.log.Warn().Err(err).Str("conversacion_id", conv.ID).Msg("publicar mensaje de chat")
		}
	}
	return toMessageResponse(msg), nil
}

// CustomerMessages devuelve los mensajes del hilo del cliente en orden
// cronológico y marca como leídas las respuestas del admin.
func (uc *UseCase) CustomerMessages(customerID string) ([]dto.MessageResponse, error) {
	conv, err := uc.convRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return []dto.MessageResponse{}, nil
	}
	if err := uc.msgRepo.MarkRead(conv.ID, entity.SenderAdmin); err != nil {
		return nil, err
	}
	return uc.listMessages(conv.ID)
}

// ConversationMessages devuelve los mensajes de una conversación para el panel
// admin y marca como leídos los del cliente.
func (uc *UseCase) ConversationMessages(conversationID string) ([]dto.MessageResponse, error) {
	conv, err := uc.convRepo.GetByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.msgRepo.MarkRead(conversationID, entity.SenderCustomer); err != nil {
		return nil, err
	}
	return uc.listMessages(conversationID)
}

func (uc *UseCase) listMessages(conversationID string) ([]dto.MessageResponse, error) {
	msgs, err := uc.msgRepo.ListByConversation(conversationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, *toMessageResponse(m))
	}
	return out, nil
}

// Conversations lista las conversaciones para el panel admin con el contador
// de mensajes del cliente sin leer.
func (uc *UseCase) Conversations() ([]dto.ConversationResponse, error) {
	convs, err := uc.convRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConversationResponse, 0, len(convs))
	for _, conv := range convs {
		unread, err := uc.msgRepo.CountUnread(conv.ID, entity.SenderCustomer)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.ConversationResponse{
			ID:            conv.ID,
			CustomerID:    conv.CustomerID,
			CustomerName:  conv.CustomerName,
			CustomerEmail: conv.CustomerEmail,
			Status:        conv.Status,
			LastMessage:   conv.LastMessage,
			LastMessageAt: conv.LastMessageAt,
			Unread:        unread,
		})
	}
	return out, nil
}

// UnreadCount cantidad de respuestas del admin sin leer del cliente, para el
// badge del widget de chat.
func (uc *UseCase) UnreadCount(customerID string) (int, error) {
	conv, err := uc.convRepo.GetByCustomer(customerID)
	if err != nil {
		return 0, err
	}
	if conv == nil {
		return 0, nil
	}
	return uc.msgRepo.CountUnread(conv.ID, entity.SenderAdmin)
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Content:        m.Content,
		Sender:         m.Sender,
		Date:           m.Date,
		Read:           m.Read,
	}
}
