package events

import (
	"context"
	"encoding/json"

	"github.com/cafevaldore/tienda-api/internal/application/inventory"
	"github.com/cafevaldore/tienda-api/pkg/logger"
)

// RunOrderDeductionSubscriber consume los eventos de pedido confirmado y
// aplica el descuento de stock. Es el segundo camino de activación del motor:
// si la confirmación síncrona ya lo aplicó, la marca de idempotencia hace que
// esta pasada no tenga efecto. Bloquea hasta que el contexto se cancela.
func RunOrderDeductionSubscriber(ctx context.Context, bus *Bus, deduction *inventory.DeductionUseCase, log *logger.Logger) error {
	messages, err := bus.SubscribeOrderCreated(ctx)
	if err != nil {
		return err
	}
	for msg := range messages {
		var event OrderCreatedEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			log.Error().Err(err).Str("mensaje_id", msg.UUID).Msg("evento de pedido ilegible")
			msg.Ack()
			continue
		}
		if _, err := deduction.DeductFromOrder(ctx, event.Order()); err != nil {
			log.Error().Err(err).Str("pedido_id", event.ID).Msg("descuento desde evento")
		}
		msg.Ack()
	}
	return nil
}
