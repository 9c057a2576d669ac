package repository

// DeductionRepository define el puerto para la marca de idempotencia del motor
// de descuento: a lo más un descuento aplicado por pedido.
type DeductionRepository interface {
	// TryClaim intenta registrar el pedido como descontado. Devuelve false si
	// otro camino de activación ya lo reclamó (INSERT .. ON CONFLICT DO NOTHING).
	TryClaim(orderID string) (bool, error)
	Exists(orderID string) (bool, error)
}
