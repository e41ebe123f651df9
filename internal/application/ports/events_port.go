package ports

import (
	"context"

	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
)

// MovementPublisher publica los movimientos de stock ya confirmados (después del Commit).
// Un fallo de publicación no deshace la transacción: el caller solo lo registra.
type MovementPublisher interface {
	PublishMovements(ctx context.Context, movements []*entity.StockMovement) error
}

// NopPublisher descarta los eventos (Kafka deshabilitado).
type NopPublisher struct{}

func (NopPublisher) PublishMovements(context.Context, []*entity.StockMovement) error { return nil }
