package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
)

// StockMovementRepository puerto de persistencia de movimientos. No hay Update de cantidades:
// UpdateTrace solo reescribe lote/serie/vencimiento/ubicación.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByReception(ctx context.Context, receptionID string) ([]*entity.StockMovement, error)
	UpdateTrace(ctx context.Context, movement *entity.StockMovement) error
	// DetachReception borra la referencia a la recepción sin borrar los movimientos.
	DetachReception(ctx context.Context, receptionID string) error
	Delete(ctx context.Context, id string) error
}
