package reception

import (
	"context"

	"github.com/jhoicas/ordenes-inventario/internal/application/inventory"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
)

// StockLedger entradas de stock dentro de la transacción de la recepción.
type StockLedger interface {
	EntryInTx(ctx context.Context, store repository.Store, in inventory.EntryInput) (*inventory.MovementResult, error)
	Publish(ctx context.Context, movements []*entity.StockMovement)
}
