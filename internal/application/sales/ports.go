package sales

import (
	"context"

	"github.com/jhoicas/ordenes-inventario/internal/application/inventory"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
)

// StockLedger lo que ventas necesita del libro de stock. Implementado por *inventory.StockLedger.
type StockLedger interface {
	EntryInTx(ctx context.Context, store repository.Store, in inventory.EntryInput) (*inventory.MovementResult, error)
	ExitInTx(ctx context.Context, store repository.Store, in inventory.ExitInput) (*inventory.MovementResult, error)
	Publish(ctx context.Context, movements []*entity.StockMovement)
}
