package ports

import (
	"context"

	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando un Store atado a esa transacción.
// Si fn retorna error se hace Rollback; si no, Commit. Nada se aplica a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(store repository.Store) error) error
}
