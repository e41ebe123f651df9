package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	domaininv "github.com/jhoicas/ordenes-inventario/internal/domain/inventory"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
	"github.com/jhoicas/ordenes-inventario/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/ordenes-inventario/internal/application/inventory")

// StockLedger es el único camino autorizado para cambiar el stock de un producto.
// Cada cambio queda registrado como un StockMovement inmutable.
type StockLedger struct {
	txRunner  ports.TxRunner
	store     repository.Store
	clock     ports.Clock
	publisher ports.MovementPublisher
	log       *logger.Logger
}

// NewStockLedger construye el libro de stock. store se usa para lecturas fuera de transacción.
func NewStockLedger(
	txRunner ports.TxRunner,
	store repository.Store,
	clock ports.Clock,
	publisher ports.MovementPublisher,
	log *logger.Logger,
) *StockLedger {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	return &StockLedger{
		txRunner:  txRunner,
		store:     store,
		clock:     clock,
		publisher: publisher,
		log:       log.Component("stock_ledger"),
	}
}

// EntryInput datos de una entrada. Date nil = ahora. Si llegan Lot y Serial, prevalece Lot.
type EntryInput struct {
	ProductID   string
	Quantity    decimal.Decimal
	Reason      string
	Reference   string
	Date        *time.Time
	Lot         string
	Serial      string
	ExpiryDate  *time.Time
	ReceptionID *string
	LocationID  *string
}

// ExitInput datos de una salida. Date nil = ahora.
type ExitInput struct {
	ProductID string
	Quantity  decimal.Decimal
	Reason    string
	Reference string
	Date      *time.Time
}

// MovementResult stock antes y después del movimiento.
type MovementResult struct {
	Movement    *entity.StockMovement
	OldQuantity decimal.Decimal
	NewQuantity decimal.Decimal
}

// RegisterEntry registra una entrada en su propia transacción (ajuste manual).
func (l *StockLedger) RegisterEntry(ctx context.Context, in EntryInput) (*MovementResult, error) {
	ctx, span := tracer.Start(ctx, "ledger.register_entry")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", in.ProductID))

	var res *MovementResult
	err := l.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		res, err = l.EntryInTx(ctx, store, in)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	l.Publish(ctx, []*entity.StockMovement{res.Movement})
	return res, nil
}

// RegisterExit registra una salida en su propia transacción (ajuste manual).
func (l *StockLedger) RegisterExit(ctx context.Context, in ExitInput) (*MovementResult, error) {
	ctx, span := tracer.Start(ctx, "ledger.register_exit")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", in.ProductID))

	var res *MovementResult
	err := l.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		res, err = l.ExitInTx(ctx, store, in)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	l.Publish(ctx, []*entity.StockMovement{res.Movement})
	return res, nil
}

// EntryInTx suma stock usando el Store de la transacción del caller.
// Falla con ErrInvalidQuantity si Quantity <= 0 y con ErrProductNotFound si el producto no existe.
func (l *StockLedger) EntryInTx(ctx context.Context, store repository.Store, in EntryInput) (*MovementResult, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.NewError(domain.ErrInvalidQuantity, in.ProductID, "la entrada debe ser mayor que cero (recibido %s)", in.Quantity)
	}
	product, err := l.loadProduct(ctx, store, in.ProductID)
	if err != nil {
		return nil, err
	}
	newQty, err := domaininv.ApplyEntry(product.ID, product.Quantity, in.Quantity)
	if err != nil {
		return nil, err
	}
	now := l.clock.Now()
	if err := store.Products().UpdateQuantity(ctx, product.ID, newQty, now); err != nil {
		return nil, err
	}

	lot, serial := domaininv.ResolveTrace(in.Lot, in.Serial)
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Kind:        entity.MovementEntry,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Reference:   in.Reference,
		Date:        dateOr(in.Date, now),
		Lot:         lot,
		Serial:      serial,
		ExpiryDate:  in.ExpiryDate,
		ReceptionID: in.ReceptionID,
		LocationID:  in.LocationID,
		CreatedAt:   now,
	}
	if err := store.Movements().Create(ctx, mov); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mov, OldQuantity: product.Quantity, NewQuantity: newQty}, nil
}

// ExitInTx resta stock usando el Store de la transacción del caller.
// Falla con ErrInsufficientStock si Quantity supera el stock disponible; el stock queda intacto.
func (l *StockLedger) ExitInTx(ctx context.Context, store repository.Store, in ExitInput) (*MovementResult, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.NewError(domain.ErrInvalidQuantity, in.ProductID, "la salida debe ser mayor que cero (recibido %s)", in.Quantity)
	}
	product, err := l.loadProduct(ctx, store, in.ProductID)
	if err != nil {
		return nil, err
	}
	newQty, err := domaininv.ApplyExit(product.ID, product.Quantity, in.Quantity)
	if err != nil {
		return nil, err
	}
	now := l.clock.Now()
	if err := store.Products().UpdateQuantity(ctx, product.ID, newQty, now); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Kind:      entity.MovementExit,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		Date:      dateOr(in.Date, now),
		CreatedAt: now,
	}
	if err := store.Movements().Create(ctx, mov); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mov, OldQuantity: product.Quantity, NewQuantity: newQty}, nil
}

// RevokeEntryInTx borra una entrada y descuenta de stock como máximo upTo de su cantidad.
// upTo es lo que el origen del movimiento aún mantiene en inventario: si ya se compensó con
// una salida (p. ej. al anular la orden), el movimiento se borra sin volver a descontar.
// Solo aplica a entradas; falla con ErrInsufficientStock si lo que se descuenta ya salió.
func (l *StockLedger) RevokeEntryInTx(ctx context.Context, store repository.Store, movementID string, upTo decimal.Decimal) (*MovementResult, error) {
	mov, err := store.Movements().GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.NewError(domain.ErrNotFound, movementID, "movimiento no encontrado")
	}
	if mov.Kind != entity.MovementEntry {
		return nil, domain.NewError(domain.ErrInvalidInput, movementID, "solo se pueden revocar entradas")
	}
	product, err := l.loadProduct(ctx, store, mov.ProductID)
	if err != nil {
		return nil, err
	}
	revoked := decimal.Max(decimal.Zero, decimal.Min(mov.Quantity, upTo))
	newQty := product.Quantity
	if revoked.GreaterThan(decimal.Zero) {
		newQty, err = domaininv.ApplyExit(product.ID, product.Quantity, revoked)
		if err != nil {
			return nil, err
		}
		if err := store.Products().UpdateQuantity(ctx, product.ID, newQty, l.clock.Now()); err != nil {
			return nil, err
		}
	}
	if err := store.Movements().Delete(ctx, mov.ID); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mov, OldQuantity: product.Quantity, NewQuantity: newQty}, nil
}

// GetStock devuelve el stock disponible actual del producto.
func (l *StockLedger) GetStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	product, err := l.loadProduct(ctx, l.store, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return product.Quantity, nil
}

// ListMovements historial de movimientos de un producto, más recientes primero.
func (l *StockLedger) ListMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if _, err := l.loadProduct(ctx, l.store, productID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return l.store.Movements().ListByProduct(ctx, productID, from, to, limit, offset)
}

// Publish envía los movimientos confirmados al publicador. Los errores solo se registran.
func (l *StockLedger) Publish(ctx context.Context, movements []*entity.StockMovement) {
	if len(movements) == 0 {
		return
	}
	if err := l.publisher.PublishMovements(ctx, movements); err != nil {
		l.log.Warn().Err(err).Int("movements", len(movements)).Msg("publicación de movimientos falló")
	}
}

func (l *StockLedger) loadProduct(ctx context.Context, store repository.Store, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.NewError(domain.ErrProductNotFound, productID, "producto requerido")
	}
	product, err := store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewError(domain.ErrProductNotFound, productID, "el producto no existe")
	}
	return product, nil
}

func dateOr(t *time.Time, def time.Time) time.Time {
	if t != nil {
		return *t
	}
	return def
}
