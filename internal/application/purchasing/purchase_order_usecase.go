package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/application/inventory"
	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
	"github.com/jhoicas/ordenes-inventario/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/ordenes-inventario/internal/application/purchasing")

const defaultCurrency = "CLP"

// PurchaseOrderUseCase ciclo de vida de órdenes de compra: creación, cierre forzado,
// pago, anulación y eliminación con reversión de stock.
type PurchaseOrderUseCase struct {
	txRunner ports.TxRunner
	store    repository.Store
	ledger   StockLedger
	clock    ports.Clock
	log      *logger.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner ports.TxRunner,
	store repository.Store,
	ledger StockLedger,
	clock ports.Clock,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner: txRunner,
		store:    store,
		ledger:   ledger,
		clock:    clock,
		log:      log.Component("purchase_orders"),
	}
}

// Create registra la orden con sus líneas en una sola transacción.
// Status vacío = COMPLETED. Una orden COMPLETED nace recibida y, si apply_to_stock, ingresa
// el stock de cada línea. Cada línea actualiza el vínculo proveedor-producto.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	ctx, span := tracer.Start(ctx, "purchase_orders.create")
	defer span.End()

	status := entity.PurchaseStatusCompleted
	if in.Status != "" {
		st, err := entity.ParsePurchaseStatus(in.Status)
		if err != nil {
			return nil, fail(span, domain.NewError(domain.ErrPurchase, "", "%v", err))
		}
		status = st
	}
	if status != entity.PurchaseStatusPending && status != entity.PurchaseStatusCompleted {
		return nil, fail(span, domain.NewError(domain.ErrPurchase, "", "una orden solo puede crearse PENDING o COMPLETED (recibido %s)", status))
	}
	if len(in.Lines) == 0 {
		return nil, fail(span, domain.NewError(domain.ErrPurchase, "", "la orden debe tener al menos una línea"))
	}
	applyToStock := dto.BoolOr(in.ApplyToStock, true)
	now := uc.clock.Now()
	orderDate := now
	if in.Date != nil {
		orderDate = *in.Date
	}

	order := &entity.PurchaseOrder{
		ID:             uuid.New().String(),
		SupplierID:     in.SupplierID,
		OrderDate:      orderDate,
		Total:          decimal.Zero,
		Status:         status,
		MoveStock:      applyToStock,
		DocumentNumber: in.DocumentNumber,
		DocumentDate:   in.DocumentDate,
		AccountingDate: in.AccountingDate,
		DueDate:        in.DueDate,
		Currency:       in.Currency,
		ExchangeRate:   in.ExchangeRate,
		Discount:       in.Discount,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if order.Currency == "" {
		order.Currency = defaultCurrency
	}
	if order.ExchangeRate.IsZero() {
		order.ExchangeRate = decimal.NewFromInt(1)
	}
	span.SetAttributes(attribute.String("purchase_order.id", order.ID), attribute.String("purchase_order.status", status.String()))

	var movements []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		supplier, err := store.Suppliers().GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.NewError(domain.ErrPurchase, in.SupplierID, "el proveedor no existe")
		}

		products := make(map[string]*entity.Product, len(in.Lines))
		for i, l := range in.Lines {
			if !l.Quantity.GreaterThan(decimal.Zero) {
				return domain.NewError(domain.ErrPurchase, l.ProductID, "línea %d: la cantidad debe ser mayor que cero", i+1)
			}
			if !l.UnitPrice.GreaterThan(decimal.Zero) {
				return domain.NewError(domain.ErrPurchase, l.ProductID, "línea %d: el precio unitario debe ser mayor que cero", i+1)
			}
			p, err := store.Products().GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NewError(domain.ErrPurchase, l.ProductID, "línea %d: el producto no existe", i+1)
			}
			products[p.ID] = p
			order.Total = order.Total.Add(l.Quantity.Mul(l.UnitPrice))
		}

		if err := store.PurchaseOrders().Create(ctx, order); err != nil {
			return err
		}
		for _, l := range in.Lines {
			line := &entity.PurchaseOrderLine{
				ID:               uuid.New().String(),
				OrderID:          order.ID,
				ProductID:        l.ProductID,
				Quantity:         l.Quantity,
				UnitPrice:        l.UnitPrice,
				Subtotal:         l.Quantity.Mul(l.UnitPrice),
				ReceivedQuantity: decimal.Zero,
				StockedQuantity:  decimal.Zero,
			}
			if status == entity.PurchaseStatusCompleted {
				line.ReceivedQuantity = l.Quantity
				if applyToStock {
					res, err := uc.ledger.EntryInTx(ctx, store, inventory.EntryInput{
						ProductID:  l.ProductID,
						Quantity:   l.Quantity,
						Reason:     fmt.Sprintf("Orden de compra %s", order.ID),
						Reference:  order.ID,
						Date:       &orderDate,
						LocationID: products[l.ProductID].LocationID,
					})
					if err != nil {
						return err
					}
					line.StockedQuantity = l.Quantity
					movements = append(movements, res.Movement)
				}
			}
			if err := store.PurchaseOrders().CreateLine(ctx, line); err != nil {
				return err
			}
			order.Lines = append(order.Lines, line)

			if err := store.SupplierProducts().Upsert(ctx, &entity.SupplierProduct{
				SupplierID:       order.SupplierID,
				ProductID:        l.ProductID,
				Price:            l.UnitPrice,
				LastPurchaseDate: &orderDate,
				UpdatedAt:        now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}
	uc.ledger.Publish(ctx, movements)
	uc.log.Info().
		Str("purchase_order_id", order.ID).
		Str("status", order.Status.String()).
		Int("lines", len(order.Lines)).
		Int("movements", len(movements)).
		Msg("orden de compra creada")
	return toPurchaseOrderResponse(order), nil
}

// Cancel anula la orden. Solo si estaba COMPLETED y revertStock, descuenta lo que la orden
// ingresó a inventario. Anular una orden ya anulada no hace nada.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, id string, revertStock bool) (*dto.PurchaseOrderResponse, error) {
	ctx, span := tracer.Start(ctx, "purchase_orders.cancel", trace.WithAttributes(attribute.String("purchase_order.id", id)))
	defer span.End()

	var (
		order     *entity.PurchaseOrder
		movements []*entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		order, err = uc.loadOrder(ctx, store, id)
		if err != nil {
			return err
		}
		if order.Status == entity.PurchaseStatusCancelled {
			return nil
		}
		if !order.Status.CanTransitionTo(entity.PurchaseStatusCancelled) {
			return domain.NewError(domain.ErrPurchase, id, "no se puede anular una orden %s", order.Status)
		}
		if order.Status == entity.PurchaseStatusCompleted && revertStock {
			movements, err = uc.revertStocked(ctx, store, order, "Anulación orden de compra")
			if err != nil {
				return err
			}
		}
		order.Status = entity.PurchaseStatusCancelled
		order.UpdatedAt = uc.clock.Now()
		return store.PurchaseOrders().Update(ctx, order)
	})
	if err != nil {
		return nil, fail(span, err)
	}
	uc.ledger.Publish(ctx, movements)
	uc.log.Info().Str("purchase_order_id", id).Bool("revert_stock", revertStock).Int("movements", len(movements)).Msg("orden de compra anulada")
	return toPurchaseOrderResponse(order), nil
}

// Delete elimina físicamente la orden, sus líneas y sus recepciones. Con revertStock revoca
// las entradas de cada recepción (hasta lo que cada línea aún mantiene en stock) y, si la
// orden estaba COMPLETED, descuenta el resto de lo ingresado. Sin revertStock los movimientos
// se conservan a propósito, desligados de la recepción, para que el stock siga cuadrando con
// entradas menos salidas. Eliminar una orden inexistente no hace nada.
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, id string, revertStock bool) error {
	ctx, span := tracer.Start(ctx, "purchase_orders.delete", trace.WithAttributes(attribute.String("purchase_order.id", id)))
	defer span.End()

	var (
		found     bool
		movements []*entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		order, err := store.PurchaseOrders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return nil
		}
		found = true
		receptions, err := store.Receptions().ListByPurchaseOrder(ctx, id)
		if err != nil {
			return err
		}

		for _, rc := range receptions {
			if !revertStock {
				if err := store.Movements().DetachReception(ctx, rc.ID); err != nil {
					return err
				}
				continue
			}
			if err := uc.revokeReception(ctx, store, order, rc); err != nil {
				return err
			}
		}
		if revertStock && order.Status == entity.PurchaseStatusCompleted {
			movements, err = uc.revertStocked(ctx, store, order, "Eliminación orden de compra")
			if err != nil {
				return err
			}
		}

		if err := store.Receptions().DeleteByPurchaseOrder(ctx, id); err != nil {
			return err
		}
		return store.PurchaseOrders().Delete(ctx, id)
	})
	if err != nil {
		return fail(span, err)
	}
	if !found {
		return nil
	}
	uc.ledger.Publish(ctx, movements)
	uc.log.Info().Str("purchase_order_id", id).Bool("revert_stock", revertStock).Msg("orden de compra eliminada")
	return nil
}

// Complete cierra la orden a la fuerza: lo pendiente de cada línea se da por recibido y,
// si la orden mueve stock, ingresa a inventario.
func (uc *PurchaseOrderUseCase) Complete(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	ctx, span := tracer.Start(ctx, "purchase_orders.complete", trace.WithAttributes(attribute.String("purchase_order.id", id)))
	defer span.End()

	var (
		order     *entity.PurchaseOrder
		movements []*entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		order, err = uc.loadOrder(ctx, store, id)
		if err != nil {
			return err
		}
		if order.Status == entity.PurchaseStatusCompleted {
			return nil
		}
		if !order.Status.CanTransitionTo(entity.PurchaseStatusCompleted) {
			return domain.NewError(domain.ErrPurchase, id, "no se puede completar una orden %s", order.Status)
		}
		for _, line := range order.Lines {
			remaining := line.Remaining()
			if !remaining.GreaterThan(decimal.Zero) {
				continue
			}
			if order.MoveStock {
				res, err := uc.ledger.EntryInTx(ctx, store, inventory.EntryInput{
					ProductID: line.ProductID,
					Quantity:  remaining,
					Reason:    fmt.Sprintf("Cierre forzado orden de compra %s", order.ID),
					Reference: order.ID,
				})
				if err != nil {
					return err
				}
				line.StockedQuantity = line.StockedQuantity.Add(remaining)
				movements = append(movements, res.Movement)
			}
			line.ReceivedQuantity = line.Quantity
			if err := store.PurchaseOrders().UpdateLine(ctx, line); err != nil {
				return err
			}
		}
		order.Status = entity.PurchaseStatusCompleted
		order.UpdatedAt = uc.clock.Now()
		return store.PurchaseOrders().Update(ctx, order)
	})
	if err != nil {
		return nil, fail(span, err)
	}
	uc.ledger.Publish(ctx, movements)
	uc.log.Info().Str("purchase_order_id", id).Int("movements", len(movements)).Msg("orden de compra completada")
	return toPurchaseOrderResponse(order), nil
}

// RegisterPayment registra el pago de una orden AWAITING_PAYMENT y la deja COMPLETED.
func (uc *PurchaseOrderUseCase) RegisterPayment(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	ctx, span := tracer.Start(ctx, "purchase_orders.register_payment", trace.WithAttributes(attribute.String("purchase_order.id", id)))
	defer span.End()

	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		order, err = uc.loadOrder(ctx, store, id)
		if err != nil {
			return err
		}
		if order.Status == entity.PurchaseStatusCompleted {
			return nil
		}
		if order.Status != entity.PurchaseStatusAwaitingPayment {
			return domain.NewError(domain.ErrPurchase, id, "solo se registra pago en órdenes AWAITING_PAYMENT (estado %s)", order.Status)
		}
		order.Status = entity.PurchaseStatusCompleted
		order.UpdatedAt = uc.clock.Now()
		return store.PurchaseOrders().Update(ctx, order)
	})
	if err != nil {
		return nil, fail(span, err)
	}
	uc.log.Info().Str("purchase_order_id", id).Msg("pago de orden de compra registrado")
	return toPurchaseOrderResponse(order), nil
}

// GetByID obtiene la orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.store.PurchaseOrders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewError(domain.ErrNotFound, id, "orden de compra no encontrada")
	}
	return toPurchaseOrderResponse(order), nil
}

// ListBySupplier órdenes de un proveedor, más recientes primero.
func (uc *PurchaseOrderUseCase) ListBySupplier(ctx context.Context, supplierID string, page dto.PageRequest) ([]*dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	list, err := uc.store.PurchaseOrders().ListBySupplier(ctx, supplierID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderList(list), nil
}

// ListByDateRange órdenes con fecha en [from, to].
func (uc *PurchaseOrderUseCase) ListByDateRange(ctx context.Context, from, to time.Time, page dto.PageRequest) ([]*dto.PurchaseOrderResponse, error) {
	if to.Before(from) {
		return nil, domain.NewError(domain.ErrInvalidInput, "", "rango de fechas inválido")
	}
	page.DefaultPage()
	list, err := uc.store.PurchaseOrders().ListByDateRange(ctx, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderList(list), nil
}

// ListByStatus órdenes en un estado (acepta también los literales en español).
func (uc *PurchaseOrderUseCase) ListByStatus(ctx context.Context, status string, page dto.PageRequest) ([]*dto.PurchaseOrderResponse, error) {
	st, err := entity.ParsePurchaseStatus(status)
	if err != nil {
		return nil, domain.NewError(domain.ErrInvalidInput, "", "%v", err)
	}
	page.DefaultPage()
	list, err := uc.store.PurchaseOrders().ListByStatus(ctx, st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderList(list), nil
}

func (uc *PurchaseOrderUseCase) loadOrder(ctx context.Context, store repository.Store, id string) (*entity.PurchaseOrder, error) {
	order, err := store.PurchaseOrders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewError(domain.ErrPurchase, id, "la orden de compra no existe")
	}
	return order, nil
}

// revertStocked descuenta lo que cada línea ingresó a inventario y deja StockedQuantity en 0.
// Si parte del stock ya salió, falla con ErrInsufficientStock y no se aplica nada.
func (uc *PurchaseOrderUseCase) revertStocked(ctx context.Context, store repository.Store, order *entity.PurchaseOrder, reason string) ([]*entity.StockMovement, error) {
	var movements []*entity.StockMovement
	for _, line := range order.Lines {
		if !line.StockedQuantity.GreaterThan(decimal.Zero) {
			continue
		}
		res, err := uc.ledger.ExitInTx(ctx, store, inventory.ExitInput{
			ProductID: line.ProductID,
			Quantity:  line.StockedQuantity,
			Reason:    fmt.Sprintf("%s %s", reason, order.ID),
			Reference: order.ID,
		})
		if err != nil {
			return nil, err
		}
		movements = append(movements, res.Movement)
		line.StockedQuantity = decimal.Zero
		if err := store.PurchaseOrders().UpdateLine(ctx, line); err != nil {
			return nil, err
		}
	}
	return movements, nil
}

// revokeReception borra las entradas generadas por la recepción. Cada entrada descuenta de
// stock solo lo que su línea aún mantiene (StockedQuantity); lo ya revertido al anular no se
// descuenta de nuevo.
func (uc *PurchaseOrderUseCase) revokeReception(ctx context.Context, store repository.Store, order *entity.PurchaseOrder, rc *entity.Reception) error {
	lines := make(map[string]*entity.PurchaseOrderLine, len(order.Lines))
	for _, l := range order.Lines {
		lines[l.ID] = l
	}
	lineByMovement := make(map[string]*entity.PurchaseOrderLine, len(rc.Items))
	for _, it := range rc.Items {
		if it.MovementID != nil {
			lineByMovement[*it.MovementID] = lines[it.LineID]
		}
	}

	movs, err := store.Movements().ListByReception(ctx, rc.ID)
	if err != nil {
		return err
	}
	for _, m := range movs {
		if m.Kind != entity.MovementEntry {
			continue
		}
		line := lineByMovement[m.ID]
		held := decimal.Zero
		if line != nil {
			held = line.StockedQuantity
		}
		res, err := uc.ledger.RevokeEntryInTx(ctx, store, m.ID, held)
		if err != nil {
			return err
		}
		if line == nil {
			continue
		}
		revoked := res.OldQuantity.Sub(res.NewQuantity)
		if revoked.IsZero() {
			continue
		}
		line.StockedQuantity = line.StockedQuantity.Sub(revoked)
		if err := store.PurchaseOrders().UpdateLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
