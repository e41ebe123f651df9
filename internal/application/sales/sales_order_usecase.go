package sales

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

var tracer = otel.Tracer("github.com/jhoicas/ordenes-inventario/internal/application/sales")

// SalesOrderUseCase ciclo de vida de órdenes de venta. A diferencia de compras, eliminar
// es un borrado lógico: la fila queda con estado ELIMINATED.
type SalesOrderUseCase struct {
	txRunner ports.TxRunner
	store    repository.Store
	ledger   StockLedger
	clock    ports.Clock
	log      *logger.Logger
}

// NewSalesOrderUseCase construye el caso de uso.
func NewSalesOrderUseCase(
	txRunner ports.TxRunner,
	store repository.Store,
	ledger StockLedger,
	clock ports.Clock,
	log *logger.Logger,
) *SalesOrderUseCase {
	return &SalesOrderUseCase{
		txRunner: txRunner,
		store:    store,
		ledger:   ledger,
		clock:    clock,
		log:      log.Component("sales_orders"),
	}
}

// Create registra la venta con sus líneas. Status vacío = CONFIRMED. En CONFIRMED o PAID con
// apply_to_stock descuenta el stock de cada línea; si algún producto no alcanza, la venta
// completa se aborta con ErrInsufficientStock y no queda ninguna fila.
func (uc *SalesOrderUseCase) Create(ctx context.Context, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	ctx, span := tracer.Start(ctx, "sales_orders.create")
	defer span.End()

	status := entity.SalesStatusConfirmed
	if in.Status != "" {
		st, err := entity.ParseSalesStatus(in.Status)
		if err != nil {
			return nil, fail(span, domain.NewError(domain.ErrSales, "", "%v", err))
		}
		status = st
	}
	switch status {
	case entity.SalesStatusPending, entity.SalesStatusReserved, entity.SalesStatusConfirmed, entity.SalesStatusPaid:
	default:
		return nil, fail(span, domain.NewError(domain.ErrSales, "", "una venta no puede crearse en estado %s", status))
	}
	if len(in.Lines) == 0 {
		return nil, fail(span, domain.NewError(domain.ErrSales, "", "la orden debe tener al menos una línea"))
	}
	applyToStock := dto.BoolOr(in.ApplyToStock, true)
	now := uc.clock.Now()
	orderDate := now
	if in.Date != nil {
		orderDate = *in.Date
	}

	order := &entity.SalesOrder{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		OrderDate:  orderDate,
		Total:      decimal.Zero,
		Status:     status,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	span.SetAttributes(attribute.String("sales_order.id", order.ID), attribute.String("sales_order.status", status.String()))

	var movements []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		customer, err := store.Customers().GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NewError(domain.ErrSales, in.CustomerID, "el cliente no existe")
		}
		for i, l := range in.Lines {
			if !l.Quantity.GreaterThan(decimal.Zero) {
				return domain.NewError(domain.ErrSales, l.ProductID, "línea %d: la cantidad debe ser mayor que cero", i+1)
			}
			if !l.UnitPrice.GreaterThan(decimal.Zero) {
				return domain.NewError(domain.ErrSales, l.ProductID, "línea %d: el precio unitario debe ser mayor que cero", i+1)
			}
			p, err := store.Products().GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NewError(domain.ErrSales, l.ProductID, "línea %d: el producto no existe", i+1)
			}
			order.Total = order.Total.Add(l.Quantity.Mul(l.UnitPrice))
		}

		if err := store.SalesOrders().Create(ctx, order); err != nil {
			return err
		}
		for _, l := range in.Lines {
			line := &entity.SalesOrderLine{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				Subtotal:  l.Quantity.Mul(l.UnitPrice),
			}
			if err := store.SalesOrders().CreateLine(ctx, line); err != nil {
				return err
			}
			order.Lines = append(order.Lines, line)
		}

		if status.AffectsStock() && applyToStock {
			movements, err = uc.applyExits(ctx, store, order, &orderDate)
			if err != nil {
				return err
			}
			order.StockApplied = true
			return store.SalesOrders().Update(ctx, order)
		}
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}
	uc.ledger.Publish(ctx, movements)
	uc.log.Info().
		Str("sales_order_id", order.ID).
		Str("status", order.Status.String()).
		Int("lines", len(order.Lines)).
		Int("movements", len(movements)).
		Msg("orden de venta creada")
	return toSalesOrderResponse(order), nil
}

// Confirm pasa la venta a CONFIRMED. Con applyToStock descuenta el stock si aún no se descontó.
func (uc *SalesOrderUseCase) Confirm(ctx context.Context, id string, applyToStock bool) (*dto.SalesOrderResponse, error) {
	return uc.advance(ctx, "sales_orders.confirm", id, entity.SalesStatusConfirmed, applyToStock)
}

// RegisterPayment pasa la venta a PAID. Con applyToStock descuenta el stock si aún no se descontó.
func (uc *SalesOrderUseCase) RegisterPayment(ctx context.Context, id string, applyToStock bool) (*dto.SalesOrderResponse, error) {
	return uc.advance(ctx, "sales_orders.register_payment", id, entity.SalesStatusPaid, applyToStock)
}

func (uc *SalesOrderUseCase) advance(ctx context.Context, op, id string, target entity.SalesStatus, applyToStock bool) (*dto.SalesOrderResponse, error) {
	ctx, span := tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("sales_order.id", id),
		attribute.String("sales_order.target", target.String()),
	))
	defer span.End()

	var (
		order     *entity.SalesOrder
		movements []*entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		order, err = uc.loadOrder(ctx, store, id)
		if err != nil {
			return err
		}
		if order.Status == target {
			return nil
		}
		if !order.Status.CanTransitionTo(target) {
			return domain.NewError(domain.ErrSales, id, "transición %s → %s no permitida", order.Status, target)
		}
		if applyToStock && !order.StockApplied {
			movements, err = uc.applyExits(ctx, store, order, nil)
			if err != nil {
				return err
			}
			order.StockApplied = true
		}
		order.Status = target
		order.UpdatedAt = uc.clock.Now()
		return store.SalesOrders().Update(ctx, order)
	})
	if err != nil {
		return nil, fail(span, err)
	}
	uc.ledger.Publish(ctx, movements)
	uc.log.Info().Str("sales_order_id", id).Str("status", order.Status.String()).Int("movements", len(movements)).Msg("orden de venta actualizada")
	return toSalesOrderResponse(order), nil
}

// Cancel anula la venta. Si la venta había descontado stock y revertStock, lo devuelve línea
// por línea. Anular una venta ya anulada no hace nada.
func (uc *SalesOrderUseCase) Cancel(ctx context.Context, id string, revertStock bool) (*dto.SalesOrderResponse, error) {
	ctx, span := tracer.Start(ctx, "sales_orders.cancel", trace.WithAttributes(attribute.String("sales_order.id", id)))
	defer span.End()

	var (
		order     *entity.SalesOrder
		movements []*entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		order, err = uc.loadOrder(ctx, store, id)
		if err != nil {
			return err
		}
		if order.Status == entity.SalesStatusCancelled {
			return nil
		}
		if !order.Status.CanTransitionTo(entity.SalesStatusCancelled) {
			return domain.NewError(domain.ErrSales, id, "no se puede anular una orden %s", order.Status)
		}
		if revertStock && order.StockApplied {
			movements, err = uc.revertExits(ctx, store, order, "Anulación orden de venta")
			if err != nil {
				return err
			}
		}
		order.Status = entity.SalesStatusCancelled
		order.UpdatedAt = uc.clock.Now()
		return store.SalesOrders().Update(ctx, order)
	})
	if err != nil {
		return nil, fail(span, err)
	}
	uc.ledger.Publish(ctx, movements)
	uc.log.Info().Str("sales_order_id", id).Bool("revert_stock", revertStock).Int("movements", len(movements)).Msg("orden de venta anulada")
	return toSalesOrderResponse(order), nil
}

// Delete marca la venta como ELIMINATED conservando la fila. Revierte el stock como Cancel.
// Eliminar una venta inexistente o ya eliminada no hace nada.
func (uc *SalesOrderUseCase) Delete(ctx context.Context, id string, revertStock bool) error {
	ctx, span := tracer.Start(ctx, "sales_orders.delete", trace.WithAttributes(attribute.String("sales_order.id", id)))
	defer span.End()

	var (
		changed   bool
		movements []*entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		order, err := store.SalesOrders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil || order.Status == entity.SalesStatusEliminated {
			return nil
		}
		if !order.Status.CanTransitionTo(entity.SalesStatusEliminated) {
			return domain.NewError(domain.ErrSales, id, "no se puede eliminar una orden %s", order.Status)
		}
		if revertStock && order.StockApplied {
			movements, err = uc.revertExits(ctx, store, order, "Eliminación orden de venta")
			if err != nil {
				return err
			}
		}
		order.Status = entity.SalesStatusEliminated
		order.UpdatedAt = uc.clock.Now()
		changed = true
		return store.SalesOrders().Update(ctx, order)
	})
	if err != nil {
		return fail(span, err)
	}
	if !changed {
		return nil
	}
	uc.ledger.Publish(ctx, movements)
	uc.log.Info().Str("sales_order_id", id).Bool("revert_stock", revertStock).Msg("orden de venta eliminada")
	return nil
}

// GetByID obtiene la venta con sus líneas (incluye las eliminadas).
func (uc *SalesOrderUseCase) GetByID(ctx context.Context, id string) (*dto.SalesOrderResponse, error) {
	order, err := uc.store.SalesOrders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewError(domain.ErrNotFound, id, "orden de venta no encontrada")
	}
	return toSalesOrderResponse(order), nil
}

// ListByCustomer ventas de un cliente, más recientes primero.
func (uc *SalesOrderUseCase) ListByCustomer(ctx context.Context, customerID string, page dto.PageRequest) ([]*dto.SalesOrderResponse, error) {
	page.DefaultPage()
	list, err := uc.store.SalesOrders().ListByCustomer(ctx, customerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toSalesOrderList(list), nil
}

// ListByDateRange ventas con fecha en [from, to].
func (uc *SalesOrderUseCase) ListByDateRange(ctx context.Context, from, to time.Time, page dto.PageRequest) ([]*dto.SalesOrderResponse, error) {
	if to.Before(from) {
		return nil, domain.NewError(domain.ErrInvalidInput, "", "rango de fechas inválido")
	}
	page.DefaultPage()
	list, err := uc.store.SalesOrders().ListByDateRange(ctx, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toSalesOrderList(list), nil
}

// ListByStatus ventas en un estado (acepta también los literales en español).
func (uc *SalesOrderUseCase) ListByStatus(ctx context.Context, status string, page dto.PageRequest) ([]*dto.SalesOrderResponse, error) {
	st, err := entity.ParseSalesStatus(status)
	if err != nil {
		return nil, domain.NewError(domain.ErrInvalidInput, "", "%v", err)
	}
	page.DefaultPage()
	list, err := uc.store.SalesOrders().ListByStatus(ctx, st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toSalesOrderList(list), nil
}

func (uc *SalesOrderUseCase) loadOrder(ctx context.Context, store repository.Store, id string) (*entity.SalesOrder, error) {
	order, err := store.SalesOrders().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewError(domain.ErrSales, id, "la orden de venta no existe")
	}
	return order, nil
}

// applyExits registra una salida por línea, en el orden de las líneas.
func (uc *SalesOrderUseCase) applyExits(ctx context.Context, store repository.Store, order *entity.SalesOrder, date *time.Time) ([]*entity.StockMovement, error) {
	movements := make([]*entity.StockMovement, 0, len(order.Lines))
	for _, line := range order.Lines {
		res, err := uc.ledger.ExitInTx(ctx, store, inventory.ExitInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Reason:    fmt.Sprintf("Orden de venta %s", order.ID),
			Reference: order.ID,
			Date:      date,
		})
		if err != nil {
			return nil, err
		}
		movements = append(movements, res.Movement)
	}
	return movements, nil
}

// revertExits devuelve al stock la cantidad de cada línea y deja StockApplied en false.
func (uc *SalesOrderUseCase) revertExits(ctx context.Context, store repository.Store, order *entity.SalesOrder, reason string) ([]*entity.StockMovement, error) {
	movements := make([]*entity.StockMovement, 0, len(order.Lines))
	for _, line := range order.Lines {
		res, err := uc.ledger.EntryInTx(ctx, store, inventory.EntryInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Reason:    fmt.Sprintf("%s %s", reason, order.ID),
			Reference: order.ID,
		})
		if err != nil {
			return nil, err
		}
		movements = append(movements, res.Movement)
	}
	order.StockApplied = false
	return movements, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
