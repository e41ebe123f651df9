package reception

import (
	"context"
	"fmt"

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
	domaininv "github.com/jhoicas/ordenes-inventario/internal/domain/inventory"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
	"github.com/jhoicas/ordenes-inventario/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/ordenes-inventario/internal/application/reception")

// ReceptionUseCase registra recepciones (posiblemente parciales) contra órdenes de compra.
type ReceptionUseCase struct {
	txRunner ports.TxRunner
	store    repository.Store
	ledger   StockLedger
	clock    ports.Clock
	log      *logger.Logger
}

// NewReceptionUseCase construye el caso de uso.
func NewReceptionUseCase(
	txRunner ports.TxRunner,
	store repository.Store,
	ledger StockLedger,
	clock ports.Clock,
	log *logger.Logger,
) *ReceptionUseCase {
	return &ReceptionUseCase{
		txRunner: txRunner,
		store:    store,
		ledger:   ledger,
		clock:    clock,
		log:      log.Component("receptions"),
	}
}

// ApplyReception aplica los ítems recibidos a las líneas de la orden, ingresa stock si
// apply_to_stock y la orden mueve stock, y recalcula el estado de la orden.
// Todo o nada: un ítem que exceda lo pendiente aborta la recepción completa.
func (uc *ReceptionUseCase) ApplyReception(ctx context.Context, purchaseOrderID string, in dto.ApplyReceptionRequest) (*dto.ReceptionResponse, error) {
	ctx, span := tracer.Start(ctx, "receptions.apply", trace.WithAttributes(attribute.String("purchase_order.id", purchaseOrderID)))
	defer span.End()

	if len(in.Items) == 0 {
		return nil, fail(span, domain.NewError(domain.ErrReception, purchaseOrderID, "la recepción no tiene ítems"))
	}
	now := uc.clock.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	doc := entity.ParseDocumentType(in.DocumentType)

	var (
		rc        *entity.Reception
		order     *entity.PurchaseOrder
		movements []*entity.StockMovement
	)
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		order, err = store.PurchaseOrders().GetByID(ctx, purchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NewError(domain.ErrReception, purchaseOrderID, "la orden de compra no existe")
		}
		if !order.Status.IsOpen() {
			return domain.NewError(domain.ErrReception, purchaseOrderID, "la orden no admite recepciones (estado %s)", order.Status)
		}
		moves := dto.BoolOr(in.ApplyToStock, true) && order.MoveStock

		rc = &entity.Reception{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			DocumentType:    doc,
			DocumentNumber:  in.DocumentNumber,
			Date:            date,
			StockMoved:      moves,
			CreatedAt:       now,
		}
		if err := store.Receptions().Create(ctx, rc); err != nil {
			return err
		}

		for i, item := range in.Items {
			line := matchLine(order, item)
			if line == nil {
				return domain.NewError(domain.ErrReception, item.ProductID, "ítem %d: el producto no pertenece a la orden", i+1)
			}
			if !item.Quantity.GreaterThan(decimal.Zero) {
				return domain.NewError(domain.ErrReception, line.ID, "ítem %d: la cantidad debe ser mayor que cero", i+1)
			}
			if item.Quantity.GreaterThan(line.Remaining()) {
				return domain.NewError(domain.ErrReception, line.ID,
					"ítem %d: recibido %s excede lo pendiente %s", i+1, item.Quantity, line.Remaining())
			}

			lot, serial := domaininv.ResolveTrace(item.Lot, item.Serial)
			ri := &entity.ReceptionItem{
				ID:          uuid.New().String(),
				ReceptionID: rc.ID,
				LineID:      line.ID,
				ProductID:   line.ProductID,
				Quantity:    item.Quantity,
				Lot:         lot,
				Serial:      serial,
				ExpiryDate:  item.ExpiryDate,
				LocationID:  item.LocationID,
			}
			if moves {
				if ri.LocationID == nil {
					product, err := store.Products().GetByID(ctx, line.ProductID)
					if err != nil {
						return err
					}
					if product != nil {
						ri.LocationID = product.LocationID
					}
				}
				res, err := uc.ledger.EntryInTx(ctx, store, inventory.EntryInput{
					ProductID:   line.ProductID,
					Quantity:    item.Quantity,
					Reason:      receptionReason(doc, in.DocumentNumber, order.ID),
					Reference:   order.ID,
					Date:        &date,
					Lot:         ri.Lot,
					Serial:      ri.Serial,
					ExpiryDate:  ri.ExpiryDate,
					ReceptionID: &rc.ID,
					LocationID:  ri.LocationID,
				})
				if err != nil {
					return err
				}
				ri.MovementID = &res.Movement.ID
				line.StockedQuantity = line.StockedQuantity.Add(item.Quantity)
				movements = append(movements, res.Movement)
			}
			line.ReceivedQuantity = line.ReceivedQuantity.Add(item.Quantity)
			if err := store.PurchaseOrders().UpdateLine(ctx, line); err != nil {
				return err
			}
			if err := store.Receptions().CreateItem(ctx, ri); err != nil {
				return err
			}
			rc.Items = append(rc.Items, ri)
		}

		next := domaininv.StatusAfterReception(order, doc, moves)
		if next != order.Status {
			order.Status = next
			order.UpdatedAt = now
			if err := store.PurchaseOrders().Update(ctx, order); err != nil {
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
		Str("reception_id", rc.ID).
		Str("purchase_order_id", order.ID).
		Str("document_type", string(doc)).
		Bool("stock_moved", rc.StockMoved).
		Str("order_status", order.Status.String()).
		Msg("recepción registrada")
	return toReceptionResponse(rc, order.Status), nil
}

// ListByPurchaseOrder recepciones de una orden, en orden de registro.
func (uc *ReceptionUseCase) ListByPurchaseOrder(ctx context.Context, purchaseOrderID string) ([]*dto.ReceptionResponse, error) {
	order, err := uc.store.PurchaseOrders().GetByID(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewError(domain.ErrNotFound, purchaseOrderID, "orden de compra no encontrada")
	}
	list, err := uc.store.Receptions().ListByPurchaseOrder(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReceptionResponse, 0, len(list))
	for _, rc := range list {
		out = append(out, toReceptionResponse(rc, ""))
	}
	return out, nil
}

// UpdateItemTrace corrige lote, serie, vencimiento y ubicación de un ítem ya recibido
// (y del movimiento que generó). Solo cambia lo que viene en la petición; las cantidades
// no se tocan.
func (uc *ReceptionUseCase) UpdateItemTrace(ctx context.Context, receptionID, itemID string, in dto.UpdateReceptionItemRequest) (*dto.ReceptionItemResponse, error) {
	ctx, span := tracer.Start(ctx, "receptions.update_item", trace.WithAttributes(attribute.String("reception.id", receptionID)))
	defer span.End()

	var item *entity.ReceptionItem
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		rc, err := store.Receptions().GetByID(ctx, receptionID)
		if err != nil {
			return err
		}
		if rc == nil {
			return domain.NewError(domain.ErrReception, receptionID, "la recepción no existe")
		}
		for _, it := range rc.Items {
			if it.ID == itemID {
				item = it
				break
			}
		}
		if item == nil {
			return domain.NewError(domain.ErrReception, itemID, "el ítem no pertenece a la recepción")
		}
		if in.LocationID != nil {
			loc, err := store.Locations().GetByID(ctx, *in.LocationID)
			if err != nil {
				return err
			}
			if loc == nil {
				return domain.NewError(domain.ErrReception, *in.LocationID, "la ubicación no existe")
			}
		}

		item.Lot, item.Serial = mergeTrace(item.Lot, item.Serial, in.Lot, in.Serial)
		if in.ExpiryDate != nil {
			item.ExpiryDate = in.ExpiryDate
		}
		if in.LocationID != nil {
			item.LocationID = in.LocationID
		}
		if err := store.Receptions().UpdateItem(ctx, item); err != nil {
			return err
		}
		if item.MovementID == nil {
			return nil
		}
		mov, err := store.Movements().GetByID(ctx, *item.MovementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return nil
		}
		mov.Lot, mov.Serial = item.Lot, item.Serial
		mov.ExpiryDate = item.ExpiryDate
		mov.LocationID = item.LocationID
		return store.Movements().UpdateTrace(ctx, mov)
	})
	if err != nil {
		return nil, fail(span, err)
	}
	uc.log.Info().Str("reception_id", receptionID).Str("item_id", itemID).Msg("trazabilidad de ítem actualizada")
	res := toItemResponse(item)
	return &res, nil
}

// mergeTrace aplica un parche de lote/serie. Informar solo la serie reemplaza al lote vigente,
// ya que un ítem lleva uno u otro.
func mergeTrace(curLot, curSerial string, lot, serial *string) (string, string) {
	if lot != nil {
		curLot = *lot
	}
	if serial != nil {
		curSerial = *serial
		if lot == nil && *serial != "" {
			curLot = ""
		}
	}
	return domaininv.ResolveTrace(curLot, curSerial)
}

// matchLine resuelve la línea del ítem: por LineID si viene, si no la primera línea del
// producto con cantidad pendiente (o la primera del producto si todas están completas).
func matchLine(order *entity.PurchaseOrder, item dto.ReceptionItemRequest) *entity.PurchaseOrderLine {
	if item.LineID != "" {
		for _, l := range order.Lines {
			if l.ID == item.LineID {
				return l
			}
		}
		return nil
	}
	var first *entity.PurchaseOrderLine
	for _, l := range order.Lines {
		if l.ProductID != item.ProductID {
			continue
		}
		if l.Remaining().GreaterThan(decimal.Zero) {
			return l
		}
		if first == nil {
			first = l
		}
	}
	return first
}

func receptionReason(doc entity.DocumentType, number, orderID string) string {
	if number == "" {
		return fmt.Sprintf("Recepción %s OC %s", doc, orderID)
	}
	return fmt.Sprintf("Recepción %s %s OC %s", doc, number, orderID)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
