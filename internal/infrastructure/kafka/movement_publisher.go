package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/pkg/config"
)

var _ ports.MovementPublisher = (*MovementPublisher)(nil)

// MessageWriter lo que el publicador necesita de *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// MovementEvent payload JSON publicado por cada movimiento confirmado.
type MovementEvent struct {
	MovementID  string     `json:"movement_id"`
	ProductID   string     `json:"product_id"`
	Kind        string     `json:"kind"`
	Quantity    string     `json:"quantity"`
	Reason      string     `json:"reason,omitempty"`
	Reference   string     `json:"reference,omitempty"`
	Date        time.Time  `json:"date"`
	Lot         string     `json:"lot,omitempty"`
	Serial      string     `json:"serial,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	ReceptionID *string    `json:"reception_id,omitempty"`
	LocationID  *string    `json:"location_id,omitempty"`
}

// NewMovementEvent arma el evento de un movimiento.
func NewMovementEvent(m *entity.StockMovement) MovementEvent {
	return MovementEvent{
		MovementID:  m.ID,
		ProductID:   m.ProductID,
		Kind:        string(m.Kind),
		Quantity:    m.Quantity.String(),
		Reason:      m.Reason,
		Reference:   m.Reference,
		Date:        m.Date.UTC(),
		Lot:         m.Lot,
		Serial:      m.Serial,
		ExpiryDate:  m.ExpiryDate,
		ReceptionID: m.ReceptionID,
		LocationID:  m.LocationID,
	}
}

// MovementPublisher publica movimientos de stock en un tópico Kafka (clave = producto).
type MovementPublisher struct {
	writer     MessageWriter
	propagator propagation.TextMapPropagator
}

// NewMovementPublisher crea el publicador con un *kafka.Writer sobre los brokers configurados.
func NewMovementPublisher(cfg config.KafkaConfig) *MovementPublisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.MovementsTopic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return NewMovementPublisherWithWriter(w)
}

// NewMovementPublisherWithWriter permite inyectar el writer (pruebas).
func NewMovementPublisherWithWriter(w MessageWriter) *MovementPublisher {
	return &MovementPublisher{writer: w, propagator: otel.GetTextMapPropagator()}
}

// PublishMovements escribe un mensaje por movimiento en un solo lote.
// El contexto de traza viaja en los headers.
func (p *MovementPublisher) PublishMovements(ctx context.Context, movements []*entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	carrier := propagation.MapCarrier{}
	p.propagator.Inject(ctx, carrier)
	headers := make([]kafkago.Header, 0, len(carrier))
	for k, v := range carrier {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
	}

	msgs := make([]kafkago.Message, 0, len(movements))
	for _, m := range movements {
		payload, err := json.Marshal(NewMovementEvent(m))
		if err != nil {
			return fmt.Errorf("encode movement %s: %w", m.ID, err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:     []byte(m.ProductID),
			Value:   payload,
			Headers: headers,
		})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write movements: %w", err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (p *MovementPublisher) Close() error {
	return p.writer.Close()
}
