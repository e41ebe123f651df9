package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/infrastructure/kafka"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// PublishMovements
// ──────────────────────────────────────────────────────────────────────────────

func TestPublishMovements_KeyedByProduct(t *testing.T) {
	w := &fakeWriter{}
	p := kafka.NewMovementPublisherWithWriter(w)
	recID := "rec-1"
	date := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := p.PublishMovements(context.Background(), []*entity.StockMovement{
		{ID: "m1", ProductID: "p1", Kind: entity.MovementEntry, Quantity: decimal.RequireFromString("2.5"),
			Date: date, Lot: "L-9", ReceptionID: &recID},
		{ID: "m2", ProductID: "p2", Kind: entity.MovementExit, Quantity: decimal.NewFromInt(1), Date: date},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)
	assert.Equal(t, "p1", string(w.msgs[0].Key))
	assert.Equal(t, "p2", string(w.msgs[1].Key))

	var ev kafka.MovementEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, "m1", ev.MovementID)
	assert.Equal(t, "ENTRY", ev.Kind)
	assert.Equal(t, "2.5", ev.Quantity)
	assert.Equal(t, "L-9", ev.Lot)
	require.NotNil(t, ev.ReceptionID)
	assert.Equal(t, "rec-1", *ev.ReceptionID)
	assert.True(t, date.Equal(ev.Date))
}

func TestPublishMovements_EmptyIsNoop(t *testing.T) {
	w := &fakeWriter{err: errors.New("no debería llamarse")}
	p := kafka.NewMovementPublisherWithWriter(w)

	assert.NoError(t, p.PublishMovements(context.Background(), nil))
}

func TestPublishMovements_WriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker caído")}
	p := kafka.NewMovementPublisherWithWriter(w)

	err := p.PublishMovements(context.Background(), []*entity.StockMovement{
		{ID: "m1", ProductID: "p1", Kind: entity.MovementEntry, Quantity: decimal.NewFromInt(1)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker caído")
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, kafka.NewMovementPublisherWithWriter(w).Close())
	assert.True(t, w.closed)
}
