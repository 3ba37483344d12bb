package events

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoBrokersIsNoop(t *testing.T) {
	p := New(nil)
	_, ok := p.(Noop)
	assert.True(t, ok)
	assert.NoError(t, p.PublishEvent(context.Background(), TopicUsers, "k", Event{Type: "x"}))
	assert.NoError(t, p.Close())
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.PublishEvent(context.Background(), TopicOrders, "o-1", Event{Type: "order_created"}))
	require.NoError(t, r.PublishEvent(context.Background(), TopicOrders, "o-1", Event{Type: "order_cancelled"}))

	assert.Equal(t, []string{"order_created", "order_cancelled"}, r.Types())
	assert.Equal(t, "o-1", r.Events()[0].Key)

	r.Err = errors.New("down")
	assert.Error(t, r.PublishEvent(context.Background(), TopicOrders, "o-1", Event{}))
	assert.Len(t, r.Events(), 2)
}

func TestProducer_WritesToKafka(t *testing.T) {
	brokers := os.Getenv("KAFKA_TEST_BROKERS")
	if brokers == "" {
		t.Skip("KAFKA_TEST_BROKERS not set")
	}
	list := strings.Split(brokers, ",")
	topic := "storefront_test_events"

	p := NewProducer(list)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	ev := Event{Type: "order_created", OccurredAt: time.Now().UTC(), Payload: map[string]any{"id": "o-1"}}
	var err error
	for i := 0; i < 10; i++ {
		if err = p.PublishEvent(ctx, topic, "o-1", ev); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     list,
		Topic:       topic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     time.Second,
		StartOffset: kafka.FirstOffset,
	})
	defer r.Close()

	for {
		m, err := r.ReadMessage(ctx)
		require.NoError(t, err)
		if string(m.Key) != "o-1" {
			continue
		}
		var got Event
		require.NoError(t, json.Unmarshal(m.Value, &got))
		assert.Equal(t, "order_created", got.Type)
		return
	}
}

func TestEmitter_SwallowsFailures(t *testing.T) {
	rec := &Recorder{Err: errors.New("broker down")}
	em := NewEmitter(rec, nil)
	assert.NotPanics(t, func() {
		em.Emit(context.Background(), TopicUsers, "u-1", "user_registered", map[string]any{"id": "u-1"})
	})

	rec.Err = nil
	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	em.Now = func() time.Time { return fixed }
	em.Emit(context.Background(), TopicUsers, "u-1", "user_registered", nil)
	require.Len(t, rec.Events(), 1)
	assert.Equal(t, fixed, rec.Events()[0].Event.OccurredAt)

	var nilEmitter *Emitter
	assert.NotPanics(t, func() { nilEmitter.Emit(context.Background(), TopicUsers, "k", "x", nil) })
}
