package messaging

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educahub/educa-learning-hub/internal/domain/shared"
	"github.com/educahub/educa-learning-hub/pkg/logger"
)

func syncBus() *InMemoryEventBus {
	return NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:     false,
		EnableMetrics: true,
	})
}

func TestInMemoryEventBus_PublishDeliversToSubscriber(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	var recebidos []shared.Event
	err := bus.Subscribe(shared.EventAlunoCadastrado, func(e shared.Event) error {
		recebidos = append(recebidos, e)
		return nil
	})
	require.NoError(t, err)

	event := shared.NewAlunoCadastradoEvent(shared.NovoID(), "Maria Silva", "maria@educahub.com.br")
	require.NoError(t, bus.Publish(event))

	require.Len(t, recebidos, 1)
	assert.Equal(t, shared.EventAlunoCadastrado, recebidos[0].EventType())
	assert.Equal(t, event.AggregateID(), recebidos[0].AggregateID())
}

func TestInMemoryEventBus_IgnoresOtherEventTypes(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	chamado := false
	require.NoError(t, bus.Subscribe(shared.EventMatriculaCriada, func(e shared.Event) error {
		chamado = true
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewAlunoCadastradoEvent(shared.NovoID(), "Maria", "m@e.com")))

	assert.False(t, chamado)
}

func TestInMemoryEventBus_SubscribeAll(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	total := 0
	require.NoError(t, bus.SubscribeAll(func(e shared.Event) error {
		total++
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewAlunoCadastradoEvent(shared.NovoID(), "Maria", "m@e.com")))
	require.NoError(t, bus.Publish(shared.NewMatriculaCriadaEvent(shared.NovoID(), shared.NovoID(), "curso-go", 100)))

	assert.Equal(t, 2, total)
}

func TestInMemoryEventBus_MultipleSubscribers(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	a, b := 0, 0
	require.NoError(t, bus.Subscribe(shared.EventAlunoCadastrado, func(e shared.Event) error { a++; return nil }))
	require.NoError(t, bus.Subscribe(shared.EventAlunoCadastrado, func(e shared.Event) error { b++; return nil }))

	require.NoError(t, bus.Publish(shared.NewAlunoCadastradoEvent(shared.NovoID(), "Maria", "m@e.com")))

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	chamado := false
	require.NoError(t, bus.Subscribe(shared.EventAlunoCadastrado, func(e shared.Event) error {
		return errors.New("handler quebrado")
	}))
	require.NoError(t, bus.Subscribe(shared.EventAlunoCadastrado, func(e shared.Event) error {
		chamado = true
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewAlunoCadastradoEvent(shared.NovoID(), "Maria", "m@e.com")))

	assert.True(t, chamado)
}

func TestInMemoryEventBus_NilArguments(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	assert.Error(t, bus.Subscribe(shared.EventAlunoCadastrado, nil))
	assert.Error(t, bus.SubscribeAll(nil))
	assert.Error(t, bus.Publish(nil))
}

func TestInMemoryEventBus_Close(t *testing.T) {
	bus := syncBus()

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	err := bus.Publish(shared.NewAlunoCadastradoEvent(shared.NovoID(), "Maria", "m@e.com"))
	assert.ErrorIs(t, err, ErrEventBusClosed)

	err = bus.Subscribe(shared.EventAlunoCadastrado, func(e shared.Event) error { return nil })
	assert.ErrorIs(t, err, ErrEventBusClosed)
}

func TestInMemoryEventBus_AsyncDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:      true,
		WorkerPoolSize: 4,
	})

	var wg sync.WaitGroup
	var mu sync.Mutex
	total := 0
	require.NoError(t, bus.SubscribeAll(func(e shared.Event) error {
		mu.Lock()
		total++
		mu.Unlock()
		wg.Done()
		return nil
	}))

	wg.Add(10)
	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(shared.NewAlunoCadastradoEvent(shared.NovoID(), "Maria", "m@e.com")))
	}
	wg.Wait()

	require.NoError(t, bus.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, total)
}

func TestEventBusMetrics(t *testing.T) {
	bus := syncBus()
	defer bus.Close()

	require.NoError(t, bus.Subscribe(shared.EventAlunoCadastrado, func(e shared.Event) error { return nil }))
	require.NoError(t, bus.Subscribe(shared.EventAlunoCadastrado, func(e shared.Event) error {
		return errors.New("falha")
	}))

	require.NoError(t, bus.Publish(shared.NewAlunoCadastradoEvent(shared.NovoID(), "Maria", "m@e.com")))

	snap := bus.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.TotalPublished)
	assert.Equal(t, int64(2), snap.TotalHandlerExecs)
	assert.Equal(t, 0.5, snap.HandlerSuccessRate)
}

func TestInMemoryEventBus_ErroDeHandlerVaiParaOLogger(t *testing.T) {
	var buf bytes.Buffer
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode: false,
		Logger:    logger.New(logger.Options{Output: &buf, Level: logger.LevelError}),
	})
	defer bus.Close()

	require.NoError(t, bus.Subscribe(shared.EventAlunoCadastrado, func(e shared.Event) error {
		return errors.New("gravacao recusada")
	}))
	require.NoError(t, bus.Publish(shared.NewAlunoCadastradoEvent(shared.NovoID(), "Maria", "m@e.com")))

	saida := buf.String()
	assert.True(t, strings.Contains(saida, "handler error"), saida)
	assert.True(t, strings.Contains(saida, string(shared.EventAlunoCadastrado)), saida)
	assert.True(t, strings.Contains(saida, "gravacao recusada"), saida)
}
