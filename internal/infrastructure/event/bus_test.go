package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sppg/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEvent struct {
	shared.BaseDomainEvent
}

func newStubEvent(eventType string) *stubEvent {
	return &stubEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "StubAggregate", uuid.New(), uuid.New()),
	}
}

type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
}

func newRecordingHandler(eventTypes ...string) *recordingHandler {
	return &recordingHandler{eventTypes: eventTypes}
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_PublishDeliversToSubscriber(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newRecordingHandler("school.created")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("school.created")))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_PublishSkipsOtherTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newRecordingHandler("school.created")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("menu.approved")))
	assert.Equal(t, 0, handler.count())
}

func TestInMemoryEventBus_WildcardReceivesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	wildcard := newRecordingHandler()
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(),
		newStubEvent("school.created"),
		newStubEvent("menu.approved"),
	))
	assert.Equal(t, 2, wildcard.count())
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := newRecordingHandler("stock.adjusted")
	failing.err = errors.New("boom")
	healthy := newRecordingHandler("stock.adjusted")
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("stock.adjusted")))
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, healthy.count())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newRecordingHandler("school.created")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("school.created")))
	assert.Equal(t, 1, handler.count())

	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("school.created")))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newRecordingHandler("school.created")
	bus.Subscribe(handler, "supplier.blocked")

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("supplier.blocked")))
	require.NoError(t, bus.Publish(context.Background(), newStubEvent("school.created")))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
}
