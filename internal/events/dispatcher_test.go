package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interinest/marketplace/internal/domain"
)

func TestInMemoryDispatcher_FailingHandlerDoesNotStopOthers(t *testing.T) {
	t.Parallel()
	d := NewInMemoryDispatcher(nil)

	var calls []string
	d.Subscribe(EventProjectCreated, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventProjectCreated, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventProjectDeleted, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), New(EventProjectCreated, "designer-1", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestInMemoryDispatcher_PanickingHandlerIsContained(t *testing.T) {
	t.Parallel()
	d := NewInMemoryDispatcher(nil)

	reached := false
	d.Subscribe(EventSessionStarted, func(context.Context, Event) error { panic("broker gone") })
	d.Subscribe(EventSessionStarted, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NotPanics(t, func() {
		require.NoError(t, d.Publish(context.Background(), New(EventSessionStarted, "u1", nil)))
	})
	assert.True(t, reached)
}

func TestSubscribeAll(t *testing.T) {
	t.Parallel()
	d := NewInMemoryDispatcher(nil)

	var seen []EventType
	SubscribeAll(d, func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return nil
	})
	for _, et := range AllEventTypes() {
		require.NoError(t, d.Publish(context.Background(), New(et, "s", nil)))
	}
	assert.Equal(t, AllEventTypes(), seen)
}

func TestNew_StampsIDAndTime(t *testing.T) {
	t.Parallel()
	a := New(EventSessionStarted, "u1", SessionPayload{Role: domain.RoleAdmin})
	b := New(EventSessionStarted, "u1", nil)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
	assert.Equal(t, "u1", a.SubjectID)
}

func TestEncodeEvent(t *testing.T) {
	t.Parallel()
	body, err := encodeEvent(New(EventProjectUpdated, "d1", ProjectPayload{ProjectID: "p1", Status: domain.ProjectStatusPublished}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "project_updated", decoded["type"])
	assert.Equal(t, "d1", decoded["subject_id"])
	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, "Published", payload["status"])
}

func TestAMQPPublisher_NilRegisterIsNoop(t *testing.T) {
	t.Parallel()
	var p *AMQPPublisher
	d := NewInMemoryDispatcher(nil)
	p.Register(d)
	p.Close()
	require.NoError(t, d.Publish(context.Background(), New(EventSessionEnded, "u1", nil)))
}
