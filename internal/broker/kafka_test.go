package broker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent("ProductSaved", map[string]string{"id": "p1"})
	require.NoError(t, err)

	assert.Equal(t, "ProductSaved", ev.EventType)
	assert.NotEmpty(t, ev.EventID)
	assert.False(t, ev.Timestamp.IsZero())
	assert.JSONEq(t, `{"id":"p1"}`, string(ev.Payload))

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event_type":"ProductSaved"`)
}

func TestNewEvent_BadPayload(t *testing.T) {
	_, err := NewEvent("x", make(chan int))
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), "k", Event{}))
}
