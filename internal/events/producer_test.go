package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_EncodesEvent(t *testing.T) {
	t.Parallel()

	ev := New(ProductCreated, "p-1", map[string]any{"title": "Boot"})
	msg, err := message(TopicProducts, "p-1", ev)
	require.NoError(t, err)

	assert.Equal(t, TopicProducts, msg.Topic)
	assert.Equal(t, []byte("p-1"), msg.Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ProductCreated, decoded["type"])
	assert.Equal(t, "p-1", decoded["id"])
	assert.Equal(t, "Boot", decoded["data"].(map[string]any)["title"])
}

func TestMessage_RejectsUnencodable(t *testing.T) {
	t.Parallel()

	_, err := message(TopicUsers, "k", map[string]any{"ch": make(chan int)})
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	t.Parallel()

	var p Publisher = Nop{}
	assert.NoError(t, p.PublishEvent(context.Background(), TopicUsers, "k", New(UserRegistered, "u", nil)))
	assert.NoError(t, p.Close())
}
