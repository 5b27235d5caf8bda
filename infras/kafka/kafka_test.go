package kafka

import (
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Type  string `json:"type"`
	Total int    `json:"total"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg, err := Message{Key: "order-1", Value: payload{Type: "order.pending", Total: 20}}.encode()
	require.NoError(t, err)

	assert.Equal(t, []byte("order-1"), msg.Key)
	assert.JSONEq(t, `{"type":"order.pending","total":20}`, string(msg.Value))

	decoded, err := Decode[payload](msg)
	require.NoError(t, err)
	assert.Equal(t, payload{Type: "order.pending", Total: 20}, decoded)
}

func TestEncodeUnsupportedValue(t *testing.T) {
	_, err := Message{Key: "bad", Value: make(chan int)}.encode()

	assert.Error(t, err)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode[payload](kafkaGo.Message{Value: []byte("{not json"), Offset: 42})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset 42")
}
