package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doneToken struct {
	err error
}

func (t *doneToken) Wait() bool                     { return true }
func (t *doneToken) WaitTimeout(time.Duration) bool { return true }
func (t *doneToken) Error() error                   { return t.err }

func (t *doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type publishedMessage struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// recordingClient embeds the interface so only the methods under test need
// an implementation.
type recordingClient struct {
	mqtt.Client

	mu           sync.Mutex
	published    []publishedMessage
	disconnected bool
}

func (c *recordingClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, publishedMessage{topic: topic, qos: qos, retained: retained, payload: payload.([]byte)})
	return &doneToken{}
}

func (c *recordingClient) Disconnect(uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnected = true
}

func TestMQTTNotifier_Publish(t *testing.T) {
	client := &recordingClient{}
	notifier := newMQTTNotifier(client, "maintenance/", zerolog.Nop())

	n := Notification{
		VehicleID: uuid.New(),
		UserID:    uuid.New(),
		Kind:      KindOilChangeAlert,
		Message:   "oil change is overdue",
		At:        time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, notifier.Notify(context.Background(), n))

	require.Len(t, client.published, 1)
	msg := client.published[0]
	assert.Equal(t, "maintenance/vehicles/"+n.VehicleID.String()+"/oil_change_alert", msg.topic)
	assert.Equal(t, byte(0), msg.qos)
	assert.False(t, msg.retained)

	var decoded Notification
	require.NoError(t, json.Unmarshal(msg.payload, &decoded))
	assert.Equal(t, n.VehicleID, decoded.VehicleID)
	assert.Equal(t, n.Message, decoded.Message)

	notifier.Close()
	assert.True(t, client.disconnected)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewLogNotifier(zerolog.New(&buf))

	err := notifier.Notify(context.Background(), Notification{
		VehicleID: uuid.New(),
		Kind:      KindServiceScheduled,
		Message:   "Oil Change scheduled",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"kind":"service_scheduled"`)
	assert.Contains(t, buf.String(), "Oil Change scheduled")
}
