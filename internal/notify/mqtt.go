package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 3 * time.Second
)

type MQTTConfig struct {
	BrokerURL   string
	ClientID    string
	TopicPrefix string
}

// MQTTNotifier publishes notifications with QoS 0 to
// <prefix>/vehicles/<vehicle id>/<kind>.
type MQTTNotifier struct {
	client mqtt.Client
	prefix string
	log    zerolog.Logger
}

func NewMQTTNotifier(cfg MQTTConfig, log zerolog.Logger) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to mqtt broker %s: timeout", cfg.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", cfg.BrokerURL, err)
	}

	return newMQTTNotifier(client, cfg.TopicPrefix, log), nil
}

func newMQTTNotifier(client mqtt.Client, prefix string, log zerolog.Logger) *MQTTNotifier {
	return &MQTTNotifier{
		client: client,
		prefix: strings.TrimSuffix(prefix, "/"),
		log:    log.With().Str("component", "notify").Logger(),
	}
}

func (n *MQTTNotifier) Topic(notification Notification) string {
	return fmt.Sprintf("%s/vehicles/%s/%s", n.prefix, notification.VehicleID, notification.Kind)
}

// Notify hands the message to the client and returns without waiting for the
// broker. Publish failures are only logged.
func (n *MQTTNotifier) Notify(_ context.Context, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	topic := n.Topic(notification)
	token := n.client.Publish(topic, 0, false, payload)
	go func() {
		if !token.WaitTimeout(publishTimeout) {
			n.log.Warn().Str("topic", topic).Msg("mqtt publish timed out")
			return
		}
		if err := token.Error(); err != nil {
			n.log.Warn().Err(err).Str("topic", topic).Msg("mqtt publish failed")
		}
	}()
	return nil
}

func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
