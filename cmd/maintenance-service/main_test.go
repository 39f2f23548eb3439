package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-service/internal/config"
	"maintenance-service/internal/notify"
)

func TestNewNotifier_WithoutBrokerUsesLog(t *testing.T) {
	notifier, closeNotifier := newNotifier(&config.Config{}, zerolog.Nop())

	require.NotNil(t, closeNotifier)
	assert.IsType(t, &notify.LogNotifier{}, notifier)
	assert.NotPanics(t, closeNotifier)
}

func TestNewNotifier_UnreachableBrokerFallsBack(t *testing.T) {
	cfg := &config.Config{MQTT: config.MQTTConfig{BrokerURL: "tcp://127.0.0.1:1", ClientID: "maintenance-test"}}

	notifier, closeNotifier := newNotifier(cfg, zerolog.Nop())

	require.NotNil(t, closeNotifier)
	assert.IsType(t, &notify.LogNotifier{}, notifier)
	assert.NotPanics(t, closeNotifier)
}
