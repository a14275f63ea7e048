// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package telemetry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-form-coach/internal/config"
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/internal/utils"
	"github.com/MKhiriev/go-form-coach/models"
	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout  = 10 * time.Second
	publishTimeout  = 5 * time.Second
	disconnectQuiet = 1000 // ms
	retryInterval   = 5 * time.Second
	clientIDPrefix  = "formcoach"
)

var (
	ErrConnectTimeout = errors.New("mqtt connect timeout")
	ErrPublishTimeout = errors.New("mqtt publish timeout")
	ErrQueueFull      = errors.New("telemetry queue full")
)

// mqttClient is the part of paho.Client the publisher uses.
type mqttClient interface {
	Connect() paho.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
	IsConnected() bool
}

// MQTTPublisher publishes to a real broker.
type MQTTPublisher struct {
	client mqttClient
	prefix string
	now    func() time.Time
	log    *logger.Logger
}

// New returns an MQTTPublisher when a broker is configured and a
// NopPublisher otherwise.
func New(cfg config.ClientTelemetry, log *logger.Logger) (Publisher, error) {
	if !cfg.Enabled() {
		return NopPublisher{}, nil
	}
	p, err := NewMQTTPublisher(cfg, log)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewMQTTPublisher connects to cfg.Broker. The connection topic carries a
// retained "disconnected" will so subscribers learn about a crashed client.
func NewMQTTPublisher(cfg config.ClientTelemetry, log *logger.Logger) (*MQTTPublisher, error) {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = utils.NewPrefixedUUIDGenerator(clientIDPrefix).Generate()
	}
	prefix := normalizePrefix(cfg.TopicPrefix)

	will, err := FormatConnection(time.Now(), models.Disconnected)
	if err != nil {
		return nil, fmt.Errorf("format will payload: %w", err)
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(retryInterval).
		SetBinaryWill(prefix+topicConnection, will, 0, true)

	p := newMQTTPublisher(paho.NewClient(opts), prefix, log)
	if err := p.connect(); err != nil {
		// stop the background connect retries
		p.client.Disconnect(0)
		return nil, err
	}
	p.log.Info().Str("broker", cfg.Broker).Str("client_id", clientID).Msg("telemetry connected")
	return p, nil
}

func newMQTTPublisher(client mqttClient, prefix string, log *logger.Logger) *MQTTPublisher {
	return &MQTTPublisher{
		client: client,
		prefix: prefix,
		now:    time.Now,
		log:    log.Component("telemetry"),
	}
}

func (p *MQTTPublisher) connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return ErrConnectTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	return nil
}

// PublishSummary sends a session summary.
func (p *MQTTPublisher) PublishSummary(userID string, summary models.SessionSummary) error {
	payload, err := FormatSummary(p.now(), userID, summary)
	if err != nil {
		return fmt.Errorf("format summary payload: %w", err)
	}
	return p.publish(topicSessionSummary, false, payload)
}

// PublishHardwareAlert sends a hardware alert.
func (p *MQTTPublisher) PublishHardwareAlert(hw models.HardwareState) error {
	payload, err := FormatHardwareAlert(p.now(), hw)
	if err != nil {
		return fmt.Errorf("format hardware payload: %w", err)
	}
	return p.publish(topicHardwareAlert, false, payload)
}

// PublishConnection sends the retained connection state.
func (p *MQTTPublisher) PublishConnection(state models.ConnectionState) error {
	payload, err := FormatConnection(p.now(), state)
	if err != nil {
		return fmt.Errorf("format connection payload: %w", err)
	}
	return p.publish(topicConnection, true, payload)
}

// IsConnected reports whether the broker connection is up.
func (p *MQTTPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(disconnectQuiet)
	return nil
}

// publish sends with QoS 0 (at-most-once).
func (p *MQTTPublisher) publish(topic string, retained bool, payload []byte) error {
	full := p.prefix + topic
	token := p.client.Publish(full, 0, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		p.log.Warn().Str("topic", full).Msg("publish timeout")
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		p.log.Warn().Err(err).Str("topic", full).Msg("publish failed")
		return fmt.Errorf("publish %s: %w", full, err)
	}
	return nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = config.DefaultTopicPrefix
	}
	return prefix + "/"
}
