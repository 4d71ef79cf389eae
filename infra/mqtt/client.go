package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/evdash/infra/logger"
)

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Notifier publishes and receives dataset manifests over MQTT.
type Notifier struct {
	cli     pahoClient
	topic   string
	qos     byte
	retain  bool
	timeout time.Duration
	logger  logger.Logger
}

// NewNotifier connects to the broker described by cfg.
func NewNotifier(cfg Config) (*Notifier, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_notifier")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected to %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	n := &Notifier{
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		retain:  cfg.Retain,
		timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		logger:  log,
	}
	c := newMQTTClient(opts)
	if err := n.wait(c.Connect()); err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Broker, err)
	}
	n.cli = c
	return n, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

func (n *Notifier) wait(t paho.Token) error {
	if !t.WaitTimeout(n.timeout) {
		return fmt.Errorf("timed out after %s", n.timeout)
	}
	return t.Error()
}

// PublishManifest sends m as JSON on the configured topic.
func (n *Notifier) PublishManifest(m Manifest) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := n.wait(n.cli.Publish(n.topic, n.qos, n.retain, payload)); err != nil {
		return fmt.Errorf("publish manifest: %w", err)
	}
	n.logger.Infow("manifest published", map[string]any{"run_id": m.RunID, "topic": n.topic})
	return nil
}

// Subscribe invokes handle for every manifest received on the topic.
// Undecodable payloads are logged and dropped.
func (n *Notifier) Subscribe(handle func(Manifest)) error {
	cb := func(_ paho.Client, msg paho.Message) {
		var m Manifest
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			n.logger.Errorf("failed to decode manifest: %v", err)
			return
		}
		handle(m)
	}
	if err := n.wait(n.cli.Subscribe(n.topic, n.qos, cb)); err != nil {
		return fmt.Errorf("subscribe %s: %w", n.topic, err)
	}
	return nil
}

// Disconnect gracefully closes the MQTT connection.
func (n *Notifier) Disconnect() {
	if n.cli != nil && n.cli.IsConnected() {
		n.cli.Disconnect(250)
	}
}
