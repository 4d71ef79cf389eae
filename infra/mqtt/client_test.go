package mqtt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generateCert writes a self-signed certificate usable as client cert and CA.
func generateCert(t *testing.T) (certFile, keyFile, caFile string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tmpl := x509.Certificate{SerialNumber: big.NewInt(1), Subject: pkix.Name{CommonName: "test"}, NotBefore: time.Now(), NotAfter: time.Now().Add(time.Hour)}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	require.NoError(t, err)
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})

	dir := t.TempDir()
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	caFile = filepath.Join(dir, "ca.pem")
	require.NoError(t, os.WriteFile(certFile, certPEM, 0o644))
	require.NoError(t, os.WriteFile(keyFile, keyPEM, 0o644))
	require.NoError(t, os.WriteFile(caFile, certPEM, 0o644))
	return
}

func useMock(t *testing.T, mc *mockClient) {
	t.Helper()
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() {
		newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) }
	})
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "tcp://localhost:1883", cfg.Broker)
	assert.Equal(t, "evdash/datasets", cfg.Topic)
	require.NoError(t, cfg.Validate())

	cfg.Enabled = true
	require.NoError(t, cfg.Validate())
	cfg.QoS = 3
	assert.Error(t, cfg.Validate())
	cfg.QoS = 1
	cfg.Broker = ""
	assert.Error(t, cfg.Validate())
}

func TestLoadTLSConfig(t *testing.T) {
	cert, key, ca := generateCert(t)
	cfg := Config{UseTLS: true, ClientCert: cert, ClientKey: key, CABundle: ca}
	tlsCfg, err := cfg.LoadTLSConfig()
	require.NoError(t, err)
	assert.NotEmpty(t, tlsCfg.Certificates)
	assert.NotNil(t, tlsCfg.RootCAs)

	_, err = Config{UseTLS: true}.LoadTLSConfig()
	assert.Error(t, err)
}

func TestNewClientOptionsAuth(t *testing.T) {
	opts, err := NewClientOptions(Config{Broker: "tcp://localhost:1883", ClientID: "id", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "u", opts.Username)
	assert.Equal(t, "p", opts.Password)
}

func TestPublishManifest(t *testing.T) {
	mc := &mockClient{}
	useMock(t, mc)
	n, err := NewNotifier(Config{Topic: "datasets", QoS: 1, Retain: true})
	require.NoError(t, err)

	m := Manifest{RunID: "r1", Seed: 42, Stations: 50, Sessions: 25000, StationsPath: "s.parquet", SessionsPath: "x.parquet",
		GeneratedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, n.PublishManifest(m))

	require.Len(t, mc.published, 1)
	pub := mc.published[0]
	assert.Equal(t, "datasets", pub.topic)
	assert.Equal(t, byte(1), pub.qos)
	assert.True(t, pub.retained)
	var got Manifest
	require.NoError(t, json.Unmarshal(pub.payload, &got))
	assert.Equal(t, m, got)
}

func TestPublishManifestError(t *testing.T) {
	mc := &mockClient{publishErrs: []error{fmt.Errorf("net fail")}}
	useMock(t, mc)
	n, err := NewNotifier(Config{})
	require.NoError(t, err)
	assert.Error(t, n.PublishManifest(Manifest{RunID: "r1"}))
}

func TestConnectError(t *testing.T) {
	mc := &mockClient{connectErr: fmt.Errorf("refused")}
	useMock(t, mc)
	_, err := NewNotifier(Config{})
	assert.Error(t, err)
}

func TestSubscribeDeliversManifests(t *testing.T) {
	mc := &mockClient{}
	useMock(t, mc)
	n, err := NewNotifier(Config{Topic: "datasets"})
	require.NoError(t, err)

	var got []Manifest
	require.NoError(t, n.Subscribe(func(m Manifest) { got = append(got, m) }))
	require.Len(t, mc.subscribed, 1)
	assert.Equal(t, "datasets", mc.subscribed[0].topic)

	mc.handler(nil, mockMessage{[]byte(`{"run_id":"r2","stations":3}`)})
	mc.handler(nil, mockMessage{[]byte(`not json`)})
	require.Len(t, got, 1)
	assert.Equal(t, "r2", got[0].RunID)
	assert.Equal(t, 3, got[0].Stations)

	n.Disconnect()
	assert.True(t, mc.disconnected)
}

// mockClient implements pahoClient for tests
type mockClient struct {
	opts       *paho.ClientOptions
	connectErr error
	subscribed []struct {
		topic string
		qos   byte
	}
	handler   paho.MessageHandler
	published []struct {
		topic    string
		qos      byte
		retained bool
		payload  []byte
	}
	publishErrs  []error
	disconnected bool
}

func (m *mockClient) IsConnected() bool { return true }
func (m *mockClient) Connect() paho.Token {
	if m.connectErr != nil {
		return &dummyToken{err: m.connectErr}
	}
	if m.opts != nil && m.opts.OnConnect != nil {
		m.opts.OnConnect(m)
	}
	return &dummyToken{}
}
func (m *mockClient) Disconnect(uint) { m.disconnected = true }
func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	b, _ := payload.([]byte)
	m.published = append(m.published, struct {
		topic    string
		qos      byte
		retained bool
		payload  []byte
	}{topic, qos, retained, b})
	if len(m.publishErrs) > 0 {
		err := m.publishErrs[0]
		m.publishErrs = m.publishErrs[1:]
		return &dummyToken{err: err}
	}
	return &dummyToken{}
}
func (m *mockClient) Subscribe(topic string, qos byte, cb paho.MessageHandler) paho.Token {
	m.subscribed = append(m.subscribed, struct {
		topic string
		qos   byte
	}{topic, qos})
	m.handler = cb
	return &dummyToken{}
}
func (m *mockClient) SubscribeMultiple(map[string]byte, paho.MessageHandler) paho.Token {
	return &dummyToken{}
}
func (m *mockClient) Unsubscribe(...string) paho.Token        { return &dummyToken{} }
func (m *mockClient) AddRoute(string, paho.MessageHandler)    {}
func (m *mockClient) OptionsReader() paho.ClientOptionsReader { return paho.ClientOptionsReader{} }
func (m *mockClient) IsConnectionOpen() bool                  { return true }

type dummyToken struct{ err error }

func (d dummyToken) Wait() bool                     { return true }
func (d dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d dummyToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (d dummyToken) Error() error                   { return d.err }

type mockMessage struct{ p []byte }

func (m mockMessage) Duplicate() bool   { return false }
func (m mockMessage) Qos() byte         { return 0 }
func (m mockMessage) Retained() bool    { return false }
func (m mockMessage) Topic() string     { return "" }
func (m mockMessage) MessageID() uint16 { return 0 }
func (m mockMessage) Payload() []byte   { return m.p }
func (m mockMessage) Ack()              {}
