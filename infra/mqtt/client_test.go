package mqtt

import (
	"crypto/tls"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/edgecover/core/activation"
)

// fakeBroker records what the publisher sends and subscribes to.
type fakeBroker struct {
	mu          sync.Mutex
	opts        *paho.ClientOptions
	subs        map[string]byte
	sent        []sentMessage
	publishErrs []error
}

type sentMessage struct {
	topic   string
	qos     byte
	payload []byte
}

func (f *fakeBroker) IsConnected() bool { return true }

func (f *fakeBroker) Connect() paho.Token {
	if f.opts != nil && f.opts.OnConnect != nil {
		f.opts.OnConnect(f)
	}
	return token{}
}

func (f *fakeBroker) Disconnect(uint) {}

func (f *fakeBroker) Publish(topic string, qos byte, _ bool, payload interface{}) paho.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, _ := payload.([]byte)
	f.sent = append(f.sent, sentMessage{topic: topic, qos: qos, payload: b})
	if len(f.publishErrs) > 0 {
		err := f.publishErrs[0]
		f.publishErrs = f.publishErrs[1:]
		return token{err: err}
	}
	return token{}
}

func (f *fakeBroker) Subscribe(topic string, qos byte, _ paho.MessageHandler) paho.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs == nil {
		f.subs = map[string]byte{}
	}
	f.subs[topic] = qos
	return token{}
}

func (f *fakeBroker) AddRoute(string, paho.MessageHandler)    {}
func (f *fakeBroker) IsConnectionOpen() bool                  { return true }
func (f *fakeBroker) OptionsReader() paho.ClientOptionsReader { return paho.ClientOptionsReader{} }
func (f *fakeBroker) SubscribeMultiple(map[string]byte, paho.MessageHandler) paho.Token {
	return token{}
}
func (f *fakeBroker) Unsubscribe(...string) paho.Token { return token{} }

type token struct{ err error }

func (t token) Wait() bool                     { return true }
func (t token) WaitTimeout(time.Duration) bool { return true }
func (t token) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t token) Error() error { return t.err }

// ackMessage is an inbound message on the ack topic.
type ackMessage []byte

func (m ackMessage) Duplicate() bool   { return false }
func (m ackMessage) Qos() byte         { return 1 }
func (m ackMessage) Retained() bool    { return false }
func (m ackMessage) Topic() string     { return activation.DefaultAckTopic }
func (m ackMessage) MessageID() uint16 { return 0 }
func (m ackMessage) Payload() []byte   { return m }
func (m ackMessage) Ack()              {}

func ackFor(t *testing.T, commandID string, device int) ackMessage {
	t.Helper()
	b, err := json.Marshal(activation.Ack{CommandID: commandID, DeviceID: device})
	require.NoError(t, err)
	return ackMessage(b)
}

// newTestPublisher connects a PahoPublisher to a fakeBroker.
func newTestPublisher(t *testing.T, cfg Config) (*PahoPublisher, *fakeBroker) {
	t.Helper()
	fb := &fakeBroker{}
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { fb.opts = o; return fb }
	t.Cleanup(func() {
		newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) }
	})
	if cfg.Broker == "" {
		cfg.Broker = "tcp://localhost:1883"
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "edgecover-test"
	}
	p, err := NewPahoPublisher(cfg)
	require.NoError(t, err)
	return p, fb
}

func TestActivate_PublishesCommandOnDeviceTopic(t *testing.T) {
	p, fb := newTestPublisher(t, Config{QoS: map[string]byte{"command": 1, "ack": 2}})
	assert.Equal(t, byte(2), fb.subs[activation.DefaultAckTopic])

	before := time.Now().UnixMilli()
	id, err := p.Activate(7, 3)
	require.NoError(t, err)

	require.Len(t, fb.sent, 1)
	msg := fb.sent[0]
	assert.Equal(t, "edgecover/device/7/activate", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	var cmd activation.Command
	require.NoError(t, json.Unmarshal(msg.payload, &cmd))
	assert.Equal(t, id, cmd.CommandID)
	assert.Equal(t, 7, cmd.DeviceID)
	assert.Equal(t, 3, cmd.NodeID)
	assert.GreaterOrEqual(t, cmd.Timestamp, before)
}

func TestActivate_CustomAckTopic(t *testing.T) {
	_, fb := newTestPublisher(t, Config{AckTopic: "site-a/acks"})
	_, ok := fb.subs["site-a/acks"]
	assert.True(t, ok)
	_, ok = fb.subs[activation.DefaultAckTopic]
	assert.False(t, ok)
}

func TestWaitForAck_AckBeforeWait(t *testing.T) {
	p, _ := newTestPublisher(t, Config{})
	id, err := p.Activate(1, 0)
	require.NoError(t, err)

	p.onAck(nil, ackFor(t, id, 1))
	p.onAck(nil, ackFor(t, id, 1)) // duplicate delivery must not block

	ok, err := p.WaitForAck(id, 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWaitForAck_IgnoresForeignAndMalformedAcks(t *testing.T) {
	p, _ := newTestPublisher(t, Config{})
	id, err := p.Activate(2, 0)
	require.NoError(t, err)
	other, err := p.Activate(3, 0)
	require.NoError(t, err)

	p.onAck(nil, ackMessage(`{not json`))
	p.onAck(nil, ackFor(t, "never-sent", 2))
	p.onAck(nil, ackFor(t, other, 3))

	ok, err := p.WaitForAck(id, 5*time.Millisecond)
	assert.False(t, ok)
	assert.ErrorIs(t, err, activation.ErrAckTimeout)

	ok, err = p.WaitForAck(other, 5*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWaitForAck_CommandForgottenAfterWait(t *testing.T) {
	p, _ := newTestPublisher(t, Config{})
	id, err := p.Activate(4, 1)
	require.NoError(t, err)

	_, err = p.WaitForAck(id, time.Millisecond)
	require.ErrorIs(t, err, activation.ErrAckTimeout)
	assert.Contains(t, err.Error(), id)

	_, err = p.WaitForAck(id, time.Millisecond)
	assert.ErrorIs(t, err, activation.ErrUnknownCommand)
}

func TestActivate_RetriesThenSucceeds(t *testing.T) {
	p, fb := newTestPublisher(t, Config{MaxRetries: 2, BackoffMS: 1})
	fb.publishErrs = []error{errors.New("broker busy"), errors.New("broker busy")}

	id, err := p.Activate(5, 0)
	require.NoError(t, err)
	assert.Len(t, fb.sent, 3)
	for _, m := range fb.sent {
		assert.Equal(t, activation.Topic(5), m.topic)
	}
	p.onAck(nil, ackFor(t, id, 5))
	ok, err := p.WaitForAck(id, 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestActivate_RetriesExhausted(t *testing.T) {
	p, fb := newTestPublisher(t, Config{MaxRetries: 1, BackoffMS: 1})
	fail := errors.New("broker down")
	fb.publishErrs = []error{fail, fail}

	id, err := p.Activate(6, 0)
	assert.ErrorIs(t, err, fail)
	assert.Empty(t, id)
	assert.Len(t, fb.sent, 2)
	assert.Empty(t, p.ackChans, "failed commands must not stay registered")
}

func TestActivate_NegativeRetriesPublishOnce(t *testing.T) {
	p, fb := newTestPublisher(t, Config{MaxRetries: -3})
	fb.publishErrs = []error{errors.New("broker down")}
	_, err := p.Activate(1, 0)
	assert.Error(t, err)
	assert.Len(t, fb.sent, 1)
	assert.Equal(t, 100*time.Millisecond, p.backoff)
}

func TestNewClientOptions(t *testing.T) {
	opts, err := NewClientOptions(Config{
		Broker: "tcp://broker:1883", ClientID: "edge-1",
		Username: "node", Password: "secret",
		LWTTopic: "edgecover/status", LWTPayload: "offline", LWTQoS: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "node", opts.Username)
	assert.Equal(t, "secret", opts.Password)
	assert.True(t, opts.AutoReconnect)
	assert.True(t, opts.WillEnabled)
	assert.Equal(t, "edgecover/status", opts.WillTopic)
	assert.Equal(t, []byte("offline"), opts.WillPayload)

	opts, err = NewClientOptions(Config{Broker: "tcp://broker:1883", AuthMethod: "certificate", Username: "node"})
	require.NoError(t, err)
	assert.Empty(t, opts.Username, "certificate auth ignores credentials")
}

func TestLoadTLSConfig(t *testing.T) {
	preset := &tls.Config{MinVersion: tls.VersionTLS13}
	got, err := Config{UseTLS: true, TLSConfig: preset}.LoadTLSConfig()
	require.NoError(t, err)
	assert.Same(t, preset, got)

	_, err = Config{UseTLS: true, ClientCert: "cert.pem"}.LoadTLSConfig()
	assert.ErrorContains(t, err, "requires client_cert, client_key and ca_bundle")

	dir := t.TempDir()
	_, err = Config{
		UseTLS:     true,
		ClientCert: filepath.Join(dir, "missing.pem"),
		ClientKey:  filepath.Join(dir, "missing.key"),
		CABundle:   filepath.Join(dir, "ca.pem"),
	}.LoadTLSConfig()
	assert.ErrorContains(t, err, "load cert")

	_, err = NewClientOptions(Config{Broker: "tcp://broker:8883", UseTLS: true})
	assert.Error(t, err)
}
