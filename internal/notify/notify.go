package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/model"
)

// Notifier announces finished runs.
type Notifier interface {
	Publish(ctx context.Context, run *model.Run) error
	Close()
}

type nop struct{}

func Nop() Notifier { return nop{} }

func (nop) Publish(context.Context, *model.Run) error { return nil }
func (nop) Close()                                    {}

const waitTimeout = 10 * time.Second

type mqttNotifier struct {
	client mqtt.Client
	topic  string
}

// NewMQTT connects to broker (e.g. tcp://localhost:1883) and publishes each
// run as JSON to topic at QoS 0.
func NewMQTT(broker, topic, clientID string) (Notifier, error) {
	opt := mqtt.NewClientOptions()
	opt.AddBroker(broker)
	opt.SetClientID(clientID)
	opt.SetAutoReconnect(true)
	client := mqtt.NewClient(opt)
	tok := client.Connect()
	if !tok.WaitTimeout(waitTimeout) {
		return nil, fmt.Errorf("mqtt connect %s: timed out", broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, err)
	}
	return &mqttNotifier{client: client, topic: topic}, nil
}

func (m *mqttNotifier) Publish(ctx context.Context, run *model.Run) error {
	payload, err := Payload(run)
	if err != nil {
		return err
	}
	tok := m.client.Publish(m.topic, 0, false, payload)
	select {
	case <-tok.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(waitTimeout):
		return errors.New("mqtt publish: timed out")
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	return nil
}

func (m *mqttNotifier) Close() { m.client.Disconnect(250) }

// Payload is the JSON message published for run.
func Payload(run *model.Run) ([]byte, error) {
	mins, secs, ms := run.ElapsedParts()
	return json.Marshal(struct {
		*model.Run
		Ratio   float64 `json:"ratio_percent"`
		Elapsed string  `json:"elapsed"`
	}{run, run.Ratio(), fmt.Sprintf("%d min %d sec %d ms", mins, secs, ms)})
}
