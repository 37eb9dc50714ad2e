package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const timeout = 5 * time.Second

// Options identifies a broker and topic. Username and Password are
// optional.
type Options struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Retain   bool
	Username string
	Password string
}

// Publish connects to the broker, publishes payload to opts.Topic, and
// disconnects. Each call uses a fresh connection.
func Publish(opts Options, payload []byte) error {
	clientOpts := pahomqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetConnectTimeout(timeout)

	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		clientOpts.SetPassword(opts.Password)
	}

	client := pahomqtt.NewClient(clientOpts)
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: connect %s: timeout", opts.Broker)
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect %s: %w", opts.Broker, tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(opts.Topic, opts.QoS, opts.Retain, payload)
	if !pub.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: publish %s: timeout", opts.Topic)
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish %s: %w", opts.Topic, pub.Error())
	}
	return nil
}
