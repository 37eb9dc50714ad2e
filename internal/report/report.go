// Package report announces finished generation runs over the channels
// configured in config.Notify.
package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Mavwarf/mkicon/internal/config"
	"github.com/Mavwarf/mkicon/internal/history"
	"github.com/Mavwarf/mkicon/internal/mqtt"
	"github.com/Mavwarf/mkicon/internal/webhook"
)

// DefaultClientID is used when no MQTT client id is configured.
const DefaultClientID = "mkicon"

type fileJSON struct {
	Name   string `json:"name"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Bytes  int    `json:"bytes"`
	SHA256 string `json:"sha256"`
}

type runJSON struct {
	Time      string     `json:"time"`
	Host      string     `json:"host,omitempty"`
	OutputDir string     `json:"output_dir"`
	Color     string     `json:"color"`
	Files     []fileJSON `json:"files"`
}

// Payload renders run as the JSON document sent to every channel.
func Payload(run history.Run) ([]byte, error) {
	host, _ := os.Hostname()
	doc := runJSON{
		Time:      run.Time.UTC().Format(time.RFC3339),
		Host:      host,
		OutputDir: run.OutputDir,
		Color:     run.Color,
		Files:     make([]fileJSON, 0, len(run.Files)),
	}
	for _, f := range run.Files {
		doc.Files = append(doc.Files, fileJSON(f))
	}
	return json.Marshal(doc)
}

// Enabled reports whether any channel is configured.
func Enabled(n config.Notify) bool {
	return n.WebhookURL != "" || n.MQTT.Broker != ""
}

// Send delivers run to every configured channel and returns one error per
// failed channel. A failing channel does not stop the others.
func Send(n config.Notify, run history.Run) []error {
	if !Enabled(n) {
		return nil
	}
	payload, err := Payload(run)
	if err != nil {
		return []error{err}
	}

	var errs []error
	if n.WebhookURL != "" {
		if err := webhook.Send(n.WebhookURL, payload, n.WebhookHeaders); err != nil {
			errs = append(errs, err)
		}
	}
	if n.MQTT.Broker != "" {
		clientID := n.MQTT.ClientID
		if clientID == "" {
			clientID = DefaultClientID
		}
		err := mqtt.Publish(mqtt.Options{
			Broker:   n.MQTT.Broker,
			ClientID: clientID,
			Topic:    n.MQTT.Topic,
			QoS:      n.MQTT.QoS,
			Retain:   n.MQTT.Retain,
			Username: os.ExpandEnv(n.MQTT.Username),
			Password: os.ExpandEnv(n.MQTT.Password),
		}, payload)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
