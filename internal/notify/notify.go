// Package notify carries transient user-facing messages from the storefront to the browser.
package notify

import (
	"encoding/json"
	"fmt"
)

// Kind selects the visual treatment of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// EventNotify is the HX-Trigger event name the client script listens for.
const EventNotify = "notify"

// Notification is one message shown to the visitor.
type Notification struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Notifier receives notifications.
type Notifier interface {
	Notify(message string, kind Kind)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, kind Kind)

func (f NotifierFunc) Notify(message string, kind Kind) { f(message, kind) }

// Collector accumulates the notifications raised while serving one request.
type Collector struct {
	items []Notification
}

func (c *Collector) Notify(message string, kind Kind) {
	c.items = append(c.items, Notification{Message: message, Kind: kind})
}

// Items returns the collected notifications in emission order.
func (c *Collector) Items() []Notification {
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of collected notifications.
func (c *Collector) Len() int { return len(c.items) }

// Last returns the most recent notification.
func (c *Collector) Last() (Notification, bool) {
	if len(c.items) == 0 {
		return Notification{}, false
	}
	return c.items[len(c.items)-1], true
}

type payload struct {
	Items []Notification `json:"items"`
}

// Trigger encodes notifications and extra event names into an HX-Trigger header value.
// Extra events carry a null detail. An empty result means there is nothing to send.
func Trigger(items []Notification, events ...string) (string, error) {
	if len(items) == 0 && len(events) == 0 {
		return "", nil
	}
	out := make(map[string]any, len(events)+1)
	if len(items) > 0 {
		out[EventNotify] = payload{Items: items}
	}
	for _, e := range events {
		if e == "" {
			continue
		}
		out[e] = nil
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("notify: encode trigger: %w", err)
	}
	return string(b), nil
}

// JSON encodes notifications for embedding in a full page.
func JSON(items []Notification) (string, error) {
	if items == nil {
		items = []Notification{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("notify: encode: %w", err)
	}
	return string(b), nil
}
