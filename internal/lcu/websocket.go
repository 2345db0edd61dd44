package lcu

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"skinvault/internal/constants"
)

// EventType represents LCU WebSocket (WAMP) message types
type EventType int

const (
	EventTypeSubscribe   EventType = 5
	EventTypeUnsubscribe EventType = 6
	EventTypeEvent       EventType = 8
)

// InventoryEvent fires when any champion or skin inventory changes
const InventoryEvent = "OnJsonApiEvent_lol-champions_v1_inventories"

// Event is the payload of a JSON API event
type Event struct {
	EventType string          `json:"eventType"` // "Create", "Update", "Delete"
	URI       string          `json:"uri"`
	Data      json.RawMessage `json:"data"`
}

// EventHandler is called from the listen goroutine for each subscribed event
type EventHandler func(name string, event Event)

// EventClient handles the LCU WebSocket connection
type EventClient struct {
	conn        *websocket.Conn
	mu          sync.Mutex
	isConnected bool
	stopChan    chan struct{}
	done        chan struct{}
	handlers    map[string]EventHandler
}

// NewEventClient creates a new WebSocket client
func NewEventClient() *EventClient {
	done := make(chan struct{})
	close(done)
	return &EventClient{
		stopChan: make(chan struct{}),
		done:     done,
		handlers: make(map[string]EventHandler),
	}
}

// On registers a handler for an event name; call before Connect
func (w *EventClient) On(event string, handler EventHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[event] = handler
}

// Connect establishes the WebSocket connection and subscribes to every registered event
func (w *EventClient) Connect(creds *Credentials) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isConnected {
		return nil
	}

	dialer := websocket.Dialer{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
		HandshakeTimeout: constants.LocalServiceTimeout,
	}

	url := fmt.Sprintf("wss://127.0.0.1:%d", creds.Port)
	header := http.Header{}
	header.Set("Authorization", "Basic "+basicAuth(constants.AuthUser, creds.Password))

	conn, _, err := dialer.Dial(url, header)
	if err != nil {
		return fmt.Errorf("failed to connect to LCU WebSocket: %w", err)
	}

	for event := range w.handlers {
		if err := conn.WriteJSON([]interface{}{EventTypeSubscribe, event}); err != nil {
			conn.Close()
			return fmt.Errorf("failed to subscribe to %s: %w", event, err)
		}
	}

	w.conn = conn
	w.isConnected = true
	w.done = make(chan struct{})

	go w.listen(conn, w.stopChan, w.done)

	return nil
}

// listen reads messages from the WebSocket until it closes or Disconnect is called
func (w *EventClient) listen(conn *websocket.Conn, stop <-chan struct{}, done chan<- struct{}) {
	defer func() {
		w.mu.Lock()
		if w.conn == conn {
			w.isConnected = false
			w.conn = nil
		}
		w.mu.Unlock()
		conn.Close()
		close(done)
	}()

	for {
		select {
		case <-stop:
			return
		default:
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}

			w.handleMessage(message)
		}
	}
}

// handleMessage decodes [8, "EventName", {payload}] frames and dispatches them
func (w *EventClient) handleMessage(data []byte) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return
	}

	if len(raw) < 3 {
		return
	}

	var eventType EventType
	if err := json.Unmarshal(raw[0], &eventType); err != nil {
		return
	}

	if eventType != EventTypeEvent {
		return
	}

	var eventName string
	if err := json.Unmarshal(raw[1], &eventName); err != nil {
		return
	}

	w.mu.Lock()
	handler := w.handlers[eventName]
	w.mu.Unlock()
	if handler == nil {
		return
	}

	var event Event
	if err := json.Unmarshal(raw[2], &event); err != nil {
		return
	}
	handler(eventName, event)
}

// Done is closed once the listen loop exits
func (w *EventClient) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// Disconnect unsubscribes from every registered event and closes the WebSocket connection
func (w *EventClient) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()

	close(w.stopChan)
	if w.conn != nil {
		w.conn.SetWriteDeadline(time.Now().Add(time.Second))
		for event := range w.handlers {
			w.conn.WriteJSON([]interface{}{EventTypeUnsubscribe, event})
		}
		w.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		w.conn.Close()
		w.conn = nil
	}
	w.isConnected = false
	w.stopChan = make(chan struct{})
}

// IsConnected returns whether the WebSocket is connected
func (w *EventClient) IsConnected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isConnected
}
