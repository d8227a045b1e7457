package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"HelioCast/internal/domain/models"
	drepo "HelioCast/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements an ObservationStream backed by the observatory feed
// WebSocket. Each frame carries one daily relative sunspot number from one
// reporting station.
type Client struct {
	apiKey         string
	websocketURL   string
	stations       []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a new feed ObservationStream.
func New(apiKey, websocketURL string, stations []string, reconnectDelay, pingInterval time.Duration) drepo.ObservationStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		stations:       stations,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("feed connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("feed: connected")
	return nil
}

// Subscribe subscribes to configured stations.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("feed not connected")
	}
	for _, s := range c.stations {
		msg := map[string]string{"type": "subscribe", "station": s}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", s, err)
		}
		log.Printf("feed: subscribed %s", s)
	}
	return nil
}

type feedObservation struct {
	S string  `json:"s"`
	V float64 `json:"v"`
	T int64   `json:"t"` // ms
}

type feedMessage struct {
	Type string            `json:"type"`
	Data []feedObservation `json:"data"`
}

// Read streams Observation events and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.Observation, <-chan error) {
	obs := make(chan *models.Observation, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(obs)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("feed conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("feed read: %w", err)
					return
				}
				var m feedMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-observation frames
					continue
				}
				if m.Type != "observation" {
					continue
				}
				for _, d := range m.Data {
					sec := d.T / 1000
					o := &models.Observation{Station: d.S, Timestamp: sec, Value: d.V, Source: "feed"}
					select {
					case obs <- o:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return obs, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
