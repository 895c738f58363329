package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

const (
	// Write timeout for control frames.
	writeWait = 10 * time.Second

	// Read deadline; the hub pings well inside this interval.
	pongWait = 60 * time.Second

	// Ping period, must be shorter than pongWait.
	pingPeriod = 25 * time.Second

	maxMessageSize = 1024 * 16
)

// Message is the family hub's wire format. The agent only cares about limit
// change signals; everything else is ignored.
type Message struct {
	Type          string `json:"type"`
	IsChangeLimit bool   `json:"isChangeLimit,omitempty"`
}

// Client keeps a realtime connection to the family hub so limit edits made
// in the parent app reach the device faster than the next poll.
type Client struct {
	URL         string
	DeviceToken string

	// OnLimitChange fires on every limit-change signal from the hub.
	OnLimitChange func()
}

func NewClient(url, deviceToken string, onLimitChange func()) *Client {
	return &Client{URL: url, DeviceToken: deviceToken, OnLimitChange: onLimitChange}
}

// Run connects and reads until the context is cancelled, reconnecting with
// exponential backoff on any failure.
func (c *Client) Run(ctx context.Context) {
	if c.URL == "" {
		log.Println("[WS] No hub URL configured, realtime push disabled")
		return
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	for {
		err := backoff.Retry(func() error {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return c.readLoop(ctx)
		}, policy)

		if ctx.Err() != nil {
			return
		}
		log.Printf("[WS] Connection lost: %v, reconnecting", err)
		policy.Reset()
	}
}

func (c *Client) readLoop(ctx context.Context) error {
	header := http.Header{}
	if c.DeviceToken != "" {
		header.Set("Authorization", "Bearer "+c.DeviceToken)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, header)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Println("[WS] Connected to family hub")

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Close the connection when the context ends so ReadMessage unblocks,
	// and keep the connection alive with pings meanwhile.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				conn.Close()
				return
			case <-done:
				return
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					conn.Close()
					return
				}
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("[WS] Ignoring malformed message: %v", err)
			continue
		}

		if msg.IsChangeLimit || msg.Type == "limit_change" || msg.Type == "schedule_change" {
			log.Println("[WS] Limit change signal received")
			if c.OnLimitChange != nil {
				c.OnLimitChange()
			}
		}
	}
}
