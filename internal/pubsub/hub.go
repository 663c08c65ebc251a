package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"

	"github.com/Guizzs26/ballot_register/internal/model"
)

const sendBuffer = 16

var ErrHubClosed = errors.New("hub closed")

// one client connected via websocket
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans standings snapshots out to every connected client. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	// last snapshot, replayed to clients as they join
	last []byte
	done chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.Clients {
				close(c.Send)
				delete(h.Clients, c)
			}
			return

		case client := <-h.Register:
			h.Clients[client] = true
			if h.last != nil {
				client.Send <- h.last
			}

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}

		case data := <-h.Broadcast:
			h.last = data
			for c := range h.Clients {
				select {
				case c.Send <- data:

				default:
					// too slow to keep up, drop it
					close(c.Send)
					delete(h.Clients, c)
				}
			}
		}
	}
}

// PublishStandings lets the hub act as a processing.StandingsSink.
func (h *Hub) PublishStandings(ctx context.Context, s model.Standings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal standings: %w", err)
	}

	select {
	case h.Broadcast <- data:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ServeWS upgrades the request and streams standings until either side goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("Error accepting websocket: %v", err)
		return
	}

	client := &Client{Hub: h, Conn: conn, Send: make(chan []byte, sendBuffer)}
	select {
	case h.Register <- client:
	case <-h.done:
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	case <-r.Context().Done():
		conn.Close(websocket.StatusNormalClosure, "")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// WritePump sends messages from the hub to the WebSocket connection
func (c *Client) WritePump(ctx context.Context) {
	defer func() {
		c.Conn.Close(websocket.StatusNormalClosure, "")
	}()

	for m := range c.Send {
		err := c.Conn.Write(ctx, websocket.MessageText, m)
		if err != nil {
			log.Printf("Error writing to client: %v", err)
			break
		}
	}
}

// ReadPump keeps the connection's control frames flowing and unregisters the
// client once the connection is gone.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		select {
		case c.Hub.Unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		_, _, err := c.Conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				log.Println("Client disconnected normally.")
			} else {
				log.Printf("Error reading from client: %v", err)
			}
			return
		}
	}
}
