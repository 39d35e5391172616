package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Relay rebroadcasts announcement-sync frames between connected browser
// clients. It is the server-side anchor for the clients' peer-to-peer
// fallback: best effort, no state kept, last write observed wins.
type Relay struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewRelay() *Relay {
	return &Relay{clients: make(map[*websocket.Conn]bool)}
}

// ClientsCount reports the number of connected relay clients.
func (r *Relay) ClientsCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

func (r *Relay) broadcast(sender *websocket.Conn, message []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for c := range r.clients {
		if c == sender {
			continue
		}
		if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Warnf("[WS] write error: %v", err)
			_ = c.Close()
			delete(r.clients, c)
		} else {
			n++
		}
	}
	return n
}

func (r *Relay) remove(c *websocket.Conn) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
	return len(r.clients)
}

// Handler upgrades the connection and relays every received frame to all
// other connected clients.
func (r *Relay) Handler(w http.ResponseWriter, req *http.Request) {
	c, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Warnf("[WS] upgrade: %v", err)
		return
	}
	r.mu.Lock()
	r.clients[c] = true
	total := len(r.clients)
	r.mu.Unlock()
	log.Infof("[WS] relay client connected (%d total)", total)

	// keepalive pings
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(20 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				_ = c.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := c.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(10*time.Second)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// read loop w/ pong
	c.SetReadLimit(1 << 20)
	_ = c.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.SetPongHandler(func(string) error {
		_ = c.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			total := r.remove(c)
			log.Infof("[WS] relay client disconnected (%d total)", total)
			_ = c.Close()
			close(done)
			return
		}
		_ = c.SetReadDeadline(time.Now().Add(60 * time.Second))
		r.broadcast(c, message)
	}
}
