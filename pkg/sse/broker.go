package sse

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// Broker fans out "data changed" events to the streaming connections
// subscribed to a topic. One topic per broadcastable resource
// (announcements, gallery, contact, notifications). Single-process only:
// there is no cross-instance fan-out.
type Broker struct {
	mu      sync.Mutex
	topics  map[string]map[chan []byte]struct{}
	onCount func(topic string, count int)
}

func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string]map[chan []byte]struct{}),
	}
}

// OnSubscriberChange registers a hook invoked with the new listener count
// whenever a topic gains or loses a subscriber. Feeds the SSE client gauge.
func (b *Broker) OnSubscriberChange(fn func(topic string, count int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onCount = fn
}

// Subscribe registers a listener on topic. The returned channel is buffered;
// a slow consumer drops intermediate snapshots rather than blocking Publish.
func (b *Broker) Subscribe(topic string) chan []byte {
	ch := make(chan []byte, 8)
	b.mu.Lock()
	defer b.mu.Unlock()
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[chan []byte]struct{})
		b.topics[topic] = subs
	}
	subs[ch] = struct{}{}
	if b.onCount != nil {
		b.onCount(topic, len(subs))
	}
	return ch
}

// Unsubscribe removes a listener. Must be called on client disconnect,
// otherwise listeners accumulate per connect/disconnect cycle.
func (b *Broker) Unsubscribe(topic string, ch chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if subs, ok := b.topics[topic]; ok {
		if _, ok := subs[ch]; ok {
			delete(subs, ch)
			close(ch)
			if b.onCount != nil {
				b.onCount(topic, len(subs))
			}
		}
	}
}

// Publish sends the full updated collection to every listener on topic.
func (b *Broker) Publish(topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("[SSE] marshal payload for topic %s: %v", topic, err)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.topics[topic] {
		select {
		case ch <- data:
		default:
		}
	}
}

// SubscriberCount reports the number of active listeners on topic.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}

// Stream serves a text/event-stream response: the current full collection
// as the first event, then the full collection again on every change.
// Unsubscribes when the client disconnects.
func (b *Broker) Stream(c *gin.Context, topic string, initial func() (interface{}, error)) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	snapshot, err := initial()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load current state"})
		return
	}
	first, err := json.Marshal(snapshot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode current state"})
		return
	}

	ch := b.Subscribe(topic)
	defer b.Unsubscribe(topic, ch)

	fmt.Fprintf(c.Writer, "data: %s\n\n", first)
	flusher.Flush()

	for {
		select {
		case data, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", data)
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
