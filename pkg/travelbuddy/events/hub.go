package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisPrefix = "travelbuddy:events:"

// Hub delivers events to in-process subscribers. With a Redis client it
// also relays events between server instances.
type Hub struct {
	id     string
	redis  *redis.Client
	pubsub *redis.PubSub
	done   chan struct{}

	mu    sync.RWMutex
	subs  map[string]map[*Subscription]struct{}
	sinks []Sink
}

// Subscription receives the events of one topic
type Subscription struct {
	Topic  string
	Events chan Event
}

// envelope is the Redis wire format.
type envelope struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

// NewHub creates a hub. If redisClient is non-nil the hub subscribes to the
// shared channel before returning; when that fails the hub stays local.
func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		id:   uuid.NewString(),
		subs: map[string]map[*Subscription]struct{}{},
		done: make(chan struct{}),
	}

	if redisClient == nil {
		close(h.done)
		return h
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubsub := redisClient.PSubscribe(ctx, redisPrefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Printf("redis subscribe error, events stay local: %v", err)
		pubsub.Close()
		close(h.done)
		return h
	}

	h.redis = redisClient
	h.pubsub = pubsub
	go h.relay()
	return h
}

// AddSink mirrors every published event to s.
func (h *Hub) AddSink(s Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sinks = append(h.sinks, s)
}

// Subscribe registers interest in a topic.
func (h *Hub) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		Topic:  topic,
		Events: make(chan Event, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[topic] == nil {
		h.subs[topic] = map[*Subscription]struct{}{}
	}
	h.subs[topic][sub] = struct{}{}
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Calling it
// twice is harmless.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	topicSubs, ok := h.subs[sub.Topic]
	if !ok {
		return
	}
	if _, ok := topicSubs[sub]; !ok {
		return
	}
	delete(topicSubs, sub)
	if len(topicSubs) == 0 {
		delete(h.subs, sub.Topic)
	}
	close(sub.Events)
}

// Publish delivers e locally, relays it through Redis and hands it to every
// sink. Failures are logged.
func (h *Hub) Publish(ctx context.Context, e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	h.deliver(e)

	if h.redis != nil {
		payload, err := json.Marshal(envelope{Origin: h.id, Event: e})
		if err == nil {
			err = h.redis.Publish(ctx, redisPrefix+e.Topic, payload).Err()
		}
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}

	h.mu.RLock()
	sinks := h.sinks
	h.mu.RUnlock()
	for _, s := range sinks {
		if err := s.Send(ctx, e); err != nil {
			log.Printf("event sink error for %s: %v", e.Type, err)
		}
	}
}

// Close stops the Redis relay. Local subscriptions keep working.
func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	err := h.pubsub.Close()
	<-h.done
	return err
}

func (h *Hub) deliver(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[e.Topic] {
		select {
		case sub.Events <- e:
		default:
		}
	}
}

func (h *Hub) relay() {
	defer close(h.done)

	for msg := range h.pubsub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Printf("dropping malformed event on %s: %v", msg.Channel, err)
			continue
		}
		if env.Origin == h.id {
			continue
		}
		h.deliver(env.Event)
	}
}
