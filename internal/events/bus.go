package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const subscriberQueueSize = 20

type EventType string

// Domain events published by the ceremonial apps.
const (
	AvatarForged      EventType = "avatar.forged"
	AvatarRankUpdated EventType = "avatar.rank_updated"
	HymnComposed      EventType = "hymn.composed"
	HymnPerformed     EventType = "hymn.performed"
	SigilIssued       EventType = "sigil.issued"
	SilenceProclaimed EventType = "silence.proclaimed"
)

type SubscriberID int

type HandlerFunc func(Event)

type Event struct {
	Timestamp time.Time
	Data      any
	Type      EventType
}

func NewEvent(eventType EventType, data any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Bus is a typed pub/sub event bus. Subscribers receive events over buffered
// channels; Publish blocks on slow subscribers.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[EventType]map[SubscriberID]chan Event
	lastSubID   SubscriberID
	metrics     *busMetrics
	logger      *slog.Logger
}

func NewBus(promRegistry prometheus.Registerer, logger *slog.Logger) *Bus {
	b := &Bus{
		subscribers: make(map[EventType]map[SubscriberID]chan Event),
		logger:      logger,
	}
	if promRegistry != nil {
		b.initMetrics(promRegistry)
	}
	return b
}

// Subscribe registers a consumer for events of a particular type.
func (b *Bus) Subscribe(eventType EventType) (SubscriberID, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subID := b.lastSubID + 1
	b.lastSubID = subID
	if _, ok := b.subscribers[eventType]; !ok {
		b.subscribers[eventType] = make(map[SubscriberID]chan Event)
	}
	ch := make(chan Event, subscriberQueueSize)
	b.subscribers[eventType][subID] = ch
	if b.metrics != nil {
		b.metrics.subscribers.WithLabelValues(string(eventType)).Inc()
	}
	return subID, ch
}

// SubscribeFunc registers a callback invoked for each event of the given type.
func (b *Bus) SubscribeFunc(eventType EventType, handler HandlerFunc) SubscriberID {
	subID, ch := b.Subscribe(eventType)
	go func() {
		for evt := range ch {
			handler(evt)
		}
	}()
	return subID
}

// Unsubscribe stops delivery for an existing subscriber and closes its channel.
func (b *Bus) Unsubscribe(eventType EventType, subID SubscriberID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs, ok := b.subscribers[eventType]
	if !ok {
		return
	}
	ch, ok := subs[subID]
	if !ok {
		return
	}
	delete(subs, subID)
	if len(subs) == 0 {
		delete(b.subscribers, eventType)
	}
	close(ch)
	if b.metrics != nil {
		b.metrics.subscribers.WithLabelValues(string(eventType)).Dec()
	}
}

// Publish delivers an event to every subscriber of its type. The read lock is
// held across delivery so Unsubscribe cannot close a channel mid-send.
func (b *Bus) Publish(eventType EventType, evt Event) {
	b.mu.RLock()
	subs := b.subscribers[eventType]
	delivered := 0
	for _, ch := range subs {
		ch <- evt
		delivered++
	}
	b.mu.RUnlock()

	if b.metrics != nil {
		b.metrics.eventsTotal.WithLabelValues(string(eventType)).Inc()
	}
	if b.logger != nil {
		b.logger.Debug("event published", "type", string(eventType), "subscribers", delivered)
	}
}
