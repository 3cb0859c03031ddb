package events

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// DefaultBufferSize is the per-subscriber channel size used when none is given.
const DefaultBufferSize = 64

// Hub fans events out to in-process subscribers. Publishing never blocks:
// a subscriber whose buffer is full misses the event.
type Hub struct {
	mu         sync.RWMutex
	subs       map[*Subscription]struct{}
	bufferSize int
	log        zerolog.Logger
}

// NewHub creates a Hub. bufferSize <= 0 uses DefaultBufferSize.
func NewHub(bufferSize int, log zerolog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		subs:       make(map[*Subscription]struct{}),
		bufferSize: bufferSize,
		log:        log.With().Str("component", "event_hub").Logger(),
	}
}

// Subscription receives events for one course, or for every course when
// its course code is empty.
type Subscription struct {
	hub        *Hub
	courseCode string
	ch         chan Event
	dropped    atomic.Int64
	once       sync.Once
}

// Subscribe registers a new subscriber. Callers must Close it when done.
func (h *Hub) Subscribe(courseCode string) *Subscription {
	s := &Subscription{
		hub:        h,
		courseCode: courseCode,
		ch:         make(chan Event, h.bufferSize),
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()

	h.log.Debug().Str("course_code", courseCode).Int("subscribers", n).Msg("Subscriber added")
	return s
}

// Events is closed once the subscription is closed.
func (s *Subscription) Events() <-chan Event { return s.ch }

// CourseCode is the filter of the subscription; "" means all courses.
func (s *Subscription) CourseCode() string { return s.courseCode }

// Dropped counts events missed because the buffer was full.
func (s *Subscription) Dropped() int64 { return s.dropped.Load() }

// Close unregisters the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		close(s.ch)
		s.hub.mu.Unlock()
	})
}

func (s *Subscription) wants(e Event) bool {
	return s.courseCode == "" || s.courseCode == e.CourseCode
}

// Publish implements Publisher.
func (h *Hub) Publish(_ context.Context, e Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs {
		if !s.wants(e) {
			continue
		}
		select {
		case s.ch <- e:
		default:
			s.dropped.Add(1)
			h.log.Warn().
				Str("course_code", e.CourseCode).
				Str("type", string(e.Type)).
				Msg("Subscriber buffer full, event dropped")
		}
	}
	return nil
}

// Len returns the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
