package server

import (
	"encoding/json"
	"sync"
)

// ProgressEvent is the payload published to attempt subscribers.
type ProgressEvent struct {
	Type          string `json:"type"`
	ChapterNumber int    `json:"chapterNumber,omitempty"`
	PointsAwarded int    `json:"pointsAwarded,omitempty"`
	Success       bool   `json:"success,omitempty"`
	TotalPoints   int    `json:"totalPoints,omitempty"`
}

const (
	eventDiscoveryCollected = "discovery_collected"
	eventDecisionRecorded   = "decision_recorded"
	eventChallengeResult    = "challenge_result"
	eventJourneyCompleted   = "journey_completed"
)

// Broker is an in-process pub/sub for SSE progression events, keyed by
// attempt ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the given attempt.
func (b *Broker) Subscribe(attemptID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[attemptID] == nil {
		b.subs[attemptID] = make(map[chan []byte]struct{})
	}
	b.subs[attemptID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the attempt's subscribers.
func (b *Broker) Unsubscribe(attemptID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[attemptID], ch)
	if len(b.subs[attemptID]) == 0 {
		delete(b.subs, attemptID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given attempt.
func (b *Broker) Publish(attemptID string, event ProgressEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[attemptID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
