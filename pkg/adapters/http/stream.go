package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// StreamManager fans configuration updates out to active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan<- string]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe() (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: client buffer full, dropping message")
		}
	}
}

// ConfigurationUpdated broadcasts an update event. Pass it to pathconfig.WithOnUpdate.
func (sm *StreamManager) ConfigurationUpdated() {
	payload, err := json.Marshal(map[string]any{
		"type":      "configuration_updated",
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		return
	}
	sm.Broadcast(string(payload))
}
