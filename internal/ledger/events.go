package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const ledgerEventChannel = "ledger:events" // Pub/Sub channel for ledger mutations

type EventType string

const (
	EventProjectCreated EventType = "project_created"
	EventReplyAdded     EventType = "reply_added"
)

type Event struct {
	Type      EventType `json:"type"`
	ProjectID string    `json:"project_id"`
	ReplyID   string    `json:"reply_id,omitempty"`
}

// EventPublisher fans ledger events out beyond the local process.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// RedisPublisher publishes ledger events on a Redis pub/sub channel so
// other instances observe mutations without polling.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, ledgerEventChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Subscribe registers an observer. The returned channel receives every
// subsequent mutation; slow observers drop events rather than block
// writers.
func (l *Ledger) Subscribe() (int, <-chan Event) {
	ch := make(chan Event, 16)

	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch
	l.mu.Unlock()

	return id, ch
}

// Unsubscribe removes an observer and closes its channel.
func (l *Ledger) Unsubscribe(id int) {
	l.mu.Lock()
	ch, ok := l.subs[id]
	if ok {
		delete(l.subs, id)
	}
	l.mu.Unlock()

	if ok {
		close(ch)
	}
}

func (l *Ledger) notify(ev Event) {
	l.mu.RLock()
	for _, ch := range l.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	l.mu.RUnlock()

	if l.publisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := l.publisher.Publish(ctx, ev); err != nil {
			log.Printf("ledger event publish failed: %v", err)
		}
	}
}
