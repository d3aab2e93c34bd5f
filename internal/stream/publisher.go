package stream

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	DefaultStream     = "portfolio-interactions"
	DefaultBufferSize = 256

	payloadField = "payload"
	maxStreamLen = 10000
	writeTimeout = 3 * time.Second
)

var (
	ErrBufferFull = errors.New("interaction buffer is full")
	ErrClosed     = errors.New("publisher is closed")
)

// RedisPublisher appends interaction events to a Redis stream from a
// background worker so callers never wait on Redis.
type RedisPublisher struct {
	client *redis.Client
	stream string
	events chan models.InteractionEvent
	logger *zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewRedisPublisher(client *redis.Client, stream string, bufferSize int, logger *zerolog.Logger) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &RedisPublisher{
		client: client,
		stream: stream,
		events: make(chan models.InteractionEvent, bufferSize),
		logger: logger,
	}
}

// Start runs the writer until Close is called. ctx only bounds individual writes.
func (p *RedisPublisher) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for event := range p.events {
			if err := p.write(ctx, event); err != nil {
				p.logger.Warn().
					Err(err).
					Str("stream", p.stream).
					Str("event_id", event.EventID).
					Msg("Failed to write interaction event")
			}
		}
	}()
}

// Publish enqueues event without blocking.
func (p *RedisPublisher) Publish(_ context.Context, event models.InteractionEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	select {
	case p.events <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (p *RedisPublisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.events)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *RedisPublisher) write(ctx context.Context, event models.InteractionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]any{payloadField: data},
	}).Result()
	if err != nil {
		return err
	}

	p.logger.Debug().Str("stream", p.stream).Str("id", id).Str("event_id", event.EventID).Msg("Interaction published")
	return nil
}
