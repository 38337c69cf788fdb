// Package broadcast fans game events out over Redis Pub/Sub so spectators
// in other processes can follow a game. Nothing is stored.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/hldx/internal/log"
	"github.com/peterkuimelis/hldx/internal/view"
)

// publishTimeout bounds each Publish so a slow Redis never stalls the game.
const publishTimeout = 2 * time.Second

// Envelope is one event on the wire.
type Envelope struct {
	ID        uuid.UUID      `json:"id"`
	GameID    uuid.UUID      `json:"game_id"`
	Event     view.EventView `json:"event"`
	Timestamp int64          `json:"timestamp"`
}

// Connect creates a Redis client and checks that the server answers.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// publisher is the part of a Redis client the Publisher needs.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Publisher is a log.EventLogger that publishes every event to a channel.
// Publish failures are logged and dropped; the game never waits on them.
type Publisher struct {
	log.MemoryLogger
	rdb     publisher
	channel string
	gameID  uuid.UUID
	diag    logrus.FieldLogger
}

// NewPublisher creates a publisher for one game.
func NewPublisher(rdb publisher, channel string, gameID uuid.UUID, diag logrus.FieldLogger) *Publisher {
	if diag == nil {
		diag = logrus.StandardLogger()
	}
	return &Publisher{
		rdb:     rdb,
		channel: channel,
		gameID:  gameID,
		diag:    diag.WithFields(logrus.Fields{"game": gameID.String(), "channel": channel}),
	}
}

// Log implements log.EventLogger.
func (p *Publisher) Log(event log.GameEvent) {
	p.MemoryLogger.Log(event)

	data, err := json.Marshal(Envelope{
		ID:        uuid.New(),
		GameID:    p.gameID,
		Event:     view.Event(event),
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		p.diag.WithError(err).Warn("failed to marshal event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.rdb.Publish(ctx, p.channel, data).Err(); err != nil {
		p.diag.WithError(err).WithField("seq", event.Seq).Warn("failed to publish event")
	}
}

// Decode parses one message payload.
func Decode(payload string) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return env, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

// Subscribe relays every envelope published on channel to handle until ctx
// is done. Malformed messages are skipped.
func Subscribe(ctx context.Context, rdb *redis.Client, channel string, diag logrus.FieldLogger, handle func(Envelope)) error {
	sub := rdb.Subscribe(ctx, channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed before relaying.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", channel, err)
	}
	diag.WithField("channel", channel).Info("subscribed to game events")

	return relay(ctx, sub.Channel(), diag, handle)
}

func relay(ctx context.Context, msgs <-chan *redis.Message, diag logrus.FieldLogger, handle func(Envelope)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			env, err := Decode(msg.Payload)
			if err != nil {
				diag.WithError(err).Warn("skipping malformed event")
				continue
			}
			handle(env)
		}
	}
}
