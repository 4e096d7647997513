package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/emlakopoly/backend/internal/game/models"
)

const settlementQueueKey = "settlements:queue"

// SettlementMessage is one archive job: a completed session waiting to be
// written to long-term storage.
type SettlementMessage struct {
	RoomID    string               `json:"roomId"`
	Record    models.SessionRecord `json:"record"`
	Timestamp time.Time            `json:"timestamp"`
	Attempts  int                  `json:"attempts"`
}

// RedisQueue implements a Redis-backed settlement queue. Play never blocks
// on the archive path; the worker drains this queue in the background.
type RedisQueue struct {
	client *redis.Client
	logger *zap.Logger
	ctx    context.Context
}

// NewRedisQueue creates a new Redis queue
func NewRedisQueue(redisAddr string, logger *zap.Logger) (*RedisQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	ctx := context.Background()

	// Test connection
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisQueue{
		client: client,
		logger: logger,
		ctx:    ctx,
	}, nil
}

// Close closes the Redis connection
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// EnqueueSettlement adds a completed-session record to the queue.
func (q *RedisQueue) EnqueueSettlement(roomID string, record models.SessionRecord) error {
	msg := SettlementMessage{
		RoomID:    roomID,
		Record:    record,
		Timestamp: time.Now(),
		Attempts:  0,
	}

	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement: %w", err)
	}

	if err := q.client.RPush(q.ctx, settlementQueueKey, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to push settlement to queue: %w", err)
	}

	q.logger.Info("Settlement enqueued",
		zap.String("roomId", msg.RoomID),
		zap.String("winnerId", record.WinnerID))

	return nil
}

// DequeueSettlement retrieves and removes the oldest settlement from the
// queue. Returns redis.Nil wrapped when the queue is empty.
func (q *RedisQueue) DequeueSettlement() (*SettlementMessage, error) {
	result, err := q.client.LPop(q.ctx, settlementQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, err
		}
		return nil, fmt.Errorf("failed to pop settlement from queue: %w", err)
	}

	var msg SettlementMessage
	if err := json.Unmarshal([]byte(result), &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settlement: %w", err)
	}

	return &msg, nil
}

// MoveToDeadLetterQueue parks a settlement that repeatedly failed to write.
func (q *RedisQueue) MoveToDeadLetterQueue(msg *SettlementMessage) error {
	msg.Attempts++

	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement: %w", err)
	}

	deadLetterQueue := settlementQueueKey + ":dead"
	if err := q.client.RPush(q.ctx, deadLetterQueue, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to push settlement to dead letter queue: %w", err)
	}

	q.logger.Warn("Settlement moved to dead letter queue",
		zap.String("roomId", msg.RoomID),
		zap.Int("attempts", msg.Attempts))

	return nil
}

// RetryMessage puts a settlement back into the queue for another attempt.
func (q *RedisQueue) RetryMessage(msg *SettlementMessage) error {
	msg.Attempts++

	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement: %w", err)
	}

	if err := q.client.RPush(q.ctx, settlementQueueKey, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to push settlement for retry: %w", err)
	}

	q.logger.Info("Settlement requeued for retry",
		zap.String("roomId", msg.RoomID),
		zap.Int("attempts", msg.Attempts))

	return nil
}

// QueueLength returns the number of pending settlements.
func (q *RedisQueue) QueueLength() (int64, error) {
	return q.client.LLen(q.ctx, settlementQueueKey).Result()
}
