package queue

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/emlakopoly/backend/internal/game/models"
)

const (
	// pollInterval is how often the worker checks for pending settlements.
	pollInterval = 2 * time.Second

	// maxAttempts before a settlement is parked in the dead letter queue.
	maxAttempts = 5
)

// SettlementStore is the archive destination for completed sessions.
type SettlementStore interface {
	SaveSettlement(ctx context.Context, record models.SessionRecord) error
}

// Worker drains the settlement queue into the archive store in the
// background, retrying transient failures.
type Worker struct {
	queue  *RedisQueue
	store  SettlementStore
	logger *zap.Logger
	stop   chan struct{}
	done   chan struct{}
}

// NewWorker creates a settlement worker.
func NewWorker(queue *RedisQueue, store SettlementStore, logger *zap.Logger) *Worker {
	return &Worker{
		queue:  queue,
		store:  store,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start begins processing on a background goroutine.
func (w *Worker) Start() {
	go w.run()
	w.logger.Info("Settlement worker started")
}

// Stop signals the worker to finish and waits for it.
func (w *Worker) Stop() {
	close(w.stop)
	<-w.done
	w.logger.Info("Settlement worker stopped")
}

func (w *Worker) run() {
	defer close(w.done)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.drain()
		}
	}
}

// drain processes everything currently queued.
func (w *Worker) drain() {
	for {
		msg, err := w.queue.DequeueSettlement()
		if err != nil {
			if err != redis.Nil {
				w.logger.Error("Failed to dequeue settlement", zap.Error(err))
			}
			return
		}
		w.process(msg)
	}
}

func (w *Worker) process(msg *SettlementMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := w.store.SaveSettlement(ctx, msg.Record); err != nil {
		w.logger.Error("Failed to archive settlement",
			zap.String("roomId", msg.RoomID),
			zap.Int("attempts", msg.Attempts),
			zap.Error(err))

		if msg.Attempts+1 >= maxAttempts {
			if dlqErr := w.queue.MoveToDeadLetterQueue(msg); dlqErr != nil {
				w.logger.Error("Failed to park settlement", zap.Error(dlqErr))
			}
			return
		}
		if retryErr := w.queue.RetryMessage(msg); retryErr != nil {
			w.logger.Error("Failed to requeue settlement", zap.Error(retryErr))
		}
		return
	}

	w.logger.Info("Settlement archived",
		zap.String("roomId", msg.RoomID),
		zap.String("winnerId", msg.Record.WinnerID))
}
