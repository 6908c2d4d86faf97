package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

const saveTimeout = 5 * time.Second

type resultSaver interface {
	Save(ctx context.Context, result entity.Result) error
}

// ResultWorker writes finished games to storage off the room locks.
type ResultWorker struct {
	logger *slog.Logger
	repo   resultSaver

	results chan entity.Result
}

func NewResultWorker(logger *slog.Logger, repo resultSaver, queueSize int) *ResultWorker {
	if queueSize <= 0 {
		queueSize = 1
	}

	return &ResultWorker{
		logger:  logger.With("component", "resultWorker"),
		repo:    repo,
		results: make(chan entity.Result, queueSize),
	}
}

// Record queues the result without blocking; it is dropped when the queue is full.
func (that *ResultWorker) Record(result entity.Result) {
	select {
	case that.results <- result:
	default:
		that.logger.Warn("result queue is full, dropping result", "room", result.Room)
	}
}

// Start saves queued results until ctx is done, then flushes what is left.
func (that *ResultWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			that.flush()
			return
		case result := <-that.results:
			that.save(ctx, result)
		}
	}
}

func (that *ResultWorker) flush() {
	for {
		select {
		case result := <-that.results:
			that.save(context.Background(), result)
		default:
			return
		}
	}
}

func (that *ResultWorker) save(ctx context.Context, result entity.Result) {
	log := that.logger.With("method", "save", "room", result.Room)

	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	if err := that.repo.Save(ctx, result); err != nil {
		log.Error("failed to save result", "error", err)
		return
	}

	log.Debug("result saved", "winner", result.Winner.String())
}
