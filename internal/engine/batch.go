package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fee_calculator/internal/domain"

	"github.com/google/uuid"
)

// DefaultBatchWorkers bounds the fan-out when no explicit limit is set.
const DefaultBatchWorkers = 32

// BatchOrchestrator fans a batch of transactions out to the engine through a
// bounded worker pool and collects results in input order.
type BatchOrchestrator struct {
	engine     *Engine
	maxWorkers int
	logger     *slog.Logger
}

func NewBatchOrchestrator(engine *Engine, maxWorkers int, logger *slog.Logger) *BatchOrchestrator {
	if maxWorkers <= 0 {
		maxWorkers = DefaultBatchWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BatchOrchestrator{
		engine:     engine,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (o *BatchOrchestrator) CalculateBatch(ctx context.Context, batch *domain.BatchTransactionRequest) *domain.BatchFeeResult {
	start := time.Now()

	batchID := batch.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}

	results := make([]domain.FeeResult, len(batch.Transactions))

	var wg sync.WaitGroup
	workerPool := make(chan struct{}, o.maxWorkers)

	for i := range batch.Transactions {
		wg.Add(1)
		workerPool <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-workerPool }()
			results[i] = *o.engine.CalculateFee(ctx, &batch.Transactions[i])
		}(i)
	}
	wg.Wait()

	// Counts are derived from the collected results, not tracked while the
	// workers run.
	successful := 0
	for i := range results {
		if results[i].IsSuccess {
			successful++
		}
	}

	result := &domain.BatchFeeResult{
		BatchID:                batchID,
		Results:                results,
		TotalTransactions:      len(batch.Transactions),
		SuccessfulCalculations: successful,
		FailedCalculations:     len(batch.Transactions) - successful,
		ProcessingTime:         time.Since(start),
		ProcessedAt:            time.Now().UTC(),
	}

	o.logger.InfoContext(ctx, "Processed batch",
		slog.String("batch_id", batchID),
		slog.Int("total", result.TotalTransactions),
		slog.Int("successful", result.SuccessfulCalculations),
		slog.Int("failed", result.FailedCalculations),
		slog.Duration("processing_time", result.ProcessingTime))

	return result
}
