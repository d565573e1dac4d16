package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"internmatch/internal/models"
	"internmatch/internal/repositories"
)

// Worker drains queued match runs and executes them through the bulk
// allocator. Runs enqueued while the process was down are picked up by the
// poller.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueRun(runID uuid.UUID)
}

type worker struct {
	runRepo      repositories.MatchRunRepository
	allocator    AllocatorService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewWorker(
	runRepo repositories.MatchRunRepository,
	allocator AllocatorService,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	return &worker{
		runRepo:      runRepo,
		allocator:    allocator,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processRuns(ctx, i+1)
	}

	// Start polling for pending runs
	w.wg.Add(1)
	go w.pollPendingRuns()

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueRun implements Worker.
func (w *worker) EnqueueRun(runID uuid.UUID) {
	select {
	case w.jobQueue <- runID:
		log.Printf("📥 Match run %s enqueued\n", runID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue run %s\n", runID)
	}
}

func (w *worker) processRuns(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing match runs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case runID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing match run %s\n", workerID, runID)
			if err := w.executeRun(ctx, runID); err != nil {
				log.Printf("❌ Worker #%d failed to process run %s: %v\n", workerID, runID, err)
			} else {
				log.Printf("✅ Worker #%d completed run %s\n", workerID, runID)
			}
		}
	}
}

func (w *worker) executeRun(ctx context.Context, runID uuid.UUID) error {
	if err := w.runRepo.UpdateStatus(runID, models.RunProcessing); err != nil {
		return err
	}

	processedCount, err := w.allocator.RunBulk(ctx)
	if err != nil {
		w.runRepo.UpdateError(runID, err.Error())
		return err
	}

	return w.runRepo.UpdateResult(runID, processedCount)
}

func (w *worker) pollPendingRuns() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting pending runs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending runs poller stopped")
			return
		case <-ticker.C:
			pendingRuns, err := w.runRepo.FindPendingRuns(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending runs: %v\n", err)
				continue
			}

			if len(pendingRuns) > 0 {
				log.Printf("📋 Found %d pending match runs\n", len(pendingRuns))
			}

			for _, run := range pendingRuns {
				w.EnqueueRun(run.ID)
			}
		}
	}
}
