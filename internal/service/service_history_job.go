// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"
)

type historyJob struct {
	historyService HistoryService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHistoryJob creates a historyJob that calls historyService.Refresh on a
// ticker. The job is idle until Start is called.
func NewHistoryJob(historyService HistoryService) HistoryJob {
	return &historyJob{historyService: historyService}
}

// Start implements HistoryJob. It stops any previously running job, then
// launches a background goroutine that refreshes once immediately and then
// every interval. If interval is zero or negative it defaults to 5 minutes.
// The goroutine exits when ctx is cancelled or Stop is called.
func (j *historyJob) Start(ctx context.Context, userID string, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		_, _ = j.historyService.Refresh(jobCtx, userID)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				_, _ = j.historyService.Refresh(jobCtx, userID)
			}
		}
	}()
}

// Stop implements HistoryJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running (no-op in that case).
func (j *historyJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
