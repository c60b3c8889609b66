// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package light

import (
	"sync"

	"github.com/sage-x-project/causalproof/model"
	"github.com/sage-x-project/causalproof/verify"
)

// Scheduler runs deferred full-verification jobs on a small worker pool
// draining a buffered job channel, so background work does not block its
// caller.
type Scheduler struct {
	jobs chan func()
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewScheduler starts a scheduler with the given number of worker
// goroutines. workers <= 0 is treated as 1.
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = 1
	}
	s := &Scheduler{
		jobs: make(chan func(), 64),
		stop: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

func (s *Scheduler) worker() {
	defer s.wg.Done()
	for {
		select {
		case job := <-s.jobs:
			job()
		case <-s.stop:
			return
		}
	}
}

// Close signals the workers to exit and waits for them to return; a job
// already running finishes first. Jobs still queued when the workers exit
// are not run, and Schedule does not check whether Close was called.
func (s *Scheduler) Close() {
	close(s.stop)
	s.wg.Wait()
}

// Handle is a future for a deferred full verification result.
type Handle struct {
	done   chan verify.Result
	once   sync.Once
	result verify.Result
}

// Wait blocks until the deferred verification completes and returns its
// result. Safe to call more than once.
func (h *Handle) Wait() verify.Result {
	h.once.Do(func() {
		h.result = <-h.done
	})
	return h.result
}

// Schedule enqueues a full verification of full against expectedAgentID
// and expectedPublicKey, returning a Handle whose Wait blocks for the
// result. The job runs asynchronously on a worker goroutine; Schedule does
// not wait for it to start or finish.
func (s *Scheduler) Schedule(full model.Proof, expectedAgentID, expectedPublicKey string, nowMillis int64) *Handle {
	h := &Handle{done: make(chan verify.Result, 1)}
	s.jobs <- func() {
		h.done <- verify.Verify(full, expectedAgentID, expectedPublicKey, nowMillis)
	}
	return h
}
