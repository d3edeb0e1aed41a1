// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package workerpool implements a fixed-size, reusable worker pool with a
// single-submission-in-flight, broadcast-submit / barrier-wait protocol:
// exactly the model spec.md §4.2 calls for, and a different shape from
// the teacher's usual github.com/grailbio/base/traverse fan-out helper
// (see DESIGN.md for why that one wasn't reused here).
//
// A submission pins work item i to worker i; there is no queue and no
// stealing. Submit installs the work and wakes the first min(n, len(workers))
// workers; Wait blocks until every woken worker has finished. Only one
// submission may be in flight at a time.
package workerpool

import "sync"

// Pool is a fixed-size set of reusable worker goroutines.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	n      int
	work   func(i int)
	active int
	gen    uint64 // bumped on every Submit, lets workers recognize fresh work
	shut   bool
	wg     sync.WaitGroup
}

// New creates a Pool of n worker goroutines. n must be >= 1.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{n: n}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.workerLoop(i)
	}
	return p
}

// Size returns the number of worker goroutines in the pool.
func (p *Pool) Size() int { return p.n }

func (p *Pool) workerLoop(id int) {
	defer p.wg.Done()
	seen := uint64(0)
	for {
		p.mu.Lock()
		for p.gen == seen && !p.shut {
			p.cond.Wait()
		}
		if p.shut {
			p.mu.Unlock()
			return
		}
		work := p.work
		active := p.active
		gen := p.gen
		p.mu.Unlock()
		seen = gen

		if id >= active {
			// Not part of this submission; nothing to run or report.
			continue
		}

		work(id)

		p.mu.Lock()
		p.active--
		if p.active == 0 {
			p.cond.Broadcast()
		}
		p.mu.Unlock()
	}
}

// Submit installs work as the current submission: worker i executes
// work(i) exactly once, for every i in [0, min(nItems, pool size)). Submit
// blocks until every worker of any previous submission has finished; it
// does not require that Wait was called for it.
//
// The caller must ensure that the nItems work items touch disjoint memory;
// the pool establishes no ordering between them beyond the barrier in Wait.
func (p *Pool) Submit(work func(i int), nItems int) {
	active := nItems
	if active > p.n {
		active = p.n
	}
	if active < 0 {
		active = 0
	}
	p.mu.Lock()
	for p.active != 0 {
		p.cond.Wait()
	}
	p.work = work
	p.active = active
	p.gen++
	p.mu.Unlock()
	p.cond.Broadcast()
}

// Wait blocks until active_count reaches zero, i.e. until every worker
// woken by the most recent Submit has returned. It establishes a
// happens-before edge from every worker's writes during the submission to
// the calling goroutine's subsequent reads.
func (p *Pool) Wait() {
	p.mu.Lock()
	for p.active != 0 {
		p.cond.Wait()
	}
	p.work = nil
	p.mu.Unlock()
}

// Destroy shuts the pool down, waking and joining every worker. Any
// in-flight submission must already have been Waited on.
func (p *Pool) Destroy() {
	p.mu.Lock()
	p.shut = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}
