package session_test

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/pandaschool/internal/session"
	"github.com/vytor/pandaschool/internal/worker"
)

type fakeTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeScheduler records timers instead of starting them.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) session.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// FireActive runs every timer that has not been stopped.
func (s *fakeScheduler) FireActive() {
	for _, t := range s.snapshot() {
		if !t.stopped {
			t.f()
		}
	}
}

// FireAll runs every timer ever scheduled, stopped or not, as if each had
// already fired before Stop was called.
func (s *fakeScheduler) FireAll() {
	for _, t := range s.snapshot() {
		t.f()
	}
}

func (s *fakeScheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *fakeScheduler) snapshot() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*fakeTimer(nil), s.timers...)
}

// inlineJobs runs submitted jobs on the caller's goroutine.
type inlineJobs struct {
	mu    sync.Mutex
	names []string
}

func (j *inlineJobs) Submit(job worker.Job) error {
	j.mu.Lock()
	j.names = append(j.names, job.Name())
	j.mu.Unlock()
	_ = job.Run(context.Background())
	return nil
}

func (j *inlineJobs) Count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.names)
}
