package viewstate

import (
	"sync"
	"time"
)

// Scheduler runs keyed fire-once timers that are cancelled together on Close.
type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*scheduled
	closed bool
	seq    uint64
}

type scheduled struct {
	timer *time.Timer
	seq   uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[string]*scheduled)}
}

// After runs fn once after d under key, replacing any pending timer with the
// same key. It returns false once the scheduler is closed.
func (s *Scheduler) After(key string, d time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if prev, ok := s.timers[key]; ok {
		prev.timer.Stop()
	}

	s.seq++
	seq := s.seq
	entry := &scheduled{seq: seq}
	entry.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		cur, ok := s.timers[key]
		if !ok || cur.seq != seq || s.closed {
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = entry
	return true
}

// Cancel stops the timer under key and reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.timers[key]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(s.timers, key)
	return true
}

// Pending reports whether a timer is waiting under key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[key]
	return ok
}

// Close cancels every pending timer. Later calls to After are ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.timers {
		entry.timer.Stop()
		delete(s.timers, key)
	}
	s.closed = true
}
