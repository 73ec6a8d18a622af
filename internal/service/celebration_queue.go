package service

import (
	"sort"
	"sync"

	"typepet/internal/models"
)

// MaxPendingCelebrations bounds the celebration queue. When a sixth event
// arrives, the earliest-queued event of the lowest present priority is evicted.
const MaxPendingCelebrations = 5

type queueEntry struct {
	event models.CelebrationEvent
	seq   int
}

// CelebrationQueue is a bounded, priority-ordered buffer of pending
// celebration events shared by the pet and achievement engines. The UI peeks
// the head with Next and acknowledges it with MarkShown.
type CelebrationQueue struct {
	mu      sync.Mutex
	entries []queueEntry
	seq     int
}

// NewCelebrationQueue creates an empty queue
func NewCelebrationQueue() *CelebrationQueue {
	return &CelebrationQueue{}
}

// Queue adds an event, evicting the earliest-queued lowest-priority entry if
// the queue is full. Overflow is handled deterministically and never errors.
func (q *CelebrationQueue) Queue(event models.CelebrationEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) >= MaxPendingCelebrations {
		q.evictLowest()
	}

	q.seq++
	q.entries = append(q.entries, queueEntry{event: event, seq: q.seq})
	q.sortEntries()
}

// evictLowest removes the entry with the lowest priority, breaking ties by
// earliest insertion. Must be called with the lock held.
func (q *CelebrationQueue) evictLowest() {
	if len(q.entries) == 0 {
		return
	}

	lowest := 0
	for i, entry := range q.entries {
		current := q.entries[lowest]
		if entry.event.Priority.Rank() < current.event.Priority.Rank() ||
			(entry.event.Priority.Rank() == current.event.Priority.Rank() && entry.seq < current.seq) {
			lowest = i
		}
	}
	q.entries = append(q.entries[:lowest], q.entries[lowest+1:]...)
}

// sortEntries keeps the highest-priority event first, stable by insertion
// order within a priority. Must be called with the lock held.
func (q *CelebrationQueue) sortEntries() {
	sort.SliceStable(q.entries, func(i, j int) bool {
		ri, rj := q.entries[i].event.Priority.Rank(), q.entries[j].event.Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return q.entries[i].seq < q.entries[j].seq
	})
}

// Next returns the highest-priority pending event without removing it, or nil
// when the queue is empty. Peeking is idempotent.
func (q *CelebrationQueue) Next() *models.CelebrationEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return nil
	}
	event := q.entries[0].event
	return &event
}

// MarkShown removes the event with the given id regardless of its position.
// It reports whether anything was removed.
func (q *CelebrationQueue) MarkShown(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, entry := range q.entries {
		if entry.event.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of pending events
func (q *CelebrationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Snapshot returns the pending events in display order for persistence
func (q *CelebrationQueue) Snapshot() []models.CelebrationEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := make([]models.CelebrationEvent, len(q.entries))
	for i, entry := range q.entries {
		events[i] = entry.event
	}
	return events
}

// Restore replaces the queue contents with a persisted snapshot
func (q *CelebrationQueue) Restore(events []models.CelebrationEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = q.entries[:0]
	for _, event := range events {
		q.seq++
		q.entries = append(q.entries, queueEntry{event: event, seq: q.seq})
	}
	q.sortEntries()
	if len(q.entries) > MaxPendingCelebrations {
		q.entries = q.entries[:MaxPendingCelebrations]
	}
}
