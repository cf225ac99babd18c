// Package csa implements the coroutine storage area: the fixed-capacity
// ledger of machine words that the original kernel packed suspended
// coroutine stacks into. A goroutine-backed coroutine does not need its
// suspended frame copied anywhere, the Go runtime already parks its
// stack, but the kernel still owns the accounting the original CSA
// performed: a fixed word budget that every spawned coroutine's image must
// fit within, reserved when the coroutine is spawned and released again
// when it terminates. Modeling that budget with a weighted semaphore keeps the same
// overflow-is-fatal contract the original arena had, without resurrecting
// its manual pointer arithmetic.
package csa

import (
	"fmt"

	"golang.org/x/sync/semaphore"
)

// DefaultCapacity mirrors the original kernel's CSA_SIZE: 90,000 machine
// words, or 720 KB on a 64-bit target.
const DefaultCapacity = 90000

// Arena is a single LIFO-accounted ledger of coroutine image words. It is
// not safe for concurrent use from more than one coroutine at a time,
// which matches the kernel's own invariant that at most one coroutine ever
// touches the CSA at once.
type Arena struct {
	sem      *semaphore.Weighted
	capacity int64
	used     int64
}

// New creates an Arena with room for capacity machine words.
func New(capacity int) *Arena {
	return &Arena{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
	}
}

// Reserve accounts for pushing an image of the given word count (plus its
// trailing descriptor word) into the arena. It fails immediately, without
// blocking, when the reservation would overflow the arena's capacity,
// the kernel has no meaningful recovery from CSA overflow, so the caller is
// expected to treat a non-nil error as fatal.
func (a *Arena) Reserve(words int) error {
	n := int64(words) + 1
	if !a.sem.TryAcquire(n) {
		return fmt.Errorf("csa: arena overflow: %d words requested, %d available of %d",
			n, a.capacity-a.used, a.capacity)
	}
	a.used += n
	return nil
}

// Release gives back the words accounted for by a prior Reserve, as the
// kernel does when the coroutine that image belongs to terminates.
func (a *Arena) Release(words int) {
	n := int64(words) + 1
	a.sem.Release(n)
	a.used -= n
}

// Used reports the number of words currently reserved: the images and
// descriptor words of every coroutine on the ring, the running one included.
func (a *Arena) Used() int64 { return a.used }

// Capacity reports the arena's total word budget.
func (a *Arena) Capacity() int64 { return a.capacity }
