package ringcoro

import (
	"time"

	"github.com/coroweave/ringcoro/internal/gls"
)

// current loads the calling goroutine's coroutine state, set up by
// spawnHandle before a coroutine's entry point ever runs. It panics when
// called on a goroutine that is not backing a coroutine, since every
// operation in this file only has meaning from inside the ring.
func current() *coroState {
	cs, ok := lookupCoroState(gls.Current())
	if !ok {
		panic("ringcoro: not called from a coroutine stack")
	}
	return cs
}

// Invoke places a new coroutine on the ring the calling coroutine belongs
// to. It does not yield: the new coroutine will not run until some
// coroutine, any of them, next calls Coresume or returns.
func Invoke(entry Entry, args ...int64) {
	cs := current()
	cs.kernel.invokeFrom(entry, args)
}

// Coresume is the kernel's single suspension point. It returns immediately
// if this is the only coroutine left on the ring; otherwise it hands the
// OS thread to whichever coroutine has waited longest, and does not return
// until the ring schedules this coroutine again.
func Coresume() {
	cs := current()
	cs.kernel.yieldNow(cs.self)
}

// CoroutineCount returns the number of coroutines presently on the ring,
// including the one calling it.
func CoroutineCount() int {
	return current().kernel.coroutineCount()
}

// Diagnose returns a snapshot of the calling coroutine's ring, for use by
// the diagnostic tools in package diag.
func Diagnose() Snapshot {
	return current().kernel.snapshot()
}

// SleepMs blocks the OS thread, and so every coroutine on the ring,
// collectively, for the given number of milliseconds. It does not yield;
// callers that want other coroutines to keep making progress while they
// wait should use Wait or WaitEx instead.
func SleepMs(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// When busy-yields until pred returns true, calling Coresume before every
// retry. It is the kernel's only wait primitive; Wait and WaitEx are both
// built on it.
func When(pred func() bool) {
	for !pred() {
		Coresume()
	}
}

// Wait yields repeatedly until at least ms milliseconds of wall-clock time
// have elapsed.
func Wait(ms int) {
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	When(func() bool {
		return !time.Now().Before(deadline)
	})
}

// WaitEx behaves like Wait but returns early if continuing becomes false,
// or if canceling is non-nil and becomes true. Both flags are read fresh on
// every retry, so some other coroutine must be able to write them between
// yields, WaitEx is the kernel's only admission of external
// cancellation.
func WaitEx(ms int, continuing *bool, canceling *bool) {
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	When(func() bool {
		if !time.Now().Before(deadline) {
			return true
		}
		if continuing != nil && !*continuing {
			return true
		}
		if canceling != nil && *canceling {
			return true
		}
		return false
	})
}
