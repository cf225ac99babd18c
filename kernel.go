// Package ringcoro implements a stackful, strictly cooperative coroutine
// kernel for a single goroutine ring: a host spawns a fixed set of
// coroutines with Cobegin, and they hand control to one another by calling
// Coresume, directly or through When, Wait, or WaitEx. Exactly one
// coroutine is ever runnable at a time; everything else is parked,
// entirely passively, on an unbuffered channel.
//
// The original kernel this package is modeled on packed suspended stack
// frames into a single byte arena and restored them with a handful of
// inline-assembly primitives, because the only way to get a second
// stackful execution context in a C++ program is to build one by hand. Go
// already hands out a fresh, growable stack for every goroutine, so this
// port keeps the ring's scheduling contract, FIFO order, one active
// coroutine, cooperative yield points only, and lets the runtime own the
// stacks themselves. What survives from the original design are the parts
// that are genuinely about scheduling rather than about where bytes live:
// the coroutine storage area's fixed word budget (package csa), the
// virgin/resumed descriptor (package codec), and the ABI-dependent
// argument-count arithmetic (package abi) that decided how an image was
// shaped.
//
// No errors cross Coresume. A coroutine that wants to signal failure to
// its peers does so through memory it shares with them and a yield, the
// same contract the original kernel had.
package ringcoro

import (
	"sync"

	"github.com/coroweave/ringcoro/internal/abi"
	"github.com/coroweave/ringcoro/internal/codec"
	"github.com/coroweave/ringcoro/internal/csa"
	"github.com/coroweave/ringcoro/internal/gls"
	"github.com/coroweave/ringcoro/internal/klog"
)

// Entry is a coroutine's entry point. Arguments are machine words, the same
// contract the original kernel's variadic long... parameter lists had;
// narrower Go types must be widened by the caller before handing them to
// Cobegin, Invoke, or Spawn.
type Entry func(args ...int64)

// Spawn describes one coroutine to start, as an entry point plus its
// argument list, for use with Cobegin.
type Spawn struct {
	Entry Entry
	Args  []int64
}

// Kernel owns one ring's worth of coroutines: the coroutine storage area
// budget, the FIFO of waiting handles, and the handle currently holding
// the OS thread's single baton. A Kernel is created by Cobegin and lives
// for exactly the duration of that call; nothing about it is exported,
// since every public operation reaches it implicitly through the calling
// goroutine's local storage (the states registry below).
type Kernel struct {
	arena   *csa.Arena
	ring    []*handle
	current *handle
	count   int
	nextID  int
	done    chan struct{}
}

// coroState is what a coroutine's backing goroutine stores in its local
// storage: the kernel it belongs to, and its own handle within that
// kernel's ring.
type coroState struct {
	kernel *Kernel
	self   *handle
}

// statesMu and states are the coroutine kernel's own goroutine-local
// storage: a goroutine identity from package gls, keyed to the coroState
// of whichever coroutine that goroutine backs. Every coroutine's backing
// goroutine writes exactly once, at spawn, and erases its own entry once,
// at termination; everything in between is reads from whatever coroutine
// currently holds the ring's baton, so a single RWMutex never sees enough
// contention to be worth sharding.
var (
	statesMu sync.RWMutex
	states   = make(map[gls.G]*coroState)
)

// bindCoroState records that the calling goroutine backs cs, for current
// to find later.
func bindCoroState(cs *coroState) {
	g := gls.Current()
	statesMu.Lock()
	states[g] = cs
	statesMu.Unlock()
}

// lookupCoroState returns the coroState bound to g, if any.
func lookupCoroState(g gls.G) (*coroState, bool) {
	statesMu.RLock()
	defer statesMu.RUnlock()
	cs, ok := states[g]
	return cs, ok
}

// unbindCoroState erases g's entry once its coroutine has terminated.
func unbindCoroState(g gls.G) {
	statesMu.Lock()
	delete(states, g)
	statesMu.Unlock()
}

// NewKernel creates a Kernel with the given coroutine storage area
// capacity, in machine words. Hosts do not normally call this directly;
// Cobegin does it for them, but it is exported so tests can exercise a
// kernel with a small arena without going through the full public API.
func NewKernel(capacity int) *Kernel {
	return &Kernel{
		arena: csa.New(capacity),
		done:  make(chan struct{}),
	}
}

// Cobegin captures the calling goroutine as the ring's host, spawns one
// coroutine per element of specs, and transfers control to the last one.
// It does not return until the last coroutine in the ring terminates,
// exactly the contract cobegin had when it only returned once its
// epilogue ran on the host's own OS-thread stack.
//
// Coroutines run in reverse spawn order: the CSA was a LIFO arena, and
// cobegin populated it by pushing every coroutine and then popping the
// last one to start it, so the coroutine passed last to Cobegin is the
// first to run. The rest of the batch is still in that same push order
// underneath it, so the ring must queue them back-to-front: a coroutine
// that terminates without ever yielding falls through to whichever peer
// was pushed most recently, not to the one pushed first.
func Cobegin(specs ...Spawn) {
	if len(specs) == 0 {
		return
	}

	k := NewKernel(csa.DefaultCapacity)
	handles := make([]*handle, len(specs))
	for i, s := range specs {
		handles[i] = k.spawnHandle(s.Entry, s.Args)
	}

	first := handles[len(handles)-1]
	rest := handles[:len(handles)-1]
	for i := len(rest) - 1; i >= 0; i-- {
		k.ring = append(k.ring, rest[i])
	}
	k.current = first
	first.resume()

	<-k.done
}

func (k *Kernel) spawnHandle(entry Entry, args []int64) *handle {
	argc := len(args)
	filler := abi.WordAlign(argc)
	words := codec.ImageWords(abi.Current.CalleeSaved, abi.Current.ShadowWords, argc, filler)

	if err := k.arena.Reserve(words); err != nil {
		klog.Fatal("coroutine storage area overflow", "error", err)
	}

	h := newHandle(k.nextID, words, argc)
	k.nextID++
	k.count++

	go func() {
		cs := &coroState{kernel: k, self: h}
		g := gls.Current()
		bindCoroState(cs)
		defer unbindCoroState(g)

		h.await()
		h.desc = h.desc.Resumed()

		entry(args...)

		k.terminate(h)
	}()

	return h
}

// invokeFrom places a new coroutine on the ring immediately behind every
// coroutine already waiting, it joins the back of the same FIFO queue a
// yield would rotate it through. The coroutine performing the invoke is
// not touched: invoke never yields.
func (k *Kernel) invokeFrom(entry Entry, args []int64) {
	h := k.spawnHandle(entry, args)
	k.ring = append(k.ring, h)
}

// yieldNow is coresume: a no-op with only one coroutine alive, otherwise a
// FIFO rotation that hands the OS thread's baton to whichever coroutine
// has waited longest.
func (k *Kernel) yieldNow(self *handle) {
	if k.count <= 1 {
		return
	}

	k.ring = append(k.ring, self)
	next := k.ring[0]
	k.ring = k.ring[1:]
	k.current = next

	next.resume()
	self.await()
}

// terminate is cleanup: it runs when a coroutine's entry point returns.
// With no coroutines left it releases the host blocked in Cobegin;
// otherwise it dispatches whichever coroutine has waited longest.
func (k *Kernel) terminate(self *handle) {
	k.count--
	words, _, _ := codec.Decode(self.desc)
	k.arena.Release(words)

	if k.count == 0 {
		close(k.done)
		return
	}

	next := k.ring[0]
	k.ring = k.ring[1:]
	k.current = next
	next.resume()
}

// coroutineCount returns the number of coroutines presently on the ring,
// including whichever one is running.
func (k *Kernel) coroutineCount() int {
	return k.count
}

// Snapshot is a point-in-time view of a Kernel's ring, for the diagnostic
// tools in package diag. It is produced by Diagnose, which may only safely
// be called from the coroutine currently holding the OS thread's baton,
// the same single-active-coroutine invariant every other kernel operation
// relies on.
type Snapshot struct {
	Running       int
	Waiting       []int
	Count         int
	ArenaUsed     int64
	ArenaCapacity int64
}

func (k *Kernel) snapshot() Snapshot {
	waiting := make([]int, len(k.ring))
	for i, h := range k.ring {
		waiting[i] = h.id
	}
	running := -1
	if k.current != nil {
		running = k.current.id
	}
	return Snapshot{
		Running:       running,
		Waiting:       waiting,
		Count:         k.count,
		ArenaUsed:     k.arena.Used(),
		ArenaCapacity: k.arena.Capacity(),
	}
}
