package ringcoro

import "github.com/coroweave/ringcoro/internal/codec"

// handle is the kernel's record of one coroutine. Where the original kernel
// kept a coroutine's suspended state as raw bytes in the CSA, a handle's
// suspended state is simply its backing goroutine, parked on turn. Sending
// on turn is the only way a coroutine is ever granted the OS thread; the
// handle is otherwise passive.
type handle struct {
	id   int
	turn chan struct{}
	desc codec.Descriptor
}

func newHandle(id int, words, argc int) *handle {
	return &handle{
		id:   id,
		turn: make(chan struct{}),
		desc: codec.Encode(words, true, argc),
	}
}

// resume hands the backing goroutine the OS thread's single baton. It blocks
// only until that goroutine has taken the baton; a caller that must wait for
// its own next turn parks itself separately with its own await, the pair
// together playing the role coresume's ret/call pair played in the original
// kernel.
func (h *handle) resume() {
	h.turn <- struct{}{}
}

// await blocks until some other call makes it this handle's turn.
func (h *handle) await() {
	<-h.turn
}
