// File: ref.go
package troupe

import "go.uber.org/atomic"

// refShared is the delivery endpoint shared by every clone of one ActorRef.
// The mailbox behind it stays open as long as at least one clone is live.
type refShared struct {
	mbox Mailbox
	refs atomic.Int32
}

// ActorRef is a cloneable address for sending messages of type M to one
// actor's mailbox. All clones share the same underlying mailbox; cloning never
// creates a new one.
//
// Go has no destructors, so releasing a reference is explicit: every clone
// must eventually be passed to Release. When the last live clone is released
// the mailbox irrevocably closes, which is the only closure trigger on the
// send side.
type ActorRef[M any] struct {
	shared   *refShared
	released atomic.Bool
}

// Tell enqueues msg onto the actor's mailbox if it is still open. If the
// mailbox has closed — all references released, or the receiving body has
// terminated — the message is silently dropped. Senders are fire-and-forget;
// only the receiving side ever observes the absence of a partner. Tell never
// blocks and is safe to call from any number of goroutines concurrently.
func (r *ActorRef[M]) Tell(msg M) {
	if r.released.Load() {
		return
	}
	r.shared.mbox.Put(msg)
}

// Clone returns a second reference to the same mailbox. The open/closed state
// is shared, not duplicated. Cloning a released reference is a usage error.
func (r *ActorRef[M]) Clone() *ActorRef[M] {
	if r.released.Load() {
		panic("troupe: Clone on released ActorRef")
	}
	r.shared.refs.Inc()
	return &ActorRef[M]{shared: r.shared}
}

// Release drops this reference. When the last reference to a mailbox is
// released the mailbox transitions to closed: a receive that has drained all
// queued messages then reports ErrNoSender. Release is idempotent per clone;
// the closed transition is one-way and a closed mailbox never reopens.
func (r *ActorRef[M]) Release() {
	if !r.released.CompareAndSwap(false, true) {
		return
	}
	if r.shared.refs.Dec() == 0 {
		r.shared.mbox.CloseSend()
	}
}
