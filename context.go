// File: context.go
package troupe

import "context"

// Receiver is the read end of one actor's mailbox. It is owned by exactly one
// Context at a time; concurrent calls to Receive are a usage error, not a
// supported pattern.
type Receiver[M any] struct {
	mbox Mailbox
}

// Receive blocks until the next message is available and returns it. Messages
// arrive in the order Tell was invoked across all clones of the mailbox's
// ActorRef combined (one global FIFO per mailbox).
//
// When the queue is empty and every ActorRef has been released, Receive
// returns ErrNoSender, and keeps returning it on every later call. If ctx is
// cancelled first, Receive returns ctx.Err(); cancellation is the caller's
// substrate-level escape hatch, the mailbox itself defines no timeout.
func (r *Receiver[M]) Receive(ctx context.Context) (M, error) {
	v, err := r.mbox.Take(ctx)
	if err != nil {
		var zero M
		return zero, err
	}
	return v.(M), nil
}

// Close abandons the read end. Queued messages are dropped and every later
// Tell is silently discarded; senders get no signal. Launch calls this when
// the actor body returns, so application code rarely needs it directly.
func (r *Receiver[M]) Close() {
	r.mbox.CloseRecv()
}

// Context is the per-actor handle given to a running actor body. It wraps the
// body's private Receiver and exposes the single suspension point, Receive.
// A Context belongs to exactly one body execution and must not be shared or
// retained past the body's return.
type Context[M any] struct {
	rcv *Receiver[M]
}

// NewContext wraps a Receiver for handing to an actor body. Launch does this
// for every actor it starts; tests driving a body by hand can do it directly.
func NewContext[M any](rcv *Receiver[M]) *Context[M] {
	return &Context[M]{rcv: rcv}
}

// Receive waits for the actor's next message. See Receiver.Receive for the
// ordering and termination contract.
func (c *Context[M]) Receive(ctx context.Context) (M, error) {
	return c.rcv.Receive(ctx)
}
