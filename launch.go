// File: launch.go
package troupe

import "context"

// Handle is the typed completion handle returned by Launch: the eventual
// outcome of one actor body producing an R.
type Handle[R any] struct {
	c Completion
}

// Done is closed once the body's outcome is available.
func (h *Handle[R]) Done() <-chan struct{} { return h.c.Done() }

// Await blocks until the actor body has finished and returns its result.
// The error is one of three distinguishable outcomes: nil (the body's own
// value is returned), the body's own error verbatim (including ErrNoSender
// when the body chose to propagate a drained mailbox), or an *ExecError when
// the hosting task never ran the body to conclusion. If ctx is cancelled
// first, Await returns ctx.Err(); the body keeps running.
func (h *Handle[R]) Await(ctx context.Context) (R, error) {
	var zero R
	v, err := h.c.Await(ctx)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return v.(R), nil
}

// Launch brings an actor into existence: it creates a fresh mailbox with f,
// wraps the read end in a Context, hands that Context to body, and runs the
// resulting computation on s. It returns the actor's address and its typed
// completion handle.
//
// When the body returns — normally, with an error, or by panicking — the
// mailbox's read end is closed, so messages sent afterwards are silently
// dropped. Each launch is independent: there is no registry, no supervision,
// and no interaction between launches beyond the messages they exchange.
func Launch[M, R any](f MailboxFactory, s Spawner, body func(*Context[M]) (R, error)) (*ActorRef[M], *Handle[R]) {
	ref, rcv := NewMailbox[M](f)
	actx := NewContext(rcv)

	c := s.Spawn(func() (any, error) {
		defer rcv.Close()
		v, err := body(actx)
		if err != nil {
			return nil, err
		}
		return v, nil
	})

	return ref, &Handle[R]{c: c}
}
