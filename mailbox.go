// File: mailbox.go
package troupe

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MailboxFactory is the capability that constructs mailboxes. Each call to
// MakeMailbox produces a fresh, independent, open queue; mailboxes created by
// the same factory share no state. Construction cannot fail.
//
// The factory works on untyped endpoints because Go interfaces cannot carry
// generic methods; NewMailbox layers the typed (ActorRef, Receiver) pair on
// top of the Mailbox a factory returns.
type MailboxFactory interface {
	MakeMailbox() Mailbox
}

// Mailbox is one actor's message queue as seen by a backend: a multi-producer,
// single-consumer FIFO with a one-way open-to-closed transition.
//
// Put and CloseSend may be called concurrently from any goroutine. Take must
// be called from a single goroutine at a time.
type Mailbox interface {
	// Put appends a message. It never blocks. Once the mailbox has closed
	// (either side) Put is a silent no-op: the message is dropped and no
	// error reaches the producer.
	Put(msg any)

	// Take removes and returns the next queued message, blocking until one
	// is available. All messages enqueued before closure are drained first;
	// after that, a closed mailbox yields ErrNoSender on every call. If ctx
	// is cancelled while waiting, Take returns ctx.Err() and the mailbox
	// remains usable.
	Take(ctx context.Context) (any, error)

	// CloseSend marks the write end closed: the last ActorRef has been
	// released. Queued messages remain deliverable via Take.
	CloseSend()

	// CloseRecv marks the read end abandoned: the consumer is gone. Queued
	// messages are discarded and subsequent Puts are dropped. Producers get
	// no signal; send-side silence is deliberate.
	CloseRecv()
}

// NewMailbox creates one new, empty, open mailbox for messages of type M and
// returns its two ends: an ActorRef bound to the write end and a Receiver
// bound to the read end.
func NewMailbox[M any](f MailboxFactory) (*ActorRef[M], *Receiver[M]) {
	mbox := f.MakeMailbox()
	shared := &refShared{mbox: mbox}
	shared.refs.Store(1)
	return &ActorRef[M]{shared: shared}, &Receiver[M]{mbox: mbox}
}

// QueueFactory is the default MailboxFactory. It produces unbounded in-memory
// FIFO queues guarded by a mutex, safe for any number of concurrent producers
// and exactly one consumer.
type QueueFactory struct {
	log *zap.Logger
}

// NewQueueFactory creates a QueueFactory.
func NewQueueFactory(opts ...Option) *QueueFactory {
	return &QueueFactory{log: newOptions(opts).log}
}

// MakeMailbox implements MailboxFactory.
func (f *QueueFactory) MakeMailbox() Mailbox {
	return &queueMailbox{
		wake: make(chan struct{}, 1),
		log:  f.log,
	}
}

// queueMailbox is an unbounded FIFO queue. The wake channel holds at most one
// token; producers deposit a token after any state change and the single
// consumer re-checks the queue whenever it picks one up. A stale token only
// causes one extra loop iteration.
type queueMailbox struct {
	mu       sync.Mutex
	items    []any
	sendDone bool // last ActorRef released; drain then report ErrNoSender
	recvDone bool // consumer gone; drop everything silently
	wake     chan struct{}
	log      *zap.Logger
}

func (q *queueMailbox) Put(msg any) {
	q.mu.Lock()
	if q.sendDone || q.recvDone {
		q.mu.Unlock()
		q.log.Debug("message dropped, mailbox closed")
		return
	}
	q.items = append(q.items, msg)
	q.mu.Unlock()
	q.signal()
}

func (q *queueMailbox) Take(ctx context.Context) (any, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			msg := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return msg, nil
		}
		if q.sendDone || q.recvDone {
			q.mu.Unlock()
			return nil, ErrNoSender
		}
		q.mu.Unlock()

		select {
		case <-q.wake:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (q *queueMailbox) CloseSend() {
	q.mu.Lock()
	q.sendDone = true
	q.mu.Unlock()
	q.signal()
}

func (q *queueMailbox) CloseRecv() {
	q.mu.Lock()
	dropped := len(q.items)
	q.recvDone = true
	q.items = nil
	q.mu.Unlock()
	if dropped > 0 {
		q.log.Debug("receiver closed, queued messages dropped", zap.Int("count", dropped))
	}
	q.signal()
}

// signal deposits the consumer wakeup token if it is not already pending.
func (q *queueMailbox) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
