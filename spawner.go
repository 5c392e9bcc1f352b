// File: spawner.go
package troupe

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Spawner is the capability that runs an actor body to completion as an
// independent concurrent activity. Spawn must start the body without the
// caller having to drive it further, and returns a Completion that resolves
// to the body's outcome.
//
// Pass spawners explicitly to Launch rather than stashing one in a global;
// an ambient spawner hides the execution substrate and makes actor creation
// untestable.
type Spawner interface {
	Spawn(body func() (any, error)) Completion
}

// Completion is the eventual outcome of one spawned body: the body's own
// value, the body's own error, or an *ExecError when the hosting task could
// not run the body to completion. Produced once per spawn; safe to await from
// multiple goroutines.
type Completion interface {
	// Done is closed once the outcome is available.
	Done() <-chan struct{}

	// Await blocks until the outcome is available or ctx is cancelled.
	Await(ctx context.Context) (any, error)
}

// completion is a write-once latch.
type completion struct {
	done  chan struct{}
	once  sync.Once
	value any
	err   error
}

func newCompletion() *completion {
	return &completion{done: make(chan struct{})}
}

func (c *completion) complete(value any, err error) {
	c.once.Do(func() {
		c.value = value
		c.err = err
		close(c.done)
	})
}

func (c *completion) Done() <-chan struct{} { return c.done }

func (c *completion) Await(ctx context.Context) (any, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// runBody executes body, converting a panic into an *ExecError so that one
// misbehaving actor never takes the process down. The panic and its stack are
// reported through log before the completion resolves.
func runBody(id string, body func() (any, error), c *completion, log *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			log.Error("actor body panicked",
				zap.String("task_id", id),
				zap.Any("panic", r),
				zap.ByteString("stack", stack))
			c.complete(nil, &ExecError{TaskID: id, Reason: "panic", Panic: r, Stack: stack})
		}
	}()
	v, err := body()
	c.complete(v, err)
}

// GoSpawner runs each body on its own goroutine. This is the default backend:
// actors are cheap, the runtime schedules them freely, and a panicking body
// resolves its completion with an *ExecError instead of crashing the process.
type GoSpawner struct {
	log *zap.Logger
}

// NewGoSpawner creates a GoSpawner.
func NewGoSpawner(opts ...Option) *GoSpawner {
	return &GoSpawner{log: newOptions(opts).log}
}

// Spawn implements Spawner.
func (s *GoSpawner) Spawn(body func() (any, error)) Completion {
	c := newCompletion()
	id := uuid.NewString()
	go runBody(id, body, c, s.log)
	return c
}

// SyncSpawner runs each body inline, on the calling goroutine, before Spawn
// returns. It exists so actor bodies can be unit-tested deterministically
// without a concurrent runtime: by the time Spawn returns, the completion is
// resolved. Bodies that wait for messages nobody has sent yet will deadlock
// under a SyncSpawner; pre-load the mailbox and release the refs first.
type SyncSpawner struct {
	log *zap.Logger
}

// NewSyncSpawner creates a SyncSpawner.
func NewSyncSpawner(opts ...Option) *SyncSpawner {
	return &SyncSpawner{log: newOptions(opts).log}
}

// Spawn implements Spawner.
func (s *SyncSpawner) Spawn(body func() (any, error)) Completion {
	c := newCompletion()
	runBody(uuid.NewString(), body, c, s.log)
	return c
}
