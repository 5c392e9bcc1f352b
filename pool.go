// File: pool.go
package troupe

import (
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PoolSpawner is a Spawner bound to an execution pool it owns, for embedders
// that want a lid on actor concurrency instead of a goroutine per launch.
//
// With a positive limit, at most that many bodies run at once; a spawn that
// arrives while the pool is full is rejected, and its completion resolves
// immediately with an *ExecError. Rejection rather than queueing keeps Spawn
// non-blocking and makes the "substrate refused the task" outcome observable.
// With limit <= 0 the pool is unbounded and only Wait distinguishes it from
// GoSpawner.
type PoolSpawner struct {
	group  errgroup.Group
	log    *zap.Logger
	closed atomic.Bool
}

// NewPoolSpawner creates a pool running at most limit bodies concurrently.
// limit <= 0 means no limit.
func NewPoolSpawner(limit int, opts ...Option) *PoolSpawner {
	s := &PoolSpawner{log: newOptions(opts).log}
	if limit > 0 {
		s.group.SetLimit(limit)
	}
	return s
}

// Spawn implements Spawner. After Wait has been called the pool is closed and
// every further spawn is rejected.
func (s *PoolSpawner) Spawn(body func() (any, error)) Completion {
	c := newCompletion()
	id := uuid.NewString()

	if s.closed.Load() {
		c.complete(nil, &ExecError{TaskID: id, Reason: "spawner closed"})
		return c
	}

	started := s.group.TryGo(func() error {
		runBody(id, body, c, s.log)
		return nil
	})
	if !started {
		s.log.Warn("spawn rejected, pool at capacity", zap.String("task_id", id))
		c.complete(nil, &ExecError{TaskID: id, Reason: "pool at capacity"})
	}
	return c
}

// Wait closes the pool to new spawns and blocks until every body already
// running has completed. Call it once, during shutdown of whatever owns the
// pool.
func (s *PoolSpawner) Wait() {
	s.closed.Store(true)
	// Bodies report their outcome through their completion; the group error
	// is always nil.
	_ = s.group.Wait()
}
