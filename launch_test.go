// File: launch_test.go
package troupe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// greeting is the message type for the greeter actor: a name plus the address
// to send the greeting back to.
type greeting struct {
	name    string
	replyTo *ActorRef[string]
}

func TestLaunch_HelloReply(t *testing.T) {
	factory := NewQueueFactory()
	spawner := NewGoSpawner()

	refA, handleA := Launch(factory, spawner, func(actx *Context[greeting]) (string, error) {
		for {
			msg, err := actx.Receive(context.Background())
			if err != nil {
				return "", err
			}
			msg.replyTo.Tell("Hello " + msg.name + "!")
		}
	})

	replies := make(chan string, 1)
	refB, handleB := Launch(factory, spawner, func(actx *Context[string]) (string, error) {
		msg, err := actx.Receive(context.Background())
		if err != nil {
			return "", err
		}
		replies <- msg
		return "buh", nil
	})

	refA.Tell(greeting{name: "Fred", replyTo: refB})

	select {
	case got := <-replies:
		assert.Equal(t, "Hello Fred!", got)
	case <-time.After(2 * time.Second):
		t.Fatal("no reply from greeter")
	}

	v, err := handleB.Await(recvCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "buh", v)

	// Dropping the only address terminates the greeter's receive loop with a
	// body failure carrying the no-sender condition.
	refA.Release()
	_, err = handleA.Await(recvCtx(t))
	assert.ErrorIs(t, err, ErrNoSender)
	var execErr *ExecError
	assert.False(t, errors.As(err, &execErr), "a drained mailbox is the body's own failure, not an execution failure")
}

func TestLaunch_CompletionValue(t *testing.T) {
	ref, handle := Launch(NewQueueFactory(), NewGoSpawner(), func(actx *Context[int]) (int, error) {
		msg, err := actx.Receive(context.Background())
		if err != nil {
			return 0, err
		}
		return msg + 41, nil
	})
	defer ref.Release()

	ref.Tell(1)
	v, err := handle.Await(recvCtx(t))
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestLaunch_DroppedWhileBlocked(t *testing.T) {
	results := make(chan error, 1)
	ref, handle := Launch(NewQueueFactory(), NewGoSpawner(), func(actx *Context[int]) (int, error) {
		_, err := actx.Receive(context.Background())
		results <- err
		return 0, nil
	})

	// The body must still be parked in Receive while a ref exists.
	time.Sleep(200 * time.Millisecond)
	select {
	case err := <-results:
		t.Fatalf("receive resolved early: %v", err)
	default:
	}

	ref.Release()

	_, err := handle.Await(recvCtx(t))
	require.NoError(t, err)
	select {
	case err := <-results:
		assert.ErrorIs(t, err, ErrNoSender)
	case <-time.After(2 * time.Second):
		t.Fatal("receive never observed the release")
	}
}

func TestLaunch_PanicIsExecError(t *testing.T) {
	ref, handle := Launch(NewQueueFactory(), NewGoSpawner(), func(actx *Context[string]) (int, error) {
		msg, err := actx.Receive(context.Background())
		if err != nil {
			return 0, err
		}
		panic("bad message: " + msg)
	})
	defer ref.Release()

	ref.Tell("oops")
	_, err := handle.Await(recvCtx(t))
	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "bad message: oops", execErr.Panic)
}

func TestLaunch_Isolation(t *testing.T) {
	factory := NewQueueFactory()
	spawner := NewGoSpawner()

	collect := func(actx *Context[int]) ([]int, error) {
		var got []int
		for {
			msg, err := actx.Receive(context.Background())
			if errors.Is(err, ErrNoSender) {
				return got, nil
			}
			if err != nil {
				return nil, err
			}
			got = append(got, msg)
		}
	}

	refA, handleA := Launch(factory, spawner, collect)
	refB, handleB := Launch(factory, spawner, collect)

	refA.Tell(1)
	refB.Tell(10)
	refA.Tell(2)
	refB.Tell(20)
	refA.Release()
	refB.Release()

	gotA, err := handleA.Await(recvCtx(t))
	require.NoError(t, err)
	gotB, err := handleB.Await(recvCtx(t))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, gotA)
	assert.Equal(t, []int{10, 20}, gotB)
}

func TestLaunch_TellAfterBodyReturns(t *testing.T) {
	ref, handle := Launch(NewQueueFactory(), NewGoSpawner(), func(actx *Context[int]) (int, error) {
		return 1, nil
	})

	<-handle.Done()

	// The receiver is gone but references remain; sends silently fail and
	// senders get no signal. Documented asymmetry.
	ref.Tell(5)
	ref.Release()

	v, err := handle.Await(recvCtx(t))
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestLaunch_WithSyncSpawner(t *testing.T) {
	_, handle := Launch(NewQueueFactory(), NewSyncSpawner(), func(actx *Context[int]) (int, error) {
		return 6 * 7, nil
	})

	select {
	case <-handle.Done():
	default:
		t.Fatal("sync launch should resolve before returning")
	}
	v, err := handle.Await(recvCtx(t))
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestLaunch_WithPoolSpawner(t *testing.T) {
	pool := NewPoolSpawner(2)
	factory := NewQueueFactory()

	echo := func(actx *Context[string]) (string, error) {
		msg, err := actx.Receive(context.Background())
		if err != nil {
			return "", err
		}
		return msg, nil
	}

	refA, handleA := Launch(factory, pool, echo)
	refB, handleB := Launch(factory, pool, echo)
	refA.Tell("left")
	refB.Tell("right")
	refA.Release()
	refB.Release()

	gotA, err := handleA.Await(recvCtx(t))
	require.NoError(t, err)
	gotB, err := handleB.Await(recvCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "left", gotA)
	assert.Equal(t, "right", gotB)

	pool.Wait()
}
