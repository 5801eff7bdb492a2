package accountsdk

import (
	"context"
	"sync"
)

type gatewayState int

const (
	stateIdle gatewayState = iota
	stateRefreshing
)

// refreshGate makes sure at most one credential refresh is in flight. Calls
// that hit a 401 while a refresh is running queue up and are released with
// the refresh outcome, one at a time in FIFO order: each replay is answered
// before the next queued call goes out. generation counts settled
// refreshes, so a call can tell whether the credentials it was sent with
// are already stale.
type refreshGate struct {
	mu         sync.Mutex
	state      gatewayState
	generation uint64
	waiters    []chan handoff

	// expiredErr is the outcome of the last failed refresh and expiredAt
	// the generation it failed for. A call sent with those credentials
	// that is rejected late gets the same error without a new refresh.
	expiredErr error
	expiredAt  uint64
}

// handoff releases one queued call. next releases the call queued behind
// it and must run once the call's replay has been answered.
type handoff struct {
	err  error
	next func()
}

func noop() {}

// current returns the credential generation a request is about to be sent
// with.
func (g *refreshGate) current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation
}

// await resolves a 401 received by a call sent at generation sent. A nil
// error means the call should be replayed, after which the caller must run
// release so the next queued call can go out. Only the caller that finds
// the gate idle runs refresh; onFailure runs once, on that caller, before
// any waiter is released.
func (g *refreshGate) await(ctx context.Context, sent uint64, refresh func() error, onFailure func(error) error) (release func(), err error) {
	g.mu.Lock()
	if g.generation != sent {
		// A refresh settled after this call went out.
		err := g.expiredErr
		if g.expiredAt != sent {
			err = nil
		}
		g.mu.Unlock()
		return noop, err
	}

	if g.state == stateRefreshing {
		ch := make(chan handoff, 1)
		g.waiters = append(g.waiters, ch)
		g.mu.Unlock()

		select {
		case h := <-ch:
			return h.next, h.err
		case <-ctx.Done():
			// Pass the turn on so the calls behind this one still run.
			go func() { (<-ch).next() }()
			return noop, ctx.Err()
		}
	}

	g.state = stateRefreshing
	g.mu.Unlock()

	err = refresh()
	if err != nil {
		err = onFailure(err)
	}

	g.mu.Lock()
	g.state = stateIdle
	if err != nil {
		g.expiredErr, g.expiredAt = err, g.generation
	}
	g.generation++
	waiters := g.waiters
	g.waiters = nil
	g.mu.Unlock()

	if err != nil {
		for _, ch := range waiters {
			ch <- handoff{err: err, next: noop}
		}
		return noop, err
	}
	return releaseInOrder(waiters), nil
}

// releaseInOrder returns a func that wakes the first of waiters and hands it
// the release of the rest.
func releaseInOrder(waiters []chan handoff) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			if len(waiters) > 0 {
				waiters[0] <- handoff{next: releaseInOrder(waiters[1:])}
			}
		})
	}
}
