package detail

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// State is the lifecycle state of a Loader.
type State int

const (
	// StateIdle means no key has been requested yet.
	StateIdle State = iota
	// StateLoading means a request for the current key is outstanding.
	StateLoading
	// StateLoaded means the value for the current key is available.
	StateLoaded
	// StateFailed means the last request for the current key failed.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// generation issues request tokens. It is shared by all loaders so a result
// can never match a request it did not come from.
var generation atomic.Uint64 //nolint:gochecknoglobals // Process-wide token source.

// Fetcher retrieves the value for key. It must honour ctx cancellation.
type Fetcher[T any] func(ctx context.Context, key string) (T, error)

// Result is the message a load command produces.
type Result[T any] struct {
	Key   string
	Gen   uint64
	Value T
	Err   error
}

// Loader runs one outstanding fetch at a time for a detail view.
type Loader[T any] struct {
	parent context.Context
	fetch  Fetcher[T]
	// last is the fetcher of the current request, reused by Retry.
	last Fetcher[T]

	key    string
	gen    uint64
	cancel context.CancelFunc

	state    State
	value    T
	err      error
	disposed bool
}

// NewLoader creates a loader whose requests derive from ctx. fetch may be nil
// when every request goes through LoadFunc.
func NewLoader[T any](ctx context.Context, fetch Fetcher[T]) *Loader[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Loader[T]{parent: ctx, fetch: fetch}
}

// Load starts fetching key and returns the command that performs it.
// An empty key cancels any in-flight request and returns the loader to idle.
// Loading the key that is already in flight returns nil so there is never
// more than one request per key.
func (l *Loader[T]) Load(key string) tea.Cmd {
	if l.disposed {
		return nil
	}
	if key == "" {
		l.reset()
		return nil
	}
	if l.fetch == nil {
		return nil
	}
	if key == l.key && l.state == StateLoading {
		return nil
	}
	return l.start(key, l.fetch)
}

// LoadFunc is Load with a one-off fetcher, for views whose fetch closes over
// per-request state.
func (l *Loader[T]) LoadFunc(key string, fetch Fetcher[T]) tea.Cmd {
	if l.disposed {
		return nil
	}
	if key == "" {
		l.reset()
		return nil
	}
	if fetch == nil {
		return nil
	}
	return l.start(key, fetch)
}

// Retry re-issues the request for the current key after a failure.
func (l *Loader[T]) Retry() tea.Cmd {
	if l.disposed || l.key == "" || l.state != StateFailed {
		return nil
	}
	return l.start(l.key, l.last)
}

func (l *Loader[T]) start(key string, fetch Fetcher[T]) tea.Cmd {
	l.cancelInFlight()

	ctx, cancel := context.WithCancel(l.parent)
	gen := generation.Add(1)

	var zero T
	l.key = key
	l.last = fetch
	l.gen = gen
	l.cancel = cancel
	l.state = StateLoading
	l.value = zero
	l.err = nil

	return func() tea.Msg {
		v, err := fetch(ctx, key)
		return Result[T]{Key: key, Gen: gen, Value: v, Err: err}
	}
}

// reset forgets the current request so no outstanding result can match it.
func (l *Loader[T]) reset() {
	l.cancelInFlight()

	var zero T
	l.key = ""
	l.gen = 0
	l.state = StateIdle
	l.value = zero
	l.err = nil
}

// Accept applies res if it answers the current request and reports whether
// it did. Results from superseded requests or a disposed loader are dropped.
func (l *Loader[T]) Accept(res Result[T]) bool {
	if l.disposed || res.Gen != l.gen || res.Key != l.key || l.state != StateLoading {
		return false
	}
	l.cancelInFlight()

	if res.Err != nil {
		l.state = StateFailed
		l.err = res.Err
		return true
	}
	l.state = StateLoaded
	l.value = res.Value
	return true
}

// Dispose cancels any in-flight request. The loader ignores everything after.
func (l *Loader[T]) Dispose() {
	l.cancelInFlight()
	l.disposed = true
}

func (l *Loader[T]) cancelInFlight() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// State returns the current lifecycle state.
func (l *Loader[T]) State() State { return l.state }

// Key returns the key of the current or last request.
func (l *Loader[T]) Key() string { return l.key }

// Generation returns the token of the current request.
func (l *Loader[T]) Generation() uint64 { return l.gen }

// Err returns the retained error of the last failed request.
func (l *Loader[T]) Err() error { return l.err }

// Disposed reports whether Dispose has been called.
func (l *Loader[T]) Disposed() bool { return l.disposed }

// Value returns the loaded value and whether one is present.
func (l *Loader[T]) Value() (T, bool) {
	return l.value, l.state == StateLoaded
}
