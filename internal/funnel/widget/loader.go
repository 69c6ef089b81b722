package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State tracks the loader lifecycle. Failed is terminal; a failed loader
// never retries.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrMissingPublicKey = errors.New("payment public key is not configured")
	ErrLibraryFetch     = errors.New("failed to load payment library")
)

// Provider resolves the payment library. Existing reports a runtime that
// is already present; Fetch pulls it from the vendor.
type Provider interface {
	Existing() (Library, bool)
	Fetch(ctx context.Context) (Library, error)
}

// StaticProvider always reports the wrapped library as already present.
type StaticProvider struct {
	Library Library
}

func (p StaticProvider) Existing() (Library, bool) { return p.Library, p.Library != nil }

func (p StaticProvider) Fetch(context.Context) (Library, error) {
	if p.Library == nil {
		return nil, ErrLibraryFetch
	}
	return p.Library, nil
}

// Loader resolves and configures the payment library exactly once. All
// callers after the first observe the cached outcome, success or
// failure alike.
type Loader struct {
	mu        sync.Mutex
	state     State
	publicKey string
	provider  Provider
	lib       Library
	err       error
	fetched   bool
}

func NewLoader(publicKey string, provider Provider) *Loader {
	return &Loader{
		state:     StateUnloaded,
		publicKey: publicKey,
		provider:  provider,
	}
}

// Load returns the configured library, resolving it on first use. A
// missing public key fails immediately without touching the provider.
func (l *Loader) Load(ctx context.Context) (Library, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateReady:
		return l.lib, nil
	case StateFailed:
		return nil, l.err
	}

	if l.publicKey == "" {
		return nil, l.fail(ErrMissingPublicKey)
	}

	l.state = StateLoading

	lib, ok := l.provider.Existing()
	if !ok {
		if l.fetched {
			return nil, l.fail(ErrLibraryFetch)
		}
		l.fetched = true

		var err error
		lib, err = l.provider.Fetch(ctx)
		if err != nil {
			return nil, l.fail(fmt.Errorf("%w: %v", ErrLibraryFetch, err))
		}
	}

	if err := lib.Configure(l.publicKey); err != nil {
		return nil, l.fail(fmt.Errorf("error initializing payment system: %w", err))
	}

	l.lib = lib
	l.state = StateReady
	return lib, nil
}

// State reports the current lifecycle state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err returns the terminal error when the loader has failed.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Loader) fail(err error) error {
	l.state = StateFailed
	l.err = err
	return err
}
