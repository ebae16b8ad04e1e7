package oauth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"instakit/pkg/apierror"
)

// State is the lifecycle position of a Flow. The three completion
// states are terminal; once one is reached, every later event is
// absorbed without effect.
type State string

const (
	StateIdle             State = "idle"
	StatePresenting       State = "presenting"
	StateAwaitingRedirect State = "awaiting_redirect"
	StateSucceeded        State = "succeeded"
	StateCancelled        State = "cancelled"
	StateFailed           State = "failed"
)

// Decision tells a Surface what to do with an intercepted navigation.
type Decision int

const (
	// DecisionAllow lets the navigation proceed.
	DecisionAllow Decision = iota
	// DecisionCancel aborts the navigation before it commits. The
	// redirect carrying the token must never load, the fragment would
	// otherwise reach the redirect host.
	DecisionCancel
)

// Surface presents an authorization page to the user and reports every
// navigation intent back to the flow before it commits. Present blocks
// until the flow completes, the surface is dismissed by the user, or
// ctx is cancelled; it returns a non-nil error only for surface-level
// failures such as a page that never loads.
type Surface interface {
	Present(ctx context.Context, flow *Flow) error
}

// Flow is one run of the implicit authorization flow. A Flow is used
// once; it moves from idle through presenting and awaiting_redirect to
// exactly one terminal state, and completes exactly once no matter how
// many events race in.
type Flow struct {
	cfg      Config
	url      string
	prefixes []string

	mu    sync.Mutex
	state State

	once  sync.Once
	done  chan struct{}
	token string
	err   error
}

// NewFlow creates an idle flow for the given application identity.
func NewFlow(cfg Config) (*Flow, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Flow{
		cfg:      cfg,
		url:      AuthorizeURL(cfg),
		prefixes: redirectPrefixes(cfg.RedirectURI),
		state:    StateIdle,
		done:     make(chan struct{}),
	}, nil
}

// AuthorizeURL returns the page the surface must present.
func (f *Flow) AuthorizeURL() string {
	return f.url
}

// State returns the flow's current lifecycle position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Done is closed when the flow reaches a terminal state.
func (f *Flow) Done() <-chan struct{} {
	return f.done
}

// Run presents the flow on the surface and blocks until it completes.
// Cancelling ctx counts as the user abandoning the flow, as does the
// surface being dismissed without a redirect.
func (f *Flow) Run(ctx context.Context, surface Surface) (string, error) {
	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return "", errors.New("oauth: flow already started")
	}
	f.state = StatePresenting
	f.mu.Unlock()

	presented := make(chan error, 1)
	go func() { presented <- surface.Present(ctx, f) }()

	select {
	case <-f.done:
	case <-ctx.Done():
		f.Cancel()
	case err := <-presented:
		if err != nil {
			f.Fail(err)
		} else {
			f.Cancel()
		}
	}
	return f.Result()
}

// Result blocks until the flow completes and returns its outcome.
func (f *Flow) Result() (string, error) {
	<-f.done
	return f.token, f.err
}

// Intercept inspects one navigation intent. A redirect carrying the
// token completes the flow and must be cancelled by the surface; a
// redirect without one means the server finished the flow without
// issuing a token. Everything else is ordinary page traffic and is
// allowed through.
func (f *Flow) Intercept(target string) Decision {
	f.mu.Lock()
	switch f.state {
	case StateSucceeded, StateCancelled, StateFailed:
		f.mu.Unlock()
		return DecisionAllow
	case StatePresenting:
		f.state = StateAwaitingRedirect
	}
	f.mu.Unlock()

	for _, prefix := range f.prefixes {
		if strings.HasPrefix(target, prefix) {
			token := target[len(prefix):]
			if cut := strings.IndexByte(token, '&'); cut >= 0 {
				token = token[:cut]
			}
			if token == "" {
				f.complete(StateFailed, "", &apierror.Error{Kind: apierror.KindServerError})
				return DecisionCancel
			}
			f.complete(StateSucceeded, token, nil)
			return DecisionCancel
		}
	}

	if f.isBareRedirect(target) {
		// The server sent the user back without a token. There is no
		// secret to protect, so the navigation may proceed.
		f.complete(StateFailed, "", &apierror.Error{Kind: apierror.KindServerError})
		return DecisionAllow
	}
	return DecisionAllow
}

// isBareRedirect reports a navigation back to the redirect URI that
// carries no access token fragment.
func (f *Flow) isBareRedirect(target string) bool {
	uri := strings.TrimSuffix(f.cfg.RedirectURI, "/")
	trimmed := strings.TrimSuffix(target, "/")
	if trimmed == uri {
		return true
	}
	for _, sep := range []string{"?", "#"} {
		if strings.HasPrefix(target, uri+sep) || strings.HasPrefix(target, uri+"/"+sep) {
			return true
		}
	}
	return false
}

// Cancel records a user-initiated abandonment of the flow.
func (f *Flow) Cancel() {
	f.complete(StateCancelled, "", apierror.UserCancelled())
}

// Fail records a surface-level failure.
func (f *Flow) Fail(err error) {
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		apiErr = apierror.Unknown(err)
	}
	f.complete(StateFailed, "", apiErr)
}

func (f *Flow) complete(state State, token string, err error) {
	f.once.Do(func() {
		f.mu.Lock()
		f.state = state
		f.token = token
		f.err = err
		f.mu.Unlock()
		close(f.done)
	})
}
