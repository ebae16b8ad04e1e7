package oauth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"instakit/pkg/logger"
)

// DefaultPageTimeout bounds how long the authorize page may take to
// load before the flow is abandoned.
const DefaultPageTimeout = 30 * time.Second

// ChromeSurface presents the authorization page in a visible Chrome
// window driven over the DevTools protocol. Every request the page
// issues is paused and reported to the flow before it leaves the
// browser, which is what lets the token-bearing redirect be captured
// and aborted before it commits.
type ChromeSurface struct {
	// PageTimeout bounds the initial page load. Zero means
	// DefaultPageTimeout.
	PageTimeout time.Duration
	// UserDataDir, when set, gives Chrome a dedicated profile
	// directory.
	UserDataDir string
	// AllocatorOptions are appended to the default Chrome launch
	// options.
	AllocatorOptions []chromedp.ExecAllocatorOption
	// Logger may be nil.
	Logger logger.Logger
}

func (s *ChromeSurface) log() logger.Logger {
	if s.Logger == nil {
		return logger.Nop()
	}
	return s.Logger
}

// Present opens the browser, clears its cookies and cache so stale
// sessions cannot complete the flow silently, navigates to the
// authorize URL, and blocks until the flow completes, the window is
// closed, or ctx is cancelled.
func (s *ChromeSurface) Present(ctx context.Context, flow *Flow) error {
	timeout := s.PageTimeout
	if timeout <= 0 {
		timeout = DefaultPageTimeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)
	if s.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(s.UserDataDir))
	}
	opts = append(opts, s.AllocatorOptions...)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	loaded := make(chan struct{})
	var loadOnce sync.Once
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		switch e := ev.(type) {
		case *fetch.EventRequestPaused:
			go s.resolveRequest(browserCtx, flow, e)
		case *page.EventLoadEventFired:
			loadOnce.Do(func() { close(loaded) })
		}
	})

	if err := chromedp.Run(browserCtx,
		network.Enable(),
		network.ClearBrowserCookies(),
		network.ClearBrowserCache(),
		fetch.Enable(),
	); err != nil {
		return fmt.Errorf("browser setup failed: %w", err)
	}

	s.log().WithField("url", flow.AuthorizeURL()).Debug("presenting authorization page")

	navDone := make(chan error, 1)
	go func() {
		navDone <- chromedp.Run(browserCtx, chromedp.Navigate(flow.AuthorizeURL()))
	}()

	select {
	case <-loaded:
	case <-flow.Done():
		return nil
	case <-browserCtx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return errors.New("authorization page did not load in time")
	}

	for {
		select {
		case <-flow.Done():
			return nil
		case <-browserCtx.Done():
			// The user closed the window; the flow stays incomplete
			// and the caller treats the dismissal as a cancellation.
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case err := <-navDone:
			// A nil error is the authorize page finishing its load; an
			// aborted redirect also surfaces here after the flow has
			// already completed. Neither ends the presentation.
			navDone = nil
			if err != nil {
				s.log().WithError(err).Debug("navigation ended")
			}
		}
	}
}

// resolveRequest asks the flow about one paused request and continues
// or aborts it accordingly.
func (s *ChromeSurface) resolveRequest(browserCtx context.Context, flow *Flow, ev *fetch.EventRequestPaused) {
	c := chromedp.FromContext(browserCtx)
	execCtx := cdp.WithExecutor(browserCtx, c.Target)
	if flow.Intercept(ev.Request.URL) == DecisionCancel {
		if err := fetch.FailRequest(ev.RequestID, network.ErrorReasonAborted).Do(execCtx); err != nil {
			s.log().WithError(err).Debug("failed to abort redirect request")
		}
		return
	}
	if err := fetch.ContinueRequest(ev.RequestID).Do(execCtx); err != nil {
		s.log().WithError(err).Debug("failed to continue request")
	}
}
