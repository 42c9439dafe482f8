// Package observability provides hooks for logging and metrics around API calls.
//
// The REST client emits events through a process-wide [HTTPHooks]
// implementation. The default is a no-op; the CLI registers a logger-backed
// implementation at startup, and library users can plug in their own
// metrics or tracing backend without the client depending on it:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHooks{})
//	    // ... create clients and run
//	}
//
// Every event carries a [RequestInfo] so that request, response and error
// events for the same call can be correlated by ID.
package observability

import (
	"context"
	"sync"
	"time"
)

// RequestInfo identifies a single outgoing API call.
type RequestInfo struct {
	ID     string // Value of the X-Request-Id header
	Method string // HTTP verb
	Host   string // Server host, e.g. "ws.opencb.org"
	Path   string // URL path without query string
}

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, req RequestInfo)

	// OnResponse records an HTTP response, whatever its status.
	OnResponse(ctx context.Context, req RequestInfo, statusCode int, duration time.Duration)

	// OnError records a transport failure (connection refused, timeout, cancellation).
	OnError(ctx context.Context, req RequestInfo, err error)
}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, RequestInfo)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, RequestInfo, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, RequestInfo, error)                 {}

var (
	hooksMu   sync.RWMutex
	httpHooks HTTPHooks = NoopHTTPHooks{}
)

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
// A nil argument is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	httpHooks = NoopHTTPHooks{}
}
