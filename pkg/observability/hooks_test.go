package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()
	req := RequestInfo{ID: "1", Method: "POST", Host: "ws.opencb.org", Path: "/opencga/webservices/rest/v2/operation/variant/aggregate"}

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, req)
	h.OnResponse(ctx, req, 200, time.Second)
	h.OnError(ctx, req, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &recordingHooks{}
	SetHTTPHooks(custom)
	if HTTP() != custom {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// nil is ignored
	SetHTTPHooks(nil)
	if HTTP() != custom {
		t.Error("SetHTTPHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	custom := &recordingHooks{}
	SetHTTPHooks(custom)

	ctx := context.Background()
	req := RequestInfo{ID: "abc", Method: "DELETE", Host: "localhost", Path: "/v2/operation/variant/score/delete"}
	HTTP().OnRequest(ctx, req)
	HTTP().OnResponse(ctx, req, 204, 10*time.Millisecond)
	HTTP().OnError(ctx, req, errors.New("boom"))

	if len(custom.events) != 3 {
		t.Fatalf("got %d events, want 3: %v", len(custom.events), custom.events)
	}
	want := []string{"request:abc", "response:abc", "error:abc"}
	for i, w := range want {
		if custom.events[i] != w {
			t.Errorf("event[%d] = %q, want %q", i, custom.events[i], w)
		}
	}
}

func TestConcurrentHooksAccess(t *testing.T) {
	Reset()
	defer Reset()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetHTTPHooks(&recordingHooks{})
		}()
		go func() {
			defer wg.Done()
			_ = HTTP()
		}()
	}
	wg.Wait()
}

type recordingHooks struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnRequest(_ context.Context, req RequestInfo) {
	h.record("request:" + req.ID)
}

func (h *recordingHooks) OnResponse(_ context.Context, req RequestInfo, _ int, _ time.Duration) {
	h.record("response:" + req.ID)
}

func (h *recordingHooks) OnError(_ context.Context, req RequestInfo, _ error) {
	h.record("error:" + req.ID)
}
