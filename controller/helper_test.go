package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"library-client/backend"
)

type stubResponse struct {
	status int
	body   string
}

type sentRequest struct {
	method string
	path   string
	body   string
}

// heldResponse parks a request in the stub until release is called.
type heldResponse struct {
	arrived chan struct{}
	gate    chan struct{}
	once    sync.Once
	aborted chan bool
}

func (held *heldResponse) release() {
	held.once.Do(func() { close(held.gate) })
}

// waitArrived blocks until the held request has reached the stub.
func (held *heldResponse) waitArrived(t *testing.T) {
	t.Helper()
	select {
	case <-held.arrived:
	case <-time.After(5 * time.Second):
		t.Fatal("held request never reached the backend")
	}
}

// stubBackend answers "METHOD /path" with a canned response and records
// every request it sees. Unknown routes answer 500.
type stubBackend struct {
	mu        sync.Mutex
	responses map[string]stubResponse
	held      map[string]*heldResponse
	sent      []sentRequest
}

func (stub *stubBackend) respond(method, path string, status int, body string) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.responses[method+" "+path] = stubResponse{status: status, body: body}
}

// hold makes the next request to method and path wait for release before
// it is answered. After answering, the stub reports on aborted whether the
// client had already given up on the request.
func (stub *stubBackend) hold(t *testing.T, method, path string) *heldResponse {
	held := &heldResponse{
		arrived: make(chan struct{}),
		gate:    make(chan struct{}),
		aborted: make(chan bool, 1),
	}
	t.Cleanup(held.release)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.held[method+" "+path] = held
	return held
}

func (stub *stubBackend) requests() []sentRequest {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return append([]sentRequest(nil), stub.sent...)
}

func newStubBackend(t *testing.T) (*stubBackend, *backend.Client) {
	t.Helper()

	stub := &stubBackend{
		responses: make(map[string]stubResponse),
		held:      make(map[string]*heldResponse),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		key := r.Method + " " + r.URL.Path

		stub.mu.Lock()
		stub.sent = append(stub.sent, sentRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		held := stub.held[key]
		delete(stub.held, key)
		stub.mu.Unlock()

		if held != nil {
			close(held.arrived)
			<-held.gate
			held.aborted <- r.Context().Err() != nil
		}

		stub.mu.Lock()
		response, ok := stub.responses[key]
		stub.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(response.status)
		io.WriteString(w, response.body)
	}))
	t.Cleanup(server.Close)

	client, err := backend.NewClient(server.URL, server.Client(), zap.NewNop())
	require.NoError(t, err)

	return stub, client
}
