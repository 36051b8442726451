package testutil

import (
	"context"
	"net/http"
)

// FakeHTTPServer stands in for the server's HTTP listener. ListenAndServe
// returns ListenErr right away; set it to http.ErrServerClosed to mimic a
// clean stop. When Block is non-nil, Shutdown waits for it to close or for
// ctx to expire.
type FakeHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	ListenCalls   int
	ShutdownCalls int
}

func (f *FakeHTTPServer) ListenAndServe() error {
	f.ListenCalls++
	return f.ListenErr
}

func (f *FakeHTTPServer) Shutdown(ctx context.Context) error {
	f.ShutdownCalls++
	if f.Block != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.Block:
		}
	}
	return f.ShutdownErr
}

func (f *FakeHTTPServer) Addr() string {
	if f.AddrVal == "" {
		return ":0"
	}
	return f.AddrVal
}

func (f *FakeHTTPServer) Handler() http.Handler {
	if f.HandlerVal == nil {
		return http.NewServeMux()
	}
	return f.HandlerVal
}
