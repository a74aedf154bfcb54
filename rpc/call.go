package rpc

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/atomic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// RequestParamsHeader carries the routing parameters of a call.
const RequestParamsHeader = "x-goog-request-params"

// Call is an asynchronous invocation started with Go.
type Call struct {
	Method   string
	Request  any
	Response any
	// Error is set once the call has finished.
	Error error
	// Done receives the call when it finishes.
	Done chan *Call

	finished  *atomic.Bool
	mu        sync.Mutex
	callbacks []func(resp any, err error)
}

// Then registers fn to run with the response and error when the call
// finishes. If the call has already finished fn runs immediately.
func (c *Call) Then(fn func(resp any, err error)) *Call {
	c.mu.Lock()
	if !c.finished.Load() {
		c.callbacks = append(c.callbacks, fn)
		c.mu.Unlock()
		return c
	}
	c.mu.Unlock()
	fn(c.Response, c.Error)
	return c
}

// Finished reports whether the call has completed.
func (c *Call) Finished() bool {
	return c.finished.Load()
}

func (c *Call) finish(err error) {
	c.mu.Lock()
	c.Error = err
	c.finished.Store(true)
	callbacks := c.callbacks
	c.callbacks = nil
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(c.Response, c.Error)
	}
	select {
	case c.Done <- c:
	default:
		// Done is full; the caller sized the channel too small and loses
		// this notification, as with net/rpc.
	}
}

// stub forwards the calls of one service to a transport.
type stub struct {
	transport Transport
	service   string
}

func (s *stub) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	if params := requestParams(in); params != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, RequestParamsHeader, params)
	}
	return s.transport.Invoke(ctx, "/"+s.service+"/"+method, in, out, opts...)
}

// Go invokes method asynchronously. method is the short method name, such as
// "GetTable", and resp must be a new message of the method's response type.
// If done is nil a channel is allocated; otherwise it must be buffered.
func (s *stub) Go(ctx context.Context, method string, req, resp any, done chan *Call) *Call {
	if done == nil {
		done = make(chan *Call, 1)
	} else if cap(done) == 0 {
		panic("rpc: done channel is unbuffered")
	}
	call := &Call{
		Method:   method,
		Request:  req,
		Response: resp,
		Done:     done,
		finished: atomic.NewBool(false),
	}
	go func() {
		call.finish(s.invoke(ctx, method, req, resp))
	}()
	return call
}

// requestParams derives the routing header from the resource the request
// addresses.
func requestParams(req any) string {
	if r, ok := req.(interface{ GetName() string }); ok && r.GetName() != "" {
		return "name=" + url.QueryEscape(r.GetName())
	}
	if r, ok := req.(interface{ GetParent() string }); ok && r.GetParent() != "" {
		return "parent=" + url.QueryEscape(r.GetParent())
	}
	return ""
}
