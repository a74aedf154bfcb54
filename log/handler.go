package log

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// RequestIDHeader carries the id assigned to each logged HTTP request.
const RequestIDHeader = "X-Request-Id"

type loggingHandler struct {
	handler http.Handler
	logger  Logger
}

// NewLoggingHandler logs every request served by handler along with its status and latency.
func NewLoggingHandler(handler http.Handler, logger Logger) http.Handler {
	return &loggingHandler{handler: handler, logger: logger}
}

func (h *loggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	w.Header().Set(RequestIDHeader, id)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	h.handler.ServeHTTP(rec, r)

	h.logger.Info("request served",
		"requestId", id,
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"elapsed", time.Since(start))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// UnaryClientInterceptor logs each outgoing admin RPC. Failed calls are logged as warnings.
func UnaryClientInterceptor(logger Logger) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		code := status.Code(err)
		if err != nil {
			logger.Warn("rpc failed",
				"method", method,
				"code", code.String(),
				"elapsed", time.Since(start),
				"error", err)
		} else {
			logger.Debug("rpc finished",
				"method", method,
				"code", code.String(),
				"elapsed", time.Since(start))
		}
		return err
	}
}
