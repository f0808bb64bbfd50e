package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

// New. http.Server whose request contexts derive from ctx.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: http.TimeoutHandler(handler, config.Timeout, `{"error":{"code":"timeout","message":"request timed out"}}`),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       config.Timeout,
		WriteTimeout:      config.Timeout + 5*time.Second,
		IdleTimeout:       2 * config.Timeout,
	}
}
