package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/Lixing-Zhang/storefront-gateway/internal/config"
	"github.com/Lixing-Zhang/storefront-gateway/pkg/logger"
)

var (
	functionOnce    sync.Once
	functionHandler http.Handler
)

// FunctionHandler returns the router for serverless runtimes, built once per
// cold start from the process environment. A configuration error is
// answered with 500 on every request rather than crashing the function.
func FunctionHandler() http.Handler {
	functionOnce.Do(func() {
		cfg, err := config.Load("")
		if err != nil {
			slog.Error("failed to load configuration", "error", err)
			functionHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"server_error","detail":"invalid configuration"}`))
			})
			return
		}
		functionHandler = NewRouter(cfg, logger.New(cfg.LogLevel), Options{})
	})
	return functionHandler
}
