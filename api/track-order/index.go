package handler

import (
	"net/http"

	"github.com/Lixing-Zhang/storefront-gateway/internal/server"
)

// Handler is the entry point for Vercel's Go runtime at /api/track-order
func Handler(w http.ResponseWriter, r *http.Request) {
	server.FunctionHandler().ServeHTTP(w, r)
}
