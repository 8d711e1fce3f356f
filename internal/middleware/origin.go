package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Lixing-Zhang/storefront-gateway/internal/config"
)

// Decision is the outcome of checking a request's origin and method
type Decision int

const (
	DecisionReject Decision = iota
	DecisionPreflight
	DecisionMethodNotAllowed
	DecisionAllow
)

const (
	allowMethods = "POST, OPTIONS"
	allowHeaders = "Content-Type, Accept, Authorization, X-Requested-With"
)

// OriginGate admits POST requests from a fixed set of browser origins
type OriginGate struct {
	allowed map[string]bool
}

// NewOriginGate builds a gate over the given allow-list
func NewOriginGate(origins []string) *OriginGate {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[config.NormalizeOrigin(o)] = true
	}
	return &OriginGate{allowed: allowed}
}

// Allowed reports whether a (normalized) origin is on the list
func (g *OriginGate) Allowed(origin string) bool {
	return g.allowed[config.NormalizeOrigin(origin)]
}

// CheckOrigin decides how a request with the given Origin header and method is handled
func (g *OriginGate) CheckOrigin(originHeader, method string) Decision {
	if !g.Allowed(originHeader) {
		return DecisionReject
	}
	switch method {
	case http.MethodOptions:
		return DecisionPreflight
	case http.MethodPost:
		return DecisionAllow
	default:
		return DecisionMethodNotAllowed
	}
}

// Handler runs the gate before next
func (g *OriginGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := config.NormalizeOrigin(r.Header.Get("Origin"))
		w.Header().Add("Vary", "Origin")

		switch g.CheckOrigin(origin, r.Method) {
		case DecisionReject:
			message := "Forbidden origin"
			if r.Method == http.MethodOptions {
				message = "CORS: origin not allowed"
			}
			writeGateJSON(w, http.StatusForbidden, map[string]string{
				"error":  message,
				"origin": origin,
			})
		case DecisionPreflight:
			setCORSHeaders(w, origin)
			w.WriteHeader(http.StatusNoContent)
		case DecisionMethodNotAllowed:
			setCORSHeaders(w, origin)
			writeGateJSON(w, http.StatusMethodNotAllowed, map[string]string{
				"error": "Method not allowed",
			})
		default:
			setCORSHeaders(w, origin)
			next.ServeHTTP(w, r)
		}
	})
}

func setCORSHeaders(w http.ResponseWriter, origin string) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", allowMethods)
	h.Set("Access-Control-Allow-Headers", allowHeaders)
}

func writeGateJSON(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
