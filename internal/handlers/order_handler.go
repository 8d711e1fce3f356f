package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/storefront-gateway/internal/config"
	"github.com/Lixing-Zhang/storefront-gateway/internal/models"
	"github.com/Lixing-Zhang/storefront-gateway/internal/service"
)

// OrderHandler handles order tracking requests
type OrderHandler struct {
	orderService *service.OrderService
	shopify      config.ShopifyConfig
	debug        bool
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler.
// With debug set, 500 responses include the error's stack trace.
func NewOrderHandler(orderService *service.OrderService, shopify config.ShopifyConfig, debug bool, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		shopify:      shopify,
		debug:        debug,
		log:          log,
	}
}

// TrackOrder handles POST /api/track-order
func (h *OrderHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	var query models.OrderQuery

	if err := decodeJSON(w, r, &query); err != nil {
		WriteError(w, http.StatusBadRequest, "Missing order number or email", h.log)
		return
	}

	query.Normalize()
	if err := validate.Struct(query); err != nil {
		WriteError(w, http.StatusBadRequest, "Missing order number or email", h.log)
		return
	}

	if !h.orderService.Configured() {
		h.writeNotConfigured(w)
		return
	}

	summary, err := h.orderService.TrackOrder(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
		case errors.Is(err, service.ErrUpstreamUnavailable):
			WriteError(w, http.StatusBadGateway, "Upstream unavailable", h.log)
		case errors.Is(err, service.ErrShopifyNotConfigured):
			h.writeNotConfigured(w)
		default:
			h.writeInternalError(w, err)
		}
		return
	}

	WriteJSON(w, http.StatusOK, summary, h.log)
}

func (h *OrderHandler) writeNotConfigured(w http.ResponseWriter) {
	h.log.Error("order lookup not configured",
		"store_domain_set", h.shopify.StoreDomain != "",
		"admin_token_set", h.shopify.AdminAPIToken != "",
	)
	WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"error": "Missing Shopify env vars",
		"detail": map[string]string{
			"SHOPIFY_STORE_DOMAIN":    setOrMissing(h.shopify.StoreDomain),
			"SHOPIFY_ADMIN_API_TOKEN": setOrMissing(h.shopify.AdminAPIToken),
		},
	}, h.log)
}

func (h *OrderHandler) writeInternalError(w http.ResponseWriter, err error) {
	incidentID := uuid.NewString()
	stack := fmt.Sprintf("%+v", err)

	h.log.Error("order lookup failed", "incident_id", incidentID, "error", err, "stack", stack)

	body := map[string]interface{}{
		"error":       "server_error",
		"detail":      err.Error(),
		"incident_id": incidentID,
	}
	if h.debug {
		body["stack"] = stack
	}
	WriteJSON(w, http.StatusInternalServerError, body, h.log)
}

func setOrMissing(v string) string {
	if v == "" {
		return "missing"
	}
	return "set"
}
