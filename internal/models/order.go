package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// OrderToken is a user supplied order identifier.
// The storefront widget may send it as a JSON string or a bare number.
type OrderToken string

// UnmarshalJSON accepts strings, numbers and null
func (t *OrderToken) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = OrderToken(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("order token must be a string or number: %w", err)
	}
	*t = OrderToken(n.String())
	return nil
}

// OrderQuery represents an incoming order tracking request.
// OrderNumber is the field name older widget builds send; call Normalize
// before validating.
type OrderQuery struct {
	OrderToken  OrderToken `json:"orderToken" validate:"required"`
	OrderNumber OrderToken `json:"orderNumber"`
	Email       string     `json:"email" validate:"required"`
}

// Normalize trims both fields and folds the legacy alias into OrderToken
func (q *OrderQuery) Normalize() {
	if strings.TrimSpace(string(q.OrderToken)) == "" {
		q.OrderToken = q.OrderNumber
	}
	q.OrderToken = OrderToken(strings.TrimSpace(string(q.OrderToken)))
	q.OrderNumber = ""
	q.Email = strings.TrimSpace(q.Email)
}

// ShopifyOrder is the subset of an Admin API order record the gateway reads
type ShopifyOrder struct {
	ID                int64                `json:"id"`
	Name              string               `json:"name"`
	Email             string               `json:"email"`
	FulfillmentStatus *string              `json:"fulfillment_status"`
	FinancialStatus   *string              `json:"financial_status"`
	OrderStatusURL    *string              `json:"order_status_url"`
	ProcessedAt       *string              `json:"processed_at"`
	CreatedAt         *string              `json:"created_at"`
	ShippingAddress   json.RawMessage      `json:"shipping_address"`
	Fulfillments      []ShopifyFulfillment `json:"fulfillments"`
	LineItems         []ShopifyLineItem    `json:"line_items"`
}

type ShopifyFulfillment struct {
	TrackingURL  *string  `json:"tracking_url"`
	TrackingURLs []string `json:"tracking_urls"`
}

type ShopifyLineItem struct {
	Title             string  `json:"title"`
	Quantity          int     `json:"quantity"`
	SKU               *string `json:"sku"`
	FulfillmentStatus *string `json:"fulfillment_status"`
}

// OrdersEnvelope is the body of GET /orders.json
type OrdersEnvelope struct {
	Orders []ShopifyOrder `json:"orders"`
}

// OrderSummary is the projection returned to the storefront
type OrderSummary struct {
	OrderID           *int64            `json:"order_id"`
	OrderName         string            `json:"order_name"`
	OrderNameWithHash *string           `json:"order_name_with_hash"`
	FulfillmentStatus *string           `json:"fulfillment_status"`
	OrderStatusURL    *string           `json:"order_status_url"`
	TrackingURL       *string           `json:"tracking_url"`
	FinancialStatus   *string           `json:"financial_status"`
	ProcessedAt       *string           `json:"processed_at"`
	Email             *string           `json:"email"`
	ShippingAddress   json.RawMessage   `json:"shipping_address"`
	LineItems         []LineItemSummary `json:"line_items"`
}

type LineItemSummary struct {
	Title             string  `json:"title"`
	Quantity          int     `json:"quantity"`
	SKU               *string `json:"sku"`
	FulfillmentStatus *string `json:"fulfillment_status"`
}
