package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/Lixing-Zhang/storefront-gateway/internal/models"
)

// StatusError reports a non-2xx answer from the Admin API
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("shopify: unexpected status %d", e.StatusCode)
}

// OrderRepository defines read access to the store's orders
//
//go:generate mockgen -source=order_repository.go -destination=../mocks/repository/order_repository_mock.go -package=repository_mock
type OrderRepository interface {
	// FindByName returns orders matching an exact order name and customer email, any status
	FindByName(ctx context.Context, name, email string) ([]models.ShopifyOrder, error)
	// ListByEmail returns every order of a customer email, any status
	ListByEmail(ctx context.Context, email string) ([]models.ShopifyOrder, error)
}

// ShopifyOrderRepository implements OrderRepository against the Shopify Admin REST API
type ShopifyOrderRepository struct {
	client     *http.Client
	baseURL    string
	token      string
	apiVersion string
}

// NewShopifyOrderRepository creates a repository for the given store.
// baseURL carries the scheme, e.g. https://shop.myshopify.com.
func NewShopifyOrderRepository(client *http.Client, baseURL, token, apiVersion string) *ShopifyOrderRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &ShopifyOrderRepository{
		client:     client,
		baseURL:    baseURL,
		token:      token,
		apiVersion: apiVersion,
	}
}

// StoreBaseURL turns a bare store domain into the Admin API base URL
func StoreBaseURL(domain string) string {
	return "https://" + domain
}

// FindByName queries orders.json?name=&email=&status=any
func (r *ShopifyOrderRepository) FindByName(ctx context.Context, name, email string) ([]models.ShopifyOrder, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("email", email)
	q.Set("status", "any")
	return r.listOrders(ctx, q)
}

// ListByEmail queries orders.json?email=&status=any
func (r *ShopifyOrderRepository) ListByEmail(ctx context.Context, email string) ([]models.ShopifyOrder, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("status", "any")
	return r.listOrders(ctx, q)
}

func (r *ShopifyOrderRepository) listOrders(ctx context.Context, q url.Values) ([]models.ShopifyOrder, error) {
	endpoint := fmt.Sprintf("%s/admin/api/%s/orders.json?%s", r.baseURL, r.apiVersion, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "shopify: create request")
	}
	req.Header.Set("X-Shopify-Access-Token", r.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "shopify: request orders")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "shopify: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.WithStack(&StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	if len(body) == 0 {
		return nil, nil
	}

	var envelope models.OrdersEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, "shopify: decode orders")
	}

	return envelope.Orders, nil
}
