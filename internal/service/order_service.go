package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/storefront-gateway/internal/models"
	"github.com/Lixing-Zhang/storefront-gateway/internal/repository"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrUpstreamUnavailable  = errors.New("order upstream unavailable")
	ErrShopifyNotConfigured = errors.New("shopify credentials are not configured")
)

// OrderService resolves an order token + email into an order summary
type OrderService struct {
	orderRepo  repository.OrderRepository
	namePrefix string
	log        *slog.Logger
}

// NewOrderService creates a new order service.
// A nil repository means the store is not configured.
func NewOrderService(orderRepo repository.OrderRepository, namePrefix string, log *slog.Logger) *OrderService {
	if log == nil {
		log = slog.Default()
	}
	return &OrderService{
		orderRepo:  orderRepo,
		namePrefix: namePrefix,
		log:        log,
	}
}

// Configured reports whether lookups can reach the store
func (s *OrderService) Configured() bool {
	return s.orderRepo != nil
}

// TrackOrder looks the order up by name candidates first and falls back to
// scanning every order of the email for a matching digit run.
func (s *OrderService) TrackOrder(ctx context.Context, query models.OrderQuery) (*models.OrderSummary, error) {
	if !s.Configured() {
		return nil, ErrShopifyNotConfigured
	}

	order, err := s.findOrder(ctx, string(query.OrderToken), query.Email)
	if err != nil {
		return nil, err
	}

	return Summarize(order), nil
}

func (s *OrderService) findOrder(ctx context.Context, token, email string) (*models.ShopifyOrder, error) {
	// Candidates are probed one at a time; the first hit wins.
	for _, name := range NameCandidates(token, s.namePrefix) {
		orders, err := s.orderRepo.FindByName(ctx, name, email)
		if err != nil {
			var statusErr *repository.StatusError
			if errors.As(err, &statusErr) {
				s.log.Debug("order name probe rejected", "candidate", name, "status", statusErr.StatusCode)
				continue
			}
			return nil, err
		}
		if len(orders) > 0 {
			s.log.Debug("order matched by name", "candidate", name)
			return &orders[0], nil
		}
	}

	digits := DigitRun(token)
	if digits == "" {
		return nil, ErrOrderNotFound
	}

	orders, err := s.orderRepo.ListByEmail(ctx, email)
	if err != nil {
		var statusErr *repository.StatusError
		if errors.As(err, &statusErr) {
			s.log.Warn("order email scan rejected", "status", statusErr.StatusCode, "body", statusErr.Body)
			return nil, ErrUpstreamUnavailable
		}
		return nil, err
	}

	for i := range orders {
		if DigitRun(orders[i].Name) == digits {
			s.log.Debug("order matched by email scan", "name", orders[i].Name)
			return &orders[i], nil
		}
	}

	return nil, ErrOrderNotFound
}

// Summarize projects an upstream order into the storefront response shape
func Summarize(order *models.ShopifyOrder) *models.OrderSummary {
	summary := &models.OrderSummary{
		OrderName:         strings.TrimPrefix(order.Name, "#"),
		FulfillmentStatus: nonEmpty(order.FulfillmentStatus),
		OrderStatusURL:    nonEmpty(order.OrderStatusURL),
		FinancialStatus:   nonEmpty(order.FinancialStatus),
		ShippingAddress:   order.ShippingAddress,
		LineItems:         make([]models.LineItemSummary, 0, len(order.LineItems)),
	}

	if order.ID != 0 {
		id := order.ID
		summary.OrderID = &id
	}
	if order.Name != "" {
		name := order.Name
		summary.OrderNameWithHash = &name
	}
	if order.Email != "" {
		email := order.Email
		summary.Email = &email
	}

	summary.ProcessedAt = nonEmpty(order.ProcessedAt)
	if summary.ProcessedAt == nil {
		summary.ProcessedAt = nonEmpty(order.CreatedAt)
	}

	if len(order.Fulfillments) > 0 {
		first := order.Fulfillments[0]
		summary.TrackingURL = nonEmpty(first.TrackingURL)
		if summary.TrackingURL == nil && len(first.TrackingURLs) > 0 && first.TrackingURLs[0] != "" {
			url := first.TrackingURLs[0]
			summary.TrackingURL = &url
		}
	}

	for _, li := range order.LineItems {
		summary.LineItems = append(summary.LineItems, models.LineItemSummary{
			Title:             li.Title,
			Quantity:          li.Quantity,
			SKU:               li.SKU,
			FulfillmentStatus: nonEmpty(li.FulfillmentStatus),
		})
	}

	return summary
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
