package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront-checkout/internal/domain/errors"
	"github.com/polkiloo/storefront-checkout/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL+"/store", time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClientValidatesURL(t *testing.T) {
	if _, err := NewClient("://bad-url", 0, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewClient("/relative", 0, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
	client, err := NewClient("http://example.com", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", client.httpClient.Timeout)
	}
}

func TestClientCart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/store/api/users/42/cart" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"items":[{"productName":"lamp","quantity":2,"unitPrice":12.5},{"productName":"mug","quantity":1,"unitPrice":"3.99"}],"subtotal":28.99}`)
	})

	cart, err := client.Cart(context.Background(), 42)
	if err != nil {
		t.Fatalf("cart returned error: %v", err)
	}
	if len(cart.Items) != 2 || cart.Items[0].ProductName != "lamp" || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", cart.Items)
	}
	if !cart.Items[1].UnitPrice.Equal(decimal.RequireFromString("3.99")) || !cart.Subtotal.Equal(decimal.RequireFromString("28.99")) {
		t.Fatalf("unexpected money values %+v", cart)
	}
}

func TestClientCartMissingIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	cart, err := client.Cart(context.Background(), 1)
	if err != nil {
		t.Fatalf("cart returned error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestClientShippingMethods(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/store/api/shipping-methods" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":"standard","name":"Standard","baseCost":10,"estimatedDaysMin":3,"estimatedDaysMax":5},{"id":"express","name":"Express","baseCost":24.99,"estimatedDaysMin":1,"estimatedDaysMax":2}]`)
	})

	methods, err := client.ShippingMethods(context.Background())
	if err != nil {
		t.Fatalf("shipping methods returned error: %v", err)
	}
	if len(methods) != 2 || methods[0].ID != "standard" || methods[1].EstimatedDaysMax != 2 {
		t.Fatalf("unexpected methods %+v", methods)
	}
	if !methods[1].BaseCost.Equal(decimal.RequireFromString("24.99")) {
		t.Fatalf("unexpected cost %s", methods[1].BaseCost)
	}
}

func sampleOrder() model.OrderRequest {
	coupon := int64(2)
	return model.OrderRequest{
		IdempotencyKey:   "5f0c6a8e-0000-4000-8000-000000000001",
		UserID:           42,
		Billing:          model.ContactInfo{FullName: "Ada Buyer", City: "Springfield"},
		Shipping:         model.ContactInfo{FullName: "Ada Buyer", City: "Shelbyville"},
		ShippingMethodID: "standard",
		Items: []model.OrderItem{
			{ProductName: "sofa", Quantity: 1, UnitPrice: decimal.NewFromInt(200), LineTotal: decimal.NewFromInt(200)},
		},
		Subtotal:       decimal.NewFromInt(200),
		ShippingAmount: decimal.NewFromInt(10),
		DiscountAmount: decimal.NewFromInt(45),
		AdditionalFees: decimal.NewFromInt(5),
		TotalAmount:    decimal.NewFromInt(170),
		CouponID:       &coupon,
		CouponCode:     "SUMMER20",
		PointsRedeemed: 500,
		GiftWrap:       true,
		Notes:          "Leave at the door",
	}
}

func TestClientSubmitOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/store/api/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "5f0c6a8e-0000-4000-8000-000000000001" {
			t.Errorf("unexpected idempotency key %q", got)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		for _, fragment := range []string{
			`"totalAmount":170.00`,
			`"discountAmount":45.00`,
			`"couponId":2`,
			`"pointsRedeemed":500`,
			`"billingInfo":{"fullName":"Ada Buyer"`,
			`"orderItems":[{"productName":"sofa","quantity":1,"unitPrice":200.00,"lineTotal":200.00}]`,
		} {
			if !strings.Contains(body, fragment) {
				t.Errorf("payload %s missing %s", body, fragment)
			}
		}
		if strings.Contains(body, "giftMessage") {
			t.Errorf("empty gift message must be omitted: %s", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"orderId":"ord-77","status":"CREATED","totalAmount":170}`)
	})

	confirmation, err := client.SubmitOrder(context.Background(), sampleOrder())
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if confirmation.OrderID != "ord-77" || confirmation.Status != "CREATED" || !confirmation.Total.Equal(decimal.NewFromInt(170)) {
		t.Fatalf("unexpected confirmation %+v", confirmation)
	}
}

func TestClientSubmitOrderFailures(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		header     http.Header
		body       string
		check      func(t *testing.T, err error)
	}{
		{
			name:       "rejected with message",
			statusCode: http.StatusUnprocessableEntity,
			body:       `{"message":"item out of stock"}`,
			check: func(t *testing.T, err error) {
				var rejected *domainErrors.OrderRejectedError
				if !errors.As(err, &rejected) || rejected.Message != "item out of stock" {
					t.Fatalf("expected rejection with message, got %v", err)
				}
				if !errors.Is(err, domainErrors.ErrOrderRejected) {
					t.Fatalf("expected ErrOrderRejected, got %v", err)
				}
			},
		},
		{
			name:       "rejected with error field",
			statusCode: http.StatusBadRequest,
			body:       `{"error":"invalid address"}`,
			check: func(t *testing.T, err error) {
				if err == nil || !strings.Contains(err.Error(), "invalid address") {
					t.Fatalf("expected message in error, got %v", err)
				}
			},
		},
		{
			name:       "server error",
			statusCode: http.StatusBadGateway,
			body:       "upstream broke",
			check: func(t *testing.T, err error) {
				if !errors.Is(err, domainErrors.ErrUpstreamUnavailable) || errors.Is(err, domainErrors.ErrOrderRejected) {
					t.Fatalf("expected upstream unavailable, got %v", err)
				}
			},
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			header:     http.Header{"Retry-After": []string{"7"}},
			check: func(t *testing.T, err error) {
				var limited TooManyRequestsError
				if !errors.As(err, &limited) || limited.RetryAfter != 7*time.Second {
					t.Fatalf("expected rate limit error, got %v", err)
				}
				if !errors.Is(err, domainErrors.ErrUpstreamUnavailable) {
					t.Fatalf("expected rate limit to count as unavailable, got %v", err)
				}
			},
		},
		{
			name:       "missing order id",
			statusCode: http.StatusOK,
			body:       `{"status":"CREATED"}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, domainErrors.ErrUpstreamUnavailable) {
					t.Fatalf("expected upstream unavailable, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				for key, values := range tt.header {
					for _, v := range values {
						w.Header().Add(key, v)
					}
				}
				w.WriteHeader(tt.statusCode)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := client.SubmitOrder(context.Background(), sampleOrder())
			tt.check(t, err)
		})
	}
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client, err := NewClient(srv.URL, time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	srv.Close()

	if _, err := client.ShippingMethods(context.Background()); !errors.Is(err, domainErrors.ErrUpstreamUnavailable) {
		t.Fatalf("expected upstream unavailable, got %v", err)
	}
	if _, err := client.SubmitOrder(context.Background(), sampleOrder()); !errors.Is(err, domainErrors.ErrUpstreamUnavailable) {
		t.Fatalf("expected upstream unavailable, got %v", err)
	}
}

func TestClientHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := client.Cart(ctx, 1); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestClientShippingMethodsServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if _, err := client.ShippingMethods(context.Background()); !errors.Is(err, domainErrors.ErrUpstreamUnavailable) {
		t.Fatalf("expected upstream unavailable, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter(""); got != defaultRetryAfter {
		t.Fatalf("expected default, got %s", got)
	}
	if got := parseRetryAfter("3"); got != 3*time.Second {
		t.Fatalf("expected 3s, got %s", got)
	}
	if got := parseRetryAfter("soon"); got != defaultRetryAfter {
		t.Fatalf("expected default for garbage, got %s", got)
	}
	past := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(past); got != 0 {
		t.Fatalf("expected zero for past date, got %s", got)
	}
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(future); got <= 0 || got > time.Minute {
		t.Fatalf("expected up to a minute, got %s", got)
	}
}

func TestOrderRequestDTOOmitsEmptyCoupon(t *testing.T) {
	req := sampleOrder()
	req.CouponID = nil
	req.CouponCode = ""
	payload, err := json.Marshal(newOrderRequestDTO(req))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(payload), "couponId") || strings.Contains(string(payload), "couponCode") {
		t.Fatalf("expected coupon fields omitted, got %s", payload)
	}
}
