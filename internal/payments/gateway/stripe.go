package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	paymentserrors "github.com/Farhatmahi/dentist-spa-server/internal/payments/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
)

// Gateway creates payment intents with an external card processor. Amounts
// are in the currency's minor unit.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error)
}

// StripeGateway talks to the Stripe PaymentIntents API over its form-encoded
// HTTP surface.
type StripeGateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func NewStripeGateway(secretKey string, log *logger.Logger) *StripeGateway {
	return &StripeGateway{
		secretKey:  secretKey,
		baseURL:    "https://api.stripe.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// WithBaseURL overrides the Stripe API base URL (for testing).
func (g *StripeGateway) WithBaseURL(baseURL string) *StripeGateway {
	if baseURL != "" {
		g.baseURL = strings.TrimRight(baseURL, "/")
	}
	return g
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", amount))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	apiURL := g.baseURL + "/v1/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", paymentserrors.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		g.log.Error("Stripe rejected payment intent request", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: status %d", paymentserrors.ErrGatewayRejected, resp.StatusCode)
	}

	var parsed stripePaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("stripe decode: %w", err)
	}
	if parsed.ClientSecret == "" {
		return nil, fmt.Errorf("%w: response missing client secret", paymentserrors.ErrGatewayRejected)
	}

	return &model.PaymentIntent{
		ID:           parsed.ID,
		ClientSecret: parsed.ClientSecret,
		Amount:       parsed.Amount,
		Currency:     parsed.Currency,
	}, nil
}

// stripePaymentIntent is the subset of Stripe's PaymentIntent we need.
type stripePaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}
