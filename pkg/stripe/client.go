package stripe

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"

	"github.com/avalosmendoza/wedding-backend/pkg/config"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
)

const (
	testEnv = "test"
	liveEnv = "live"
)

// Client wraps Stripe's API client plus env-specific metadata.
type Client struct {
	api           *stripe.Client
	environment   string
	signingSecret string
}

// NewClient initializes Stripe once with the configured secrets and env.
//
// A missing API key is not an error here: checkout is the first call that
// needs it, and the failure surfaces there as a dependency error.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) *Client {
	env := cfg.Environment()
	apiKey := strings.TrimSpace(cfg.APIKey)

	if logg != nil {
		switch {
		case apiKey == "":
			logg.Warn(ctx, "stripe api key not configured, checkout will fail until it is set")
		case !keyMatchesEnv(env, apiKey):
			logg.Warn(ctx, fmt.Sprintf("stripe api key does not look like a %s key", env))
		default:
			logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", env))
		}
		if strings.TrimSpace(cfg.WebhookSecret) == "" {
			logg.Warn(ctx, "stripe webhook secret not configured, webhook verification will fail")
		}
	}

	return &Client{
		api:           stripe.NewClient(apiKey),
		environment:   env,
		signingSecret: strings.TrimSpace(cfg.WebhookSecret),
	}
}

// CreateCheckoutSession mints a hosted checkout session.
func (c *Client) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
	return c.api.V1CheckoutSessions.Create(ctx, params)
}

// RetrieveCheckoutSession fetches the live state of a checkout session.
func (c *Client) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	return c.api.V1CheckoutSessions.Retrieve(ctx, sessionID, &stripe.CheckoutSessionRetrieveParams{})
}

// Environment reports the normalized Stripe environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// SigningSecret returns the webhook signing secret.
func (c *Client) SigningSecret() string {
	if c == nil {
		return ""
	}
	return c.signingSecret
}

func keyMatchesEnv(env, key string) bool {
	switch env {
	case liveEnv:
		return strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live")
	case testEnv:
		return strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test")
	default:
		return false
	}
}
