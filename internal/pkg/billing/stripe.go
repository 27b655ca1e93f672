package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/framelessmedia/payportal/internal/pkg/env"
)

const defaultStripeAPIBaseURL = "https://api.stripe.com/v1"

// StripeClient talks to the Stripe API for billing-portal session creation.
type StripeClient struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

// PortalSession is a created billing-portal session. URL is the one-time
// login link the customer gets redirected to.
type PortalSession struct {
	ID        string `json:"id"`
	Customer  string `json:"customer"`
	URL       string `json:"url"`
	ReturnURL string `json:"return_url"`
}

func NewStripeClientFromEnv() *StripeClient {
	return &StripeClient{
		SecretKey:  strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
		APIBaseURL: strings.TrimSpace(env.GetEnv("STRIPE_API_BASE_URL", defaultStripeAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreatePortalSession creates a billing-portal session for the given
// customer. The call is made exactly once: portal-session creation is not
// safe to blindly repeat, so a timeout or remote rejection is returned to
// the caller as a terminal error instead of retrying.
func (c *StripeClient) CreatePortalSession(ctx context.Context, customerID, returnURL string) (*PortalSession, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is not configured")
	}
	customer := strings.TrimSpace(customerID)
	if customer == "" {
		return nil, errors.New("customer id is required")
	}

	form := url.Values{}
	form.Set("customer", customer)
	if ret := strings.TrimSpace(returnURL); ret != "" {
		form.Set("return_url", ret)
	}

	endpoint := strings.TrimRight(c.APIBaseURL, "/") + "/billing_portal/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe portal session request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe portal session creation failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out PortalSession
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.URL) == "" {
		return nil, errors.New("stripe portal session response missing url")
	}
	return &out, nil
}
