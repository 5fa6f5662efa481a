package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/dressshop/backend/internal/infrastructure/config"
)

const (
	razorpayAPIBaseURL     = "https://api.razorpay.com"
	razorpayDefaultTimeout = 30 * time.Second
)

// RazorpayConfig contains credentials for the Razorpay Orders API
type RazorpayConfig struct {
	// BaseURL is the API root, overridden in tests
	BaseURL string
	// KeyID is the public key id used as the basic auth user
	KeyID string
	// KeySecret is the shared secret used for basic auth and payment signatures
	KeySecret string
	// Timeout bounds every gateway call
	Timeout time.Duration
}

// Errors for configuration validation
var (
	ErrRazorpayMissingKeyID     = errors.New("razorpay: missing key id")
	ErrRazorpayMissingKeySecret = errors.New("razorpay: missing key secret")
	ErrRazorpayInvalidBaseURL   = errors.New("razorpay: base URL must be http or https")
)

// Validate validates the configuration
func (c *RazorpayConfig) Validate() error {
	if c.KeyID == "" {
		return ErrRazorpayMissingKeyID
	}
	if c.KeySecret == "" {
		return ErrRazorpayMissingKeySecret
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return ErrRazorpayInvalidBaseURL
	}
	return nil
}

// RazorpayConfigFromApp maps the application gateway section
func RazorpayConfigFromApp(cfg config.GatewayConfig) *RazorpayConfig {
	return &RazorpayConfig{
		BaseURL:   cfg.BaseURL,
		KeyID:     cfg.KeyID,
		KeySecret: cfg.KeySecret,
		Timeout:   cfg.Timeout,
	}
}

func (c *RazorpayConfig) baseURL() string {
	if c.BaseURL == "" {
		return razorpayAPIBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *RazorpayConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return razorpayDefaultTimeout
	}
	return c.Timeout
}
