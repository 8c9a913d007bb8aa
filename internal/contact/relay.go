package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// ErrNotConfigured is returned when the relay has no usable credentials
var ErrNotConfigured = errors.New("email relay not configured")

// Relay delivers a contact message to the studio inbox
type Relay interface {
	Send(ctx context.Context, msg Message) error
}

// EmailJSConfig holds the EmailJS account settings
type EmailJSConfig struct {
	Endpoint   string
	PublicKey  string
	PrivateKey string
	ServiceID  string
	TemplateID string
	Timeout    time.Duration
}

// Configured reports whether the account settings are complete
func (c EmailJSConfig) Configured() bool {
	return c.PublicKey != "" && c.PublicKey != "YOUR_PUBLIC_KEY_HERE" &&
		c.ServiceID != "" && c.TemplateID != ""
}

// EmailJSClient relays messages through the EmailJS REST API
type EmailJSClient struct {
	cfg    EmailJSConfig
	client *resty.Client
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJSClient creates a relay client
func NewEmailJSClient(cfg EmailJSConfig) *EmailJSClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(1).
		SetRetryWaitTime(500 * time.Millisecond)

	return &EmailJSClient{cfg: cfg, client: client}
}

// Send posts msg to EmailJS
func (c *EmailJSClient) Send(ctx context.Context, msg Message) error {
	if !c.cfg.Configured() {
		return ErrNotConfigured
	}

	payload := emailJSRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: templateParams(msg),
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("emailjs returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func templateParams(msg Message) map[string]string {
	return map[string]string{
		"from_name":     msg.FromName,
		"reply_to":      msg.ReplyTo,
		"interest_area": msg.InterestArea,
		"message":       msg.Message,
		"to_email":      msg.ToEmail,
		"sent_at":       msg.SentAt.Format(time.RFC1123),
		"user_agent":    msg.UserAgent,
	}
}
