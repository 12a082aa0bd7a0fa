package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrAPIBaseURLRequired is returned when the delivery API base URL is missing.
var ErrAPIBaseURLRequired = errors.New("mail api base url is required")

// API is a Mail implementation that posts messages to an HTTP delivery
// provider (Mailgun-style JSON API).
type API struct {
	baseURL     string
	token       string
	defaultFrom string
	client      *http.Client
}

// APIConfig configures the HTTP delivery implementation.
type APIConfig struct {
	// BaseURL is the provider endpoint, e.g. https://mail.example.com/v1/send.
	BaseURL string
	// Token is the bearer token for authentication.
	Token string
	// From is the default sender when Message.From is empty.
	From string
	// Timeout bounds each request; defaults to 10 seconds.
	Timeout time.Duration
}

type apiRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Cc      []string `json:"cc,omitempty"`
	Bcc     []string `json:"bcc,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
}

type apiResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// NewAPI constructs an HTTP API mail sender.
func NewAPI(cfg APIConfig) (*API, error) {
	if cfg.BaseURL == "" {
		return nil, ErrAPIBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &API{
		baseURL:     cfg.BaseURL,
		token:       cfg.Token,
		defaultFrom: cfg.From,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

// Send posts the message to the provider and returns its delivery ID.
func (a *API) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To)+len(msg.Cc)+len(msg.Bcc) == 0 {
		return "", ErrSMTPNoRecipients
	}

	from := msg.From
	if from == "" {
		from = a.defaultFrom
	}
	if from == "" {
		return "", ErrSMTPNoSender
	}

	payload, err := json.Marshal(apiRequest{
		From:    from,
		To:      msg.To,
		Cc:      msg.Cc,
		Bcc:     msg.Bcc,
		Subject: msg.Subject,
		Text:    msg.TextBody,
		HTML:    msg.HTMLBody,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	res, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("mail api returned status %d: %s", res.StatusCode, body)
	}

	var out apiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}

	return out.ID, nil
}

// Close implements io.Closer for interface compatibility.
func (a *API) Close() error {
	a.client.CloseIdleConnections()
	return nil
}
