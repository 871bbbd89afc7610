package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osa911/portfolio-backend/internal/models"
)

// DefaultRecaptchaVerifyURL is Google's siteverify endpoint
const DefaultRecaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaService handles reCAPTCHA verification
type RecaptchaService struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

// NewRecaptchaService creates a new reCAPTCHA service. An empty secret disables verification.
func NewRecaptchaService(secretKey, verifyURL string, timeout time.Duration) *RecaptchaService {
	if verifyURL == "" {
		verifyURL = DefaultRecaptchaVerifyURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RecaptchaService{
		secretKey: secretKey,
		verifyURL: verifyURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// recaptchaResponse represents the response from Google's reCAPTCHA API
type recaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       *float64 `json:"score,omitempty"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Enabled reports whether a secret is configured
func (s *RecaptchaService) Enabled() bool {
	return s.secretKey != ""
}

// Verify asks the provider to judge token. A completed verification is
// returned as a verdict even when it failed; err is only set when the
// provider could not be reached or answered with something unusable.
func (s *RecaptchaService) Verify(ctx context.Context, token string) (models.CaptchaVerdict, error) {
	if !s.Enabled() {
		return models.CaptchaVerdict{}, fmt.Errorf("reCAPTCHA secret key: %w", ErrNotConfigured)
	}

	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return models.CaptchaVerdict{}, fmt.Errorf("%w: failed to create request: %w", ErrCaptchaUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.CaptchaVerdict{}, fmt.Errorf("%w: failed to verify reCAPTCHA: %w", ErrCaptchaUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.CaptchaVerdict{}, fmt.Errorf("%w: reCAPTCHA API returned status %d", ErrCaptchaUnavailable, resp.StatusCode)
	}

	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.CaptchaVerdict{}, fmt.Errorf("%w: failed to parse reCAPTCHA response: %w", ErrCaptchaUnavailable, err)
	}

	return models.CaptchaVerdict{
		Success:    result.Success,
		Score:      result.Score,
		Hostname:   result.Hostname,
		ErrorCodes: result.ErrorCodes,
	}, nil
}
