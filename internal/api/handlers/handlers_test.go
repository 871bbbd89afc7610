package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/osa911/portfolio-backend/internal/api/middleware"
	"github.com/osa911/portfolio-backend/internal/api/validation"
	"github.com/osa911/portfolio-backend/internal/llm"
	"github.com/osa911/portfolio-backend/internal/logging"
	"github.com/osa911/portfolio-backend/internal/models"
	"github.com/osa911/portfolio-backend/internal/ratelimit"
	"github.com/osa911/portfolio-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeChat struct {
	configured bool
	replyFn    func(ctx context.Context, message string) (string, error)

	mu    sync.Mutex
	calls []string
}

func (f *fakeChat) Configured() bool { return f.configured }

func (f *fakeChat) Reply(ctx context.Context, message string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, message)
	f.mu.Unlock()
	return f.replyFn(ctx, message)
}

func (f *fakeChat) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeCaptcha struct {
	enabled  bool
	verifyFn func(ctx context.Context, token string) (models.CaptchaVerdict, error)
	calls    int
}

func (f *fakeCaptcha) Enabled() bool { return f.enabled }

func (f *fakeCaptcha) Verify(ctx context.Context, token string) (models.CaptchaVerdict, error) {
	f.calls++
	return f.verifyFn(ctx, token)
}

type fakeMailer struct {
	sendFn func(ctx context.Context, submission models.ContactSubmission) error

	mu   sync.Mutex
	sent []models.ContactSubmission
}

func (f *fakeMailer) Send(ctx context.Context, submission models.ContactSubmission) error {
	f.mu.Lock()
	f.sent = append(f.sent, submission)
	f.mu.Unlock()
	if f.sendFn == nil {
		return nil
	}
	return f.sendFn(ctx, submission)
}

func (f *fakeMailer) Sent() []models.ContactSubmission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ContactSubmission(nil), f.sent...)
}

func score(v float64) *float64 { return &v }

type harness struct {
	router  *gin.Engine
	chat    *fakeChat
	captcha *fakeCaptcha
	mailer  *fakeMailer
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		chat: &fakeChat{
			configured: true,
			replyFn: func(ctx context.Context, message string) (string, error) {
				return "echo: " + message, nil
			},
		},
		captcha: &fakeCaptcha{
			verifyFn: func(ctx context.Context, token string) (models.CaptchaVerdict, error) {
				return models.CaptchaVerdict{Success: true, Score: score(0.9)}, nil
			},
		},
		mailer: &fakeMailer{},
		now:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	logger := logging.Discard()
	v, err := validation.New("")
	require.NoError(t, err)
	limiter, err := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), ratelimit.Config{Window: 15 * time.Minute, Max: 5},
		ratelimit.WithClock(func() time.Time { return h.now }))
	require.NoError(t, err)

	vm := middleware.NewValidationMiddleware(v, logger)
	chatHandler := NewChatHandler(h.chat, logger, time.Second)
	contactHandler := NewContactHandler(h.captcha, h.mailer, logger, ContactOptions{
		MinCaptchaScore: 0.5,
		CaptchaTimeout:  time.Second,
		MailTimeout:     time.Second,
	})

	h.router = gin.New()
	h.router.GET("/api/health", NewHealthHandler().Check)
	h.router.POST("/api/chat", vm.ValidateChatRequest(), chatHandler.Chat)
	h.router.POST("/api/contact", vm.ValidateContactRequest(), middleware.RateLimitMiddleware(limiter, logger), contactHandler.Submit)
	return h
}

func (h *harness) post(path, body, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":40000"
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

const validContact = `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello there"}`

func contactWithToken(token string) string {
	return fmt.Sprintf(`{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello there","captchaToken":%q}`, token)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestChat_ReturnsReplyForTrimmedMessage(t *testing.T) {
	h := newHarness(t)

	w := h.post("/api/chat", `{"message":"  What stack do you use?  "}`, "198.51.100.1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"echo: What stack do you use?"}`, w.Body.String())
	assert.Equal(t, []string{"What stack do you use?"}, h.chat.Calls())
}

func TestChat_EmptyMessageNeverReachesProvider(t *testing.T) {
	h := newHarness(t)

	for _, body := range []string{`{"message":""}`, `{"message":"   "}`, `{}`, `{"message":null}`} {
		w := h.post("/api/chat", body, "198.51.100.1")
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"reply":"Please provide a message so I can respond."}`, w.Body.String())
	}
	assert.Empty(t, h.chat.Calls())
}

func TestChat_NotConfigured(t *testing.T) {
	h := newHarness(t)
	h.chat.configured = false

	w := h.post("/api/chat", `{"message":"Hello"}`, "198.51.100.1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"reply":"AI service not configured. Please contact the site owner."}`, w.Body.String())
	assert.Empty(t, h.chat.Calls())
}

func TestChat_ProviderFailureIsGeneric(t *testing.T) {
	h := newHarness(t)

	for _, cause := range []error{llm.ErrUnauthorized, llm.ErrRateLimited, llm.ErrProviderFault, llm.ErrUnavailable} {
		h.chat.replyFn = func(ctx context.Context, message string) (string, error) {
			return "", fmt.Errorf("%w: %w: status 418 secret detail", service.ErrDependencyUnavailable, cause)
		}

		w := h.post("/api/chat", `{"message":"Hello"}`, "198.51.100.1")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"reply":"I'm having trouble connecting right now. Please try again in a moment or use the contact form below!"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "secret detail")
	}
}

func TestChat_OutboundCallSurvivesClientDisconnect(t *testing.T) {
	h := newHarness(t)
	h.chat.replyFn = func(ctx context.Context, message string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return "still here", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Hello"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"still here"}`, w.Body.String())
}

func TestContact_Success(t *testing.T) {
	h := newHarness(t)

	w := h.post("/api/contact", validContact, "198.51.100.2")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Len(t, h.mailer.Sent(), 1)
	assert.Equal(t, "ada@example.com", h.mailer.Sent()[0].Email)
}

func TestContact_ValidationErrors(t *testing.T) {
	h := newHarness(t)

	w := h.post("/api/contact", `{"name":"","email":"ada@example.com","subject":"Hi","message":"M"}`, "198.51.100.3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())

	w = h.post("/api/contact", `{"name":"Ada","email":"bad-email","subject":"Hi","message":"M"}`, "198.51.100.3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email format"}`, w.Body.String())

	assert.Empty(t, h.mailer.Sent())
}

func TestContact_SixthSubmissionIsRateLimited(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 5; i++ {
		w := h.post("/api/contact", validContact, "198.51.100.4")
		require.Equal(t, http.StatusOK, w.Code, "submission %d", i+1)
	}

	w := h.post("/api/contact", validContact, "198.51.100.4")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many contact form submissions, please try again later."}`, w.Body.String())
	assert.Len(t, h.mailer.Sent(), 5)

	// Other clients keep their own window
	w = h.post("/api/contact", validContact, "198.51.100.5")
	assert.Equal(t, http.StatusOK, w.Code)

	// The window starts at the first hit and resets once it elapses
	h.now = h.now.Add(15 * time.Minute)
	w = h.post("/api/contact", validContact, "198.51.100.4")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContact_InvalidSubmissionsDoNotConsumeQuota(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 10; i++ {
		w := h.post("/api/contact", `{"name":"Ada"}`, "198.51.100.6")
		require.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := h.post("/api/contact", validContact, "198.51.100.6")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContact_FailedDeliveriesStillCount(t *testing.T) {
	h := newHarness(t)
	h.mailer.sendFn = func(ctx context.Context, submission models.ContactSubmission) error {
		return errors.New("smtp down")
	}

	for i := 0; i < 5; i++ {
		w := h.post("/api/contact", validContact, "198.51.100.7")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
	}

	w := h.post("/api/contact", validContact, "198.51.100.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestContact_Captcha(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		body       string
		verdict    models.CaptchaVerdict
		verifyErr  error
		wantCode   int
		wantBody   string
		wantVerify int
		wantSent   int
	}{
		{
			name:       "disabled skips verification",
			enabled:    false,
			body:       contactWithToken("tok"),
			wantCode:   http.StatusOK,
			wantBody:   `{"success":true}`,
			wantVerify: 0,
			wantSent:   1,
		},
		{
			name:       "missing token skips verification",
			enabled:    true,
			body:       validContact,
			wantCode:   http.StatusOK,
			wantBody:   `{"success":true}`,
			wantVerify: 0,
			wantSent:   1,
		},
		{
			name:       "accepted verdict",
			enabled:    true,
			body:       contactWithToken("tok"),
			verdict:    models.CaptchaVerdict{Success: true, Score: score(0.7)},
			wantCode:   http.StatusOK,
			wantBody:   `{"success":true}`,
			wantVerify: 1,
			wantSent:   1,
		},
		{
			name:       "low score is rejected",
			enabled:    true,
			body:       contactWithToken("tok"),
			verdict:    models.CaptchaVerdict{Success: true, Score: score(0.3)},
			wantCode:   http.StatusBadRequest,
			wantBody:   `{"error":"CAPTCHA verification failed. Please try again."}`,
			wantVerify: 1,
		},
		{
			name:       "unsuccessful verdict is rejected",
			enabled:    true,
			body:       contactWithToken("tok"),
			verdict:    models.CaptchaVerdict{Success: false, ErrorCodes: []string{"invalid-input-response"}},
			wantCode:   http.StatusBadRequest,
			wantBody:   `{"error":"CAPTCHA verification failed. Please try again."}`,
			wantVerify: 1,
		},
		{
			name:       "provider failure",
			enabled:    true,
			body:       contactWithToken("tok"),
			verifyErr:  fmt.Errorf("%w: connection reset", service.ErrCaptchaUnavailable),
			wantCode:   http.StatusInternalServerError,
			wantBody:   `{"error":"CAPTCHA verification error"}`,
			wantVerify: 1,
		},
		{
			name:       "legacy token field",
			enabled:    true,
			body:       `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"M","recaptchaToken":"tok"}`,
			verdict:    models.CaptchaVerdict{Success: true},
			wantCode:   http.StatusOK,
			wantBody:   `{"success":true}`,
			wantVerify: 1,
			wantSent:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.captcha.enabled = tt.enabled
			h.captcha.verifyFn = func(ctx context.Context, token string) (models.CaptchaVerdict, error) {
				assert.Equal(t, "tok", token)
				return tt.verdict, tt.verifyErr
			}

			w := h.post("/api/contact", tt.body, "198.51.100.8")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, tt.wantVerify, h.captcha.calls)
			assert.Len(t, h.mailer.Sent(), tt.wantSent)
		})
	}
}
