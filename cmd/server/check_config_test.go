package main

import (
	"bytes"
	"testing"

	"github.com/osa911/portfolio-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintConfigSummary_NeverPrintsSecrets(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_supersecret")
	t.Setenv("EMAIL_USER", "owner@example.com")
	t.Setenv("EMAIL_PASS", "app password here")
	t.Setenv("RECAPTCHA_SECRET_KEY", "recaptcha-secret")

	cfg, err := config.Parse()
	require.NoError(t, err)

	var out bytes.Buffer
	printConfigSummary(&out, cfg)

	summary := out.String()
	assert.Contains(t, summary, "GROQ_API_KEY set")
	assert.Contains(t, summary, "reCAPTCHA:        enabled")
	assert.Contains(t, summary, "owner@example.com")
	assert.Contains(t, summary, "5 per 15m0s (memory)")
	assert.NotContains(t, summary, "gsk_supersecret")
	assert.NotContains(t, summary, "apppasswordhere")
	assert.NotContains(t, summary, "recaptcha-secret")
}
