package models

// CaptchaVerdict is the outcome of a completed CAPTCHA verification.
// Score is nil when the provider does not score tokens (reCAPTCHA v2).
type CaptchaVerdict struct {
	Success    bool
	Score      *float64
	Hostname   string
	ErrorCodes []string
}

// Accepted reports whether the verdict passes: success is required and,
// when a score is present, it must be at least minScore.
func (v CaptchaVerdict) Accepted(minScore float64) bool {
	if !v.Success {
		return false
	}
	if v.Score == nil {
		return true
	}
	return *v.Score >= minScore
}
