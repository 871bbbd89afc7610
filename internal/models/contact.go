package models

// ContactSubmission is a validated contact form submission.
type ContactSubmission struct {
	Name         string
	Email        string
	Subject      string
	Message      string
	CaptchaToken string
}

// HasCaptchaToken reports whether the submitter supplied a CAPTCHA token
func (s ContactSubmission) HasCaptchaToken() bool {
	return s.CaptchaToken != ""
}
