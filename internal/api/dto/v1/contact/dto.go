package contact

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Subject        string `json:"subject" validate:"required"`
	Message        string `json:"message" validate:"required"`
	CaptchaToken   string `json:"captchaToken"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// Token returns the CAPTCHA token under either accepted field name
func (r ContactRequest) Token() string {
	if r.CaptchaToken != "" {
		return r.CaptchaToken
	}
	return r.RecaptchaToken
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Success bool `json:"success"`
}
