// internal/services/captcha_service.go
package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/conapesca/repa-backend/internal/config"
)

type CaptchaService struct {
	cfg    *config.Config
	client *http.Client
}

func NewCaptchaService(cfg *config.Config) *CaptchaService {
	return &CaptchaService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Captcha.Timeout) * time.Second,
		},
	}
}

// Verify checks the client-supplied captcha response against the verification
// service. When no secret is configured (development) it accepts everything.
func (s *CaptchaService) Verify(response, remoteIP string) error {
	if s.cfg.Captcha.Secret == "" {
		return nil
	}
	if response == "" {
		return ErrCaptchaFailed
	}

	form := url.Values{
		"secret":   {s.cfg.Captcha.Secret},
		"response": {response},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	resp, err := s.client.PostForm(s.cfg.Captcha.VerifyURL, form)
	if err != nil {
		return fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("captcha verification response invalid: %w", err)
	}
	if !result.Success {
		return ErrCaptchaFailed
	}
	return nil
}
