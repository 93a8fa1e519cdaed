// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/conapesca/repa-backend/internal/config"
	"github.com/conapesca/repa-backend/internal/models"
)

type NotificationService struct {
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	tmpl := s.getEmailTemplate("bienvenida")

	data := map[string]interface{}{
		"Curp":      user.Curp,
		"PortalURL": s.config.Frontend.BaseURL,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendPasswordResetEmail(email, token string) error {
	tmpl := s.getEmailTemplate("recuperacion")

	data := map[string]interface{}{
		"ResetURL":  fmt.Sprintf("%s/restablecer.html?token=%s", s.config.Frontend.BaseURL, token),
		"ExpiresIn": "15 minutos",
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(email, tmpl.Subject, body)
}

func (s *NotificationService) SendAnexoGuardadoEmail(email string, anexo int) error {
	tmpl := s.getEmailTemplate("anexo_guardado")

	data := map[string]interface{}{
		"Anexo":     anexo,
		"PortalURL": s.config.Frontend.BaseURL,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(email, tmpl.Subject, body)
}

// Helper methods
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email sending skipped (SMTP not configured)")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"bienvenida": {
			Subject: "Bienvenido al Registro REPA",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Registro creado</h2>
	<p>Su cuenta con CURP {{.Curp}} fue creada correctamente.</p>
	<p>Ingrese al portal para completar los anexos de su solicitud:</p>
	<a href="{{.PortalURL}}">Portal REPA</a>
</body>
</html>`,
		},
		"recuperacion": {
			Subject: "Recuperación de contraseña",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Recuperación de contraseña</h2>
	<p>Para restablecer su contraseña haga clic en el siguiente enlace. El enlace vence en {{.ExpiresIn}}.</p>
	<a href="{{.ResetURL}}">Restablecer contraseña</a>
	<p>Si usted no solicitó este cambio, ignore este mensaje.</p>
</body>
</html>`,
		},
		"anexo_guardado": {
			Subject: "Anexo guardado",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<p>La información del Anexo {{.Anexo}} de su solicitud fue guardada correctamente.</p>
	<a href="{{.PortalURL}}">Continuar con la solicitud</a>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return EmailTemplate{
		Subject: "Notificación REPA",
		Body:    "<p>{{.Message}}</p>",
	}
}
