package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/consultly-app/consultly/internal/config"
	"github.com/consultly-app/consultly/pkg/logger"
)

// EmailService sends transactional mail over SMTP. Sends are synchronous;
// callers decide whether a failure is fatal for their operation.
type EmailService struct {
	cfg         config.EmailConfig
	frontendURL string
}

func NewEmailService(cfg config.EmailConfig, frontendURL string) *EmailService {
	return &EmailService{cfg: cfg, frontendURL: strings.TrimSuffix(frontendURL, "/")}
}

// resetURL is the frontend page that consumes a password-reset token.
func (s *EmailService) resetURL(token string) string {
	return fmt.Sprintf("%s/login/%s", s.frontendURL, token)
}

// SendWelcome mails a newly created user their password-setup link.
func (s *EmailService) SendWelcome(to, name, resetToken string) error {
	subject := "[Consultly] Welcome - set your password"

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Welcome to Consultly, %s!</h2>", name))
	sb.WriteString("<p>An account has been created for you. Use the link below to set your password:</p>")
	sb.WriteString(fmt.Sprintf("<p><a href=\"%s\">Set your password</a></p>", s.resetURL(resetToken)))
	sb.WriteString("<p>The link expires in 5 minutes. If it has expired, use \"Forgot password\" on the login page to request a new one.</p>")
	sb.WriteString("<hr><p style=\"color: #888; font-size: 12px;\">Consultly</p>")
	sb.WriteString("</body></html>")

	return s.send([]string{to}, subject, sb.String())
}

// SendPasswordReset mails a password-reset link to an existing user.
func (s *EmailService) SendPasswordReset(to, name, resetToken string) error {
	subject := "[Consultly] Password reset"

	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Hi %s,</h2>", name))
	sb.WriteString("<p>We received a request to reset your password. Use the link below to choose a new one:</p>")
	sb.WriteString(fmt.Sprintf("<p><a href=\"%s\">Reset your password</a></p>", s.resetURL(resetToken)))
	sb.WriteString("<p>The link expires in 5 minutes. If you did not request this, you can ignore this email.</p>")
	sb.WriteString("<hr><p style=\"color: #888; font-size: 12px;\">Consultly</p>")
	sb.WriteString("</body></html>")

	return s.send([]string{to}, subject, sb.String())
}

func (s *EmailService) send(to []string, subject, body string) error {
	if !s.cfg.Enabled || s.cfg.Host == "" {
		logger.Debugf("[Email] Disabled, skipping %q to %v", subject, to)
		return nil
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(to, ","),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" && s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var err error
	if s.cfg.UseTLS {
		err = s.sendTLS(addr, auth, from, to, message.String())
	} else {
		err = smtp.SendMail(addr, auth, from, to, []byte(message.String()))
	}

	if err != nil {
		logger.Warnf("[Email] Failed to send %q to %v: %v", subject, to, err)
		return err
	}

	logger.Infof("[Email] Sent %q to %v", subject, to)
	return nil
}

func (s *EmailService) sendTLS(addr string, auth smtp.Auth, from string, to []string, message string) error {
	tlsConfig := &tls.Config{
		ServerName: s.cfg.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}

	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte(message)); err != nil {
		return err
	}

	return w.Close()
}
