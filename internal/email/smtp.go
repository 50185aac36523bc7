package email

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	// ResetURL is a template with one %s placeholder for the reset token.
	ResetURL string `mapstructure:"reset_url"`
}

type smtpService struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPService creates a mail sender backed by an SMTP relay.
func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *smtpService) SendPasswordReset(ctx context.Context, to string, token string) error {
	link := fmt.Sprintf(s.cfg.ResetURL, token)
	body := fmt.Sprintf(`<html><body>
<p>Hello,</p>
<p>We received a request to reset the password for your account.</p>
<p><a href="%s">Reset your password</a></p>
<p>This link expires in one hour. If you did not request a reset, you can ignore this message.</p>
</body></html>`, link)

	return s.SendCustom(ctx, to, "Password reset", body)
}

// SendCustom sends a multipart message: the HTML body plus a plain-text
// fallback derived by stripping tags.
func (s *smtpService) SendCustom(ctx context.Context, to string, subject string, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", stripTags(htmlBody))
	msg.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	text := tagPattern.ReplaceAllString(s, "")
	text = html.UnescapeString(text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
