package notifier

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"scenario-booking/internal/pkg/config"
	"scenario-booking/internal/pkg/errs"
)

// SMTPSender delivers alert emails through a plain SMTP relay. Requesters are
// referenced by ID throughout the core; a bare reference (no '@') is mapped
// onto the relay's recipient domain, full addresses pass through untouched.
type SMTPSender struct {
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "email dispatch aborted")
	}

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	recipient := s.resolveRecipient(to)
	msg := buildMessage(s.cfg.From, recipient, subject, body)

	if err := smtp.SendMail(addr, nil, s.cfg.From, []string{recipient}, msg); err != nil {
		return errs.Wrap(err, "smtp send failed")
	}
	return nil
}

func (s *SMTPSender) resolveRecipient(to string) string {
	if strings.Contains(to, "@") {
		return to
	}
	domain := s.cfg.From
	if i := strings.Index(domain, "@"); i >= 0 {
		domain = domain[i+1:]
	}
	return to + "@" + domain
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
