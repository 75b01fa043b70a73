package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/meridiantrade/catalog-services/internal/config"
	"github.com/meridiantrade/catalog-services/internal/contact"
)

// Mailer delivers a contact message to the sales inbox.
type Mailer interface {
	Send(ctx context.Context, m *contact.Message) error
}

// SMTPMailer sends contact messages through an SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer returns nil when SMTP_HOST or MAIL_TO is not set.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	if cfg.Host == "" || cfg.To == "" {
		return nil
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{cfg: cfg}
}

// BuildMessage renders m as the email sent to the sales inbox. The
// submitter's address goes into Reply-To.
func BuildMessage(from, to string, m *contact.Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	if err := msg.ReplyTo(m.Email); err != nil {
		return nil, fmt.Errorf("reply-to address: %w", err)
	}
	subject := m.Subject
	if subject == "" {
		subject = "Website enquiry"
	}
	msg.Subject(fmt.Sprintf("[Contact] %s - %s", subject, m.Name))
	msg.SetBodyString(mail.TypeTextPlain, renderBody(m))
	return msg, nil
}

func renderBody(m *contact.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", m.Name)
	fmt.Fprintf(&b, "Email: %s\n", m.Email)
	if m.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", m.Company)
	}
	if m.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", m.Phone)
	}
	fmt.Fprintf(&b, "Received: %s\n\n", m.CreatedAt.Format(time.RFC1123))
	b.WriteString(m.Message)
	b.WriteString("\n")
	return b.String()
}

func (s *SMTPMailer) Send(ctx context.Context, m *contact.Message) error {
	msg, err := BuildMessage(s.cfg.From, s.cfg.To, m)
	if err != nil {
		return err
	}
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(15 * time.Second),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
