package notifx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Abraxas-365/hrms/pkg/config"
	"github.com/wneessen/go-mail"
)

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	client   *mail.Client
	from     string
	fromName string
}

// NewSMTPSender builds a client from the email settings. No connection is
// opened until the first Send.
func NewSMTPSender(cfg config.EmailConfig) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, ErrInvalidSettings("SMTP_HOST is required for the smtp provider")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPTimeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.SMTPTimeout))
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("notifx: smtp client: %w", err)
	}
	return &SMTPSender{client: client, from: cfg.FromAddress, fromName: cfg.FromName}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()

	if msg.From != "" {
		if err := m.From(msg.From); err != nil {
			return fmt.Errorf("notifx: from: %w", err)
		}
	} else if err := m.FromFormat(s.fromName, s.from); err != nil {
		return fmt.Errorf("notifx: from: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("notifx: to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	for _, a := range msg.Attachments {
		var opts []mail.FileOption
		if a.ContentType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(a.ContentType)))
		}
		if err := m.AttachReader(a.Filename, bytes.NewReader(a.Data), opts...); err != nil {
			return fmt.Errorf("notifx: attach %s: %w", a.Filename, err)
		}
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("notifx: smtp send: %w", err)
	}
	return nil
}
