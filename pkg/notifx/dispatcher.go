package notifx

import (
	"context"
	"strings"
	"sync"

	"github.com/Abraxas-365/hrms/pkg/config"
	"github.com/Abraxas-365/hrms/pkg/logx"
)

// SenderFactory builds a Sender for the given settings.
type SenderFactory func(cfg config.EmailConfig) (Sender, error)

// DefaultSenderFactory picks SMTP or console from cfg.Provider.
func DefaultSenderFactory(cfg config.EmailConfig) (Sender, error) {
	switch strings.ToLower(cfg.Provider) {
	case "smtp":
		return NewSMTPSender(cfg)
	case "console", "":
		return ConsoleSender{}, nil
	default:
		return nil, ErrInvalidSettings("unknown EMAIL_PROVIDER " + cfg.Provider)
	}
}

// Dispatcher renders templates and hands messages to the current sender.
// Settings are swapped atomically by Refresh.
type Dispatcher struct {
	mu        sync.RWMutex
	cfg       config.EmailConfig
	sender    Sender
	catalogue *Catalogue

	load    func() config.EmailConfig
	factory SenderFactory
}

type Option func(*Dispatcher)

// WithLoader sets where Refresh reads settings from. The default re-reads
// config.DefaultEnvFile over the process environment.
func WithLoader(load func() config.EmailConfig) Option {
	return func(d *Dispatcher) { d.load = load }
}

func WithSenderFactory(f SenderFactory) Option {
	return func(d *Dispatcher) { d.factory = f }
}

// NewDispatcher builds a dispatcher from explicit settings.
func NewDispatcher(cfg config.EmailConfig, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		load:    func() config.EmailConfig { return config.ReloadEmailConfig() },
		factory: DefaultSenderFactory,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.apply(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dispatcher) apply(cfg config.EmailConfig) error {
	sender, err := d.factory(cfg)
	if err != nil {
		return err
	}
	catalogue, err := LoadCatalogue(cfg.TemplatesFile)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.cfg = cfg
	d.sender = sender
	d.catalogue = catalogue
	d.mu.Unlock()
	return nil
}

// Refresh reloads settings and templates. On error the previous settings stay
// in place.
func (d *Dispatcher) Refresh(ctx context.Context) error {
	cfg := d.load()
	if err := d.apply(cfg); err != nil {
		logx.Errorf("Email settings refresh failed: %v", err)
		return err
	}
	logx.WithFields(logx.Fields{"provider": cfg.Provider, "from": cfg.FromAddress}).
		Info("Email settings refreshed")
	return nil
}

// Settings returns a copy of the active settings without the SMTP password.
func (d *Dispatcher) Settings() config.EmailConfig {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cfg := d.cfg
	cfg.SMTPPassword = ""
	return cfg
}

func (d *Dispatcher) snapshot() (config.EmailConfig, Sender, *Catalogue) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg, d.sender, d.catalogue
}

// Dispatch sends msg. Empty recipients are dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) Result {
	cfg, sender, _ := d.snapshot()

	msg.To = cleanRecipients(msg.To)
	if len(msg.To) == 0 {
		return failed(ErrNoRecipients())
	}
	if cfg.SMTPTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.SMTPTimeout)
		defer cancel()
	}

	if err := sender.Send(ctx, msg); err != nil {
		return failed(ErrDeliveryFailed(err))
	}
	return ok()
}

// templateData is what every template sees: the company name plus the
// caller's data under .Data.
type templateData struct {
	Company string
	Data    any
}

// DispatchTemplate renders the named template with data and sends it.
func (d *Dispatcher) DispatchTemplate(ctx context.Context, name string, to []string, data any, attachments ...Attachment) Result {
	cfg, _, catalogue := d.snapshot()

	subject, html, err := catalogue.Render(name, templateData{Company: cfg.CompanyName, Data: data})
	if err != nil {
		return failed(err)
	}
	return d.Dispatch(ctx, Message{
		To:          to,
		Subject:     subject,
		HTML:        html,
		Attachments: attachments,
	})
}

func cleanRecipients(to []string) []string {
	out := make([]string, 0, len(to))
	seen := make(map[string]bool, len(to))
	for _, addr := range to {
		addr = strings.TrimSpace(addr)
		key := strings.ToLower(addr)
		if addr == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, addr)
	}
	return out
}
