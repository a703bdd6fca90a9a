package notifx_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/hrms/pkg/config"
	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/notifx"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []notifx.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg notifx.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newDispatcher(t *testing.T, sender notifx.Sender, cfg config.EmailConfig) *notifx.Dispatcher {
	t.Helper()
	d, err := notifx.NewDispatcher(cfg, notifx.WithSenderFactory(func(config.EmailConfig) (notifx.Sender, error) {
		return sender, nil
	}))
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	return d
}

func TestDispatchTemplate_RendersEmbeddedCatalogue(t *testing.T) {
	sender := &recordingSender{}
	d := newDispatcher(t, sender, config.EmailConfig{CompanyName: "Acme"})

	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	res := d.DispatchTemplate(context.Background(), notifx.TemplateSessionScheduledCandidate,
		[]string{"ana@example.com", " ", "ANA@example.com"},
		map[string]any{
			"CandidateName": "Ana",
			"RoundName":     "Technical",
			"Start":         start,
			"End":           start.Add(30 * time.Minute),
			"MeetingLink":   "https://meet.example.com/x",
		})

	if !res.Success {
		t.Fatalf("dispatch failed: %s", res.Error)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	msg := sender.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "ana@example.com" {
		t.Errorf("recipients = %v, want deduplicated [ana@example.com]", msg.To)
	}
	if msg.Subject != "Interview scheduled: Technical at Acme" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Hello Ana") || !strings.Contains(msg.HTML, "https://meet.example.com/x") {
		t.Errorf("html missing data: %s", msg.HTML)
	}
}

func TestDispatch_Failures(t *testing.T) {
	tests := []struct {
		name     string
		sender   *recordingSender
		template string
		to       []string
		wantCode errx.Code
	}{
		{
			name:     "unknown template",
			sender:   &recordingSender{},
			template: "nope",
			to:       []string{"x@example.com"},
			wantCode: notifx.CodeTemplateNotFound,
		},
		{
			name:     "no recipients",
			sender:   &recordingSender{},
			template: notifx.TemplateSessionCancelled,
			to:       []string{""},
			wantCode: notifx.CodeNoRecipients,
		},
		{
			name:     "smtp down",
			sender:   &recordingSender{err: errors.New("connection refused")},
			template: notifx.TemplateSessionCancelled,
			to:       []string{"x@example.com"},
			wantCode: notifx.CodeDeliveryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDispatcher(t, tt.sender, config.EmailConfig{})
			res := d.DispatchTemplate(context.Background(), tt.template, tt.to, map[string]any{"Start": time.Now()})
			if res.Success {
				t.Fatal("expected failure")
			}
			if !strings.Contains(res.Error, tt.wantCode.Message) {
				t.Errorf("error = %q, want it to mention %q", res.Error, tt.wantCode.Message)
			}
		})
	}
}

func TestRefresh_SwapsSettings(t *testing.T) {
	sender := &recordingSender{}
	current := config.EmailConfig{CompanyName: "Old", FromAddress: "old@example.com"}

	d, err := notifx.NewDispatcher(current,
		notifx.WithSenderFactory(func(config.EmailConfig) (notifx.Sender, error) { return sender, nil }),
		notifx.WithLoader(func() config.EmailConfig {
			return config.EmailConfig{CompanyName: "New", FromAddress: "new@example.com", SMTPPassword: "secret"}
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	got := d.Settings()
	if got.FromAddress != "new@example.com" || got.CompanyName != "New" {
		t.Errorf("settings not refreshed: %+v", got)
	}
	if got.SMTPPassword != "" {
		t.Error("Settings must not expose the SMTP password")
	}
}

func TestRefresh_KeepsPreviousOnError(t *testing.T) {
	calls := 0
	d, err := notifx.NewDispatcher(config.EmailConfig{FromAddress: "old@example.com"},
		notifx.WithSenderFactory(func(config.EmailConfig) (notifx.Sender, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("bad settings")
			}
			return &recordingSender{}, nil
		}),
		notifx.WithLoader(func() config.EmailConfig { return config.EmailConfig{FromAddress: "new@example.com"} }),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := d.Settings().FromAddress; got != "old@example.com" {
		t.Errorf("FromAddress = %q, want previous value", got)
	}
}

func TestLoadCatalogue_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	override := `templates:
  session_cancelled:
    subject: "Cancelled {{.Data.RoundName}}"
    html: "<p>gone</p>"
`
	if err := os.WriteFile(path, []byte(override), 0o600); err != nil {
		t.Fatal(err)
	}

	cat, err := notifx.LoadCatalogue(path)
	if err != nil {
		t.Fatalf("LoadCatalogue: %v", err)
	}
	subject, html, err := cat.Render(notifx.TemplateSessionCancelled, map[string]any{"Data": map[string]any{"RoundName": "HR"}})
	if err != nil {
		t.Fatal(err)
	}
	if subject != "Cancelled HR" || html != "<p>gone</p>" {
		t.Errorf("override not applied: %q %q", subject, html)
	}
	if !cat.Has(notifx.TemplateOfferLetter) {
		t.Error("embedded templates should remain available")
	}
}

func TestParseCatalogue_Invalid(t *testing.T) {
	for _, data := range []string{"", "templates:\n  x:\n    subject: \"\"\n    html: \"<p/>\"\n", "templates: ["} {
		if _, err := notifx.ParseCatalogue([]byte(data)); err == nil {
			t.Errorf("ParseCatalogue(%q) should fail", data)
		}
	}
}

func TestRefresh_RereadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("EMAIL_FROM_ADDRESS", "")

	write := func(from string) {
		t.Helper()
		body := "EMAIL_PROVIDER=console\nEMAIL_FROM_ADDRESS=" + from + "\n"
		if err := os.WriteFile(filepath.Join(dir, config.DefaultEnvFile), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	write("old@corp.test")
	d, err := notifx.NewDispatcher(config.ReloadEmailConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Settings().FromAddress; got != "old@corp.test" {
		t.Fatalf("initial FromAddress = %q", got)
	}

	write("new@corp.test")
	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := d.Settings().FromAddress; got != "new@corp.test" {
		t.Errorf("FromAddress after refresh = %q, want new@corp.test", got)
	}
}
