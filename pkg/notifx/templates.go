package notifx

import (
	"bytes"
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	"os"
	"strings"
	texttemplate "text/template"

	"gopkg.in/yaml.v3"
)

// Template names used by the recruitment services.
const (
	TemplateSessionScheduledCandidate   = "session_scheduled_candidate"
	TemplateSessionScheduledInterviewer = "session_scheduled_interviewer"
	TemplateSessionRescheduled          = "session_rescheduled"
	TemplateSessionCancelled            = "session_cancelled"
	TemplateOfferLetter                 = "offer_letter"
)

//go:embed templates.yaml
var defaultCatalogue []byte

type templateDef struct {
	Subject string `yaml:"subject"`
	HTML    string `yaml:"html"`
}

type catalogueFile struct {
	Templates map[string]templateDef `yaml:"templates"`
}

type compiled struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
}

// Catalogue holds parsed email templates by name.
type Catalogue struct {
	templates map[string]compiled
}

// ParseCatalogue decodes a YAML catalogue and compiles every template.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("notifx: catalogue is empty")
	}
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("notifx: decode catalogue: %w", err)
	}

	cat := &Catalogue{templates: make(map[string]compiled, len(file.Templates))}
	for name, def := range file.Templates {
		if strings.TrimSpace(def.Subject) == "" || strings.TrimSpace(def.HTML) == "" {
			return nil, fmt.Errorf("notifx: template %q needs subject and html", name)
		}
		subject, err := texttemplate.New(name + ".subject").Option("missingkey=zero").Parse(def.Subject)
		if err != nil {
			return nil, fmt.Errorf("notifx: template %q subject: %w", name, err)
		}
		body, err := htmltemplate.New(name + ".html").Option("missingkey=zero").Parse(def.HTML)
		if err != nil {
			return nil, fmt.Errorf("notifx: template %q html: %w", name, err)
		}
		cat.templates[name] = compiled{subject: subject, html: body}
	}
	return cat, nil
}

// LoadCatalogue returns the embedded catalogue, with the templates found in
// path (if any) replacing those of the same name.
func LoadCatalogue(path string) (*Catalogue, error) {
	cat, err := ParseCatalogue(defaultCatalogue)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return cat, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("notifx: read %s: %w", path, err)
	}
	override, err := ParseCatalogue(data)
	if err != nil {
		return nil, fmt.Errorf("notifx: %s: %w", path, err)
	}
	for name, t := range override.templates {
		cat.templates[name] = t
	}
	return cat, nil
}

func (c *Catalogue) Has(name string) bool {
	_, ok := c.templates[name]
	return ok
}

// Render executes the named template against data.
func (c *Catalogue) Render(name string, data any) (subject, html string, err error) {
	t, ok := c.templates[name]
	if !ok {
		return "", "", ErrTemplateNotFound(name)
	}

	var sb, hb bytes.Buffer
	if err := t.subject.Execute(&sb, data); err != nil {
		return "", "", ErrTemplateInvalid(name, err)
	}
	if err := t.html.Execute(&hb, data); err != nil {
		return "", "", ErrTemplateInvalid(name, err)
	}
	return strings.TrimSpace(sb.String()), hb.String(), nil
}
