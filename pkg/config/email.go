// pkg/config/email.go
package config

import (
	"maps"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the settings file read by Load and ReloadEmailConfig.
const DefaultEnvFile = ".env"

type EmailConfig struct {
	// Provider is "smtp" or "console".
	Provider     string
	FromAddress  string
	FromName     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPTimeout  time.Duration
	// TemplatesFile points to a YAML catalogue overriding the embedded one.
	TemplatesFile string
	CompanyName   string
}

// LoadEmailConfig reads the email settings from the process environment.
func LoadEmailConfig() EmailConfig {
	return emailConfigFrom(os.Getenv)
}

// ReloadEmailConfig re-reads the env files (DefaultEnvFile when none are
// given) and lays their values over the process environment. The environment
// of a running process never changes, so the files are what an operator edits
// before asking for a refresh. Missing or unreadable files are skipped.
func ReloadEmailConfig(files ...string) EmailConfig {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	fromFiles := make(map[string]string)
	for _, f := range files {
		values, err := godotenv.Read(f)
		if err != nil {
			continue
		}
		maps.Copy(fromFiles, values)
	}
	return emailConfigFrom(func(key string) string {
		if v, ok := fromFiles[key]; ok {
			return v
		}
		return os.Getenv(key)
	})
}

func emailConfigFrom(lookup func(string) string) EmailConfig {
	str := func(key, def string) string {
		if v := lookup(key); v != "" {
			return v
		}
		return def
	}
	return EmailConfig{
		Provider:      str("EMAIL_PROVIDER", "console"),
		FromAddress:   str("EMAIL_FROM_ADDRESS", "noreply@hrms.local"),
		FromName:      str("EMAIL_FROM_NAME", "HR Team"),
		SMTPHost:      str("SMTP_HOST", ""),
		SMTPPort:      lookupInt(lookup, "SMTP_PORT", 587),
		SMTPUsername:  str("SMTP_USERNAME", ""),
		SMTPPassword:  str("SMTP_PASSWORD", ""),
		SMTPTimeout:   lookupDuration(lookup, "SMTP_TIMEOUT", 10*time.Second),
		TemplatesFile: str("EMAIL_TEMPLATES_FILE", ""),
		CompanyName:   str("COMPANY_NAME", "Our Company"),
	}
}

func lookupInt(lookup func(string) string, key string, def int) int {
	if v, err := strconv.Atoi(lookup(key)); err == nil {
		return v
	}
	return def
}

func lookupDuration(lookup func(string) string, key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(lookup(key)); err == nil {
		return v
	}
	return def
}
