package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string

	DBDriver string
	DBConn   string
	Table    string

	ReportMonth int
	ReportYear  int

	LLMAPIKey             string
	LLMBaseURL            string
	LLMModel              string
	LLMInsecureSkipVerify bool

	JWTSecret           string
	AnalystUsername     string
	AnalystPasswordHash string

	BCBURL string

	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SenderEmail      string
	DigestSchedule   string
	DigestRecipients []string
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Load reads the given env files, or .env when none is named, and then the
// environment. Only the implicit .env may be missing.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}
	return NewConfig()
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		DBDriver: getEnv("DB_DRIVER", "postgres"),
		DBConn:   getEnv("DB_CONN", ""),
		Table:    getEnv("DATA_TABLE", "table_agg_inad_consolidado"),

		LLMAPIKey:             getEnv("LLM_API_KEY", getEnv("API_KEY", "")),
		LLMBaseURL:            getEnv("LLM_BASE_URL", "https://api.deepseek.com"),
		LLMModel:              getEnv("LLM_MODEL", "deepseek-chat"),
		LLMInsecureSkipVerify: getEnv("LLM_INSECURE_SKIP_VERIFY", "false") == "true",

		JWTSecret:           getEnv("JWT_SECRET", "secret"),
		AnalystUsername:     getEnv("ANALYST_USERNAME", "analyst"),
		AnalystPasswordHash: getEnv("ANALYST_PASSWORD_HASH", ""),

		BCBURL: getEnv("BCB_URL", "https://api.bcb.gov.br/dados/serie/bcdata.sgs.432/dados/ultimos/1?formato=xml"),

		SMTPHost:         getEnv("SMTP_HOST", "localhost"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SenderEmail:      getEnv("SENDER_EMAIL", "insights@localhost"),
		DigestSchedule:   getEnv("DIGEST_SCHEDULE", ""),
		DigestRecipients: splitList(getEnv("DIGEST_RECIPIENTS", "")),
	}

	var err error
	if cfg.ReportMonth, err = strconv.Atoi(getEnv("REPORT_MONTH", "12")); err != nil {
		return nil, fmt.Errorf("invalid REPORT_MONTH: %w", err)
	}
	if cfg.ReportYear, err = strconv.Atoi(getEnv("REPORT_YEAR", "2024")); err != nil {
		return nil, fmt.Errorf("invalid REPORT_YEAR: %w", err)
	}
	if _, err := cfg.Period(); err != nil {
		return nil, err
	}

	if cfg.DBConn == "" {
		cfg.DBConn, err = postgresDSN()
		if err != nil {
			return nil, err
		}
	}

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DBDriver)
	}
	if !tableName.MatchString(cfg.Table) {
		return nil, fmt.Errorf("invalid DATA_TABLE: %q", cfg.Table)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DigestSchedule != "" && len(cfg.DigestRecipients) == 0 {
		return nil, fmt.Errorf("DIGEST_RECIPIENTS is required when DIGEST_SCHEDULE is set")
	}

	return cfg, nil
}

// Period returns the reference month the report covers
func (c *Config) Period() (models.Period, error) {
	return models.NewPeriod(c.ReportMonth, c.ReportYear)
}

// postgresDSN assembles a connection URL from the discrete DB_* variables
func postgresDSN() (string, error) {
	host := getEnv("DB_HOST", "")
	name := getEnv("DB_NAME", "")
	user := getEnv("DB_USER", "")
	password := getEnv("DB_PASSWORD", "")
	port := getEnv("DB_PORT", "5432")

	if host == "" || name == "" || user == "" {
		return "", fmt.Errorf("DB_CONN or DB_HOST, DB_NAME and DB_USER are required")
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=" + getEnv("DB_SSLMODE", "require"),
	}
	return u.String(), nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
