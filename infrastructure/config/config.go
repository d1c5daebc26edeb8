package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// AppConfig is the runtime configuration for the dashboard.
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Sheets SheetsConfig `yaml:"sheets"`
	Tenant TenantConfig `yaml:"tenant"`
	Auth   AuthConfig   `yaml:"auth"`
}

type ServerConfig struct {
	Addr       string `yaml:"addr"`
	SQLitePath string `yaml:"sqlite_path"`
}

// SheetsConfig points at the published spreadsheet and names its tabs.
type SheetsConfig struct {
	BaseURL        string            `yaml:"base_url"`
	SpreadsheetID  string            `yaml:"spreadsheet_id"`
	PollSchedule   string            `yaml:"poll_schedule"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Tabs           map[string]string `yaml:"tabs"`
}

type TenantConfig struct {
	Name         string `yaml:"name"`
	CustomerCode string `yaml:"customer_code"`
	ExpiryDays   int    `yaml:"expiry_days"`
}

type AuthConfig struct {
	GoogleClientID      string   `yaml:"google_client_id"`
	AllowedEmailDomain  string   `yaml:"allowed_email_domain"`
	AdminEmails         []string `yaml:"admin_emails"`
	ServiceAccountEmail string   `yaml:"service_account_email"`
	ServiceAccountHash  string   `yaml:"service_account_hash"`
}

// Tab keys used throughout the dashboard.
const (
	TabInbound       = "inbound"
	TabOutbound      = "outbound"
	TabStock         = "stock"
	TabLocations     = "locations"
	TabGRN           = "grn"
	TabPalletBuild   = "pallet_build"
	TabPickExecution = "pick_execution"
	TabLiveInward    = "live_inward"
	TabLiveOutbound  = "live_outbound"
)

// TabOrder is the fetch and display order of the spreadsheet tabs.
var TabOrder = []string{
	TabInbound,
	TabOutbound,
	TabStock,
	TabLocations,
	TabGRN,
	TabPalletBuild,
	TabPickExecution,
	TabLiveInward,
	TabLiveOutbound,
}

// DefaultConfig returns the settings used when no file or env override is present.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Addr:       ":8080",
			SQLitePath: "logidash.db",
		},
		Sheets: SheetsConfig{
			BaseURL:        "https://docs.google.com",
			SpreadsheetID:  "1fBPpQD_JaXNqN6Q6vCzF1XqibR_mQRTVRZfHfBg1s_k",
			PollSchedule:   "@every 30s",
			TimeoutSeconds: 20,
			Tabs: map[string]string{
				TabInbound:       "Vehicle_Entry_IB_1st",
				TabOutbound:      "DN_Entry_OB_01",
				TabStock:         "Pallet_Status_Occupied",
				TabLocations:     "Location_Status_01",
				TabGRN:           "GRN_Entry_IB_01",
				TabPalletBuild:   "Pallet_Build_IB_04",
				TabPickExecution: "Picking_Execution_OB_04",
				TabLiveInward:    "Live Transaction Status Dashboard - INWARD",
				TabLiveOutbound:  "Live Transaction Status Dashboard - OUTBOUND",
			},
		},
		Tenant: TenantConfig{
			Name:         "falcon",
			CustomerCode: "CUS-0001",
			ExpiryDays:   30,
		},
		Auth: AuthConfig{
			AllowedEmailDomain:  "@crystalgroup.in",
			ServiceAccountEmail: "apps@crystalgroup.in",
		},
	}
}

// Load reads the YAML file at path (a missing file is fine), applies
// environment overrides and validates the result.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.fillTabDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("APP_ADDR", &c.Server.Addr)
	set("SQLITE_PATH", &c.Server.SQLitePath)
	set("SHEET_ID", &c.Sheets.SpreadsheetID)
	set("SHEETS_BASE_URL", &c.Sheets.BaseURL)
	set("POLL_SCHEDULE", &c.Sheets.PollSchedule)
	set("GOOGLE_CLIENT_ID", &c.Auth.GoogleClientID)
	set("ALLOWED_EMAIL_DOMAIN", &c.Auth.AllowedEmailDomain)
	set("SERVICE_ACCOUNT_HASH", &c.Auth.ServiceAccountHash)
	set("TENANT_NAME", &c.Tenant.Name)
	set("TENANT_CUSTOMER_CODE", &c.Tenant.CustomerCode)

	if v, ok := lookup("ADMIN_EMAILS"); ok && strings.TrimSpace(v) != "" {
		c.Auth.AdminEmails = nil
		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				c.Auth.AdminEmails = append(c.Auth.AdminEmails, e)
			}
		}
	}
}

// A partial tabs map in the file keeps the defaults for tabs it omits.
func (c *AppConfig) fillTabDefaults() {
	defaults := DefaultConfig().Sheets.Tabs
	if c.Sheets.Tabs == nil {
		c.Sheets.Tabs = defaults
		return
	}
	for k, v := range defaults {
		if strings.TrimSpace(c.Sheets.Tabs[k]) == "" {
			c.Sheets.Tabs[k] = v
		}
	}
}

// Validate checks the settings the server cannot start without.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server addr is required")
	}
	if strings.TrimSpace(c.Server.SQLitePath) == "" {
		return errors.New("sqlite path is required")
	}
	if strings.TrimSpace(c.Sheets.SpreadsheetID) == "" {
		return errors.New("spreadsheet id is required")
	}
	if !strings.HasPrefix(c.Sheets.BaseURL, "http://") && !strings.HasPrefix(c.Sheets.BaseURL, "https://") {
		return fmt.Errorf("sheets base url must be http(s): %q", c.Sheets.BaseURL)
	}
	if _, err := cron.ParseStandard(c.Sheets.PollSchedule); err != nil {
		return fmt.Errorf("invalid poll schedule %q: %w", c.Sheets.PollSchedule, err)
	}
	if strings.TrimSpace(c.Tenant.Name) == "" {
		return errors.New("tenant name is required")
	}
	if c.Tenant.ExpiryDays <= 0 {
		return errors.New("tenant expiry_days must be positive")
	}
	if !strings.HasPrefix(c.Auth.AllowedEmailDomain, "@") {
		return fmt.Errorf("allowed email domain must start with @: %q", c.Auth.AllowedEmailDomain)
	}
	return nil
}

// IsAdminEmail reports whether email is listed as an administrator.
func (c *AppConfig) IsAdminEmail(email string) bool {
	return c.Auth.IsAdminEmail(email)
}

func (a AuthConfig) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range a.AdminEmails {
		if strings.ToLower(strings.TrimSpace(admin)) == email {
			return true
		}
	}
	return false
}

// DomainAllowed reports whether email ends with the allowed domain suffix.
func (a AuthConfig) DomainAllowed(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	domain := strings.ToLower(strings.TrimSpace(a.AllowedEmailDomain))
	return domain != "" && strings.HasSuffix(email, domain) && len(email) > len(domain)
}
