// Package config defines the scrape configuration and its validation.
// Values are taken from a config yml file or environment variables or both.
package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/ilyakaznacheev/cleanenv"
)

// Output format constants. The writer factory in the output package
// accepts the same values.
const (
	FormatJSON   = "json"
	FormatCSV    = "csv"
	FormatExcel  = "excel"
	FormatStdout = "stdout"
)

// Default values for optional fields, applied after decoding.
const (
	DefaultWaitMS            = 2000
	DefaultSlowMoMS          = 100
	DefaultMaxScrolls        = 10
	DefaultScrollDelayMS     = 2000
	DefaultMaxPages          = 5
	DefaultMaxRetries        = 2
	DefaultRetryDelayMS      = 1000
	DefaultRequestsPerMinute = 60
	DefaultRequestDelayMS    = 1000
	DefaultLoginWaitMS       = 3000
	DefaultOutputDir         = "output"
	DefaultScreenshotFile    = "screenshot.png"
	DefaultOutputBasename    = "extracted_data"
)

// LoginConfig describes an optional login step that runs before extraction.
// Credentials can be passed via env vars so they don't end up in config files.
type LoginConfig struct {
	Username         string `yaml:"username" env:"SCRAPER_LOGIN_USERNAME"`
	Password         string `yaml:"password" env:"SCRAPER_LOGIN_PASSWORD"`
	UsernameSelector string `yaml:"username_selector"`
	PasswordSelector string `yaml:"password_selector"`
	SubmitSelector   string `yaml:"submit_selector"`
	WaitMS           int    `yaml:"wait_ms"`
}

// HasCredentials reports whether both a username and a password are set.
func (l *LoginConfig) HasCredentials() bool {
	return l != nil && l.Username != "" && l.Password != ""
}

// RateLimitConfig bounds how fast the scraper issues page navigations.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	DelayMS           int `yaml:"delay_ms"`
}

// ScrapeConfig is the declarative description of a single scrape run.
type ScrapeConfig struct {
	URL          string `yaml:"url" env:"SCRAPER_URL"`
	OutputFormat string `yaml:"output_format"`
	OutputDir    string `yaml:"output_dir"`
	WaitMS       int    `yaml:"wait_ms"`
	Headless     *bool  `yaml:"headless"`
	SlowMoMS     int    `yaml:"slow_mo_ms"`
	UserAgent    string `yaml:"user_agent"`

	Selectors     SelectorMap `yaml:"selectors"`
	ItemSelector  string      `yaml:"item_selector"`
	ItemSelectors SelectorMap `yaml:"item_selectors"`

	InfiniteScroll bool `yaml:"infinite_scroll"`
	MaxScrolls     int  `yaml:"max_scrolls"`
	ScrollDelayMS  int  `yaml:"scroll_delay_ms"`

	MultiPage          bool   `yaml:"multi_page"`
	PaginationSelector string `yaml:"pagination_selector"`
	MaxPages           int    `yaml:"max_pages"`

	Login *LoginConfig `yaml:"login"`

	RateLimit    RateLimitConfig `yaml:"rate_limit"`
	MaxRetries   int             `yaml:"max_retries"`
	RetryDelayMS int             `yaml:"retry_delay_ms"`

	TakeScreenshot bool   `yaml:"take_screenshot"`
	ScreenshotFile string `yaml:"screenshot_file"`

	// Extractor names a custom extraction routine registered by the
	// embedding program. It is mutually exclusive with Selectors.
	Extractor string `yaml:"extractor"`
}

// NewScrapeConfig reads a scrape configuration from the given yaml file,
// applies defaults and validates it.
func NewScrapeConfig(configPath string) (*ScrapeConfig, error) {
	var config ScrapeConfig
	if err := cleanenv.ReadConfig(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// ApplyDefaults fills in the documented default values for all optional
// fields that are unset.
func (c *ScrapeConfig) ApplyDefaults() {
	if c.OutputFormat == "" {
		c.OutputFormat = FormatJSON
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.WaitMS == 0 {
		c.WaitMS = DefaultWaitMS
	}
	if c.SlowMoMS == 0 {
		c.SlowMoMS = DefaultSlowMoMS
	}
	if c.MaxScrolls == 0 {
		c.MaxScrolls = DefaultMaxScrolls
	}
	if c.ScrollDelayMS == 0 {
		c.ScrollDelayMS = DefaultScrollDelayMS
	}
	if c.MaxPages == 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelayMS == 0 {
		c.RetryDelayMS = DefaultRetryDelayMS
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if c.RateLimit.DelayMS == 0 {
		c.RateLimit.DelayMS = DefaultRequestDelayMS
	}
	if c.ScreenshotFile == "" {
		c.ScreenshotFile = DefaultScreenshotFile
	}
	if c.Login != nil && c.Login.WaitMS == 0 {
		c.Login.WaitMS = DefaultLoginWaitMS
	}
}

// IsHeadless reports whether the browser should run without a visible
// window. Defaults to true when the field is absent.
func (c *ScrapeConfig) IsHeadless() bool {
	if c.Headless == nil {
		return true
	}
	return *c.Headless
}

// Validate checks the configuration before any browser is launched.
func (c *ScrapeConfig) Validate() error {
	if c.URL == "" {
		return errors.New("'url' is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("'url' %q is not a valid URL: %w", c.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("'url' %q must be an absolute http(s) URL", c.URL)
	}

	hasSelectors := c.Selectors.Len() > 0 || c.ItemSelector != "" || c.ItemSelectors.Len() > 0
	if c.Extractor != "" && hasSelectors {
		return errors.New("'selectors' and 'extractor' cannot be combined, configure one of the two")
	}
	if c.Extractor == "" && !hasSelectors {
		return errors.New("either 'selectors' (or 'item_selector' with 'item_selectors') or a named 'extractor' must be configured")
	}
	if c.Selectors.Len() > 0 && (c.ItemSelector != "" || c.ItemSelectors.Len() > 0) {
		return errors.New("'selectors' and 'item_selector' cannot be combined, configure one of the two")
	}
	if c.ItemSelector != "" && c.ItemSelectors.Len() == 0 {
		return errors.New("'item_selectors' must be configured when 'item_selector' is set")
	}
	if c.ItemSelector == "" && c.ItemSelectors.Len() > 0 {
		return errors.New("'item_selector' must be configured when 'item_selectors' is set")
	}

	if c.MultiPage && c.PaginationSelector == "" {
		return errors.New("'pagination_selector' must be configured when 'multi_page' is set")
	}

	if c.Login.HasCredentials() {
		if c.Login.UsernameSelector == "" || c.Login.PasswordSelector == "" || c.Login.SubmitSelector == "" {
			return errors.New("'login' requires 'username_selector', 'password_selector' and 'submit_selector'")
		}
	}

	switch c.OutputFormat {
	case FormatJSON, FormatCSV, FormatExcel, FormatStdout:
	default:
		return fmt.Errorf("unsupported output format: %s", c.OutputFormat)
	}
	return nil
}
