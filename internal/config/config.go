package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "NEWS_SCRAPER_CONFIG"
	openAIAPIKeyEnv = "OPENAI_API_KEY"
	openAIModelEnv  = "OPENAI_MODEL"
	databaseDSNEnv  = "DATABASE_DSN"
)

// Config holds every setting the application needs. It is built once in main
// and handed into component constructors; components never read the
// environment themselves.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Feed     FeedConfig     `yaml:"feed"`
	Browser  BrowserConfig  `yaml:"browser"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Database DatabaseConfig `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
}

// LoggingConfig controls the console logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FeedConfig describes the news feed source and its fan-out policy.
type FeedConfig struct {
	SearchURL      string `yaml:"searchUrl"`
	QuerySuffix    string `yaml:"querySuffix"`
	Workers        int    `yaml:"workers"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the per-feed-request deadline.
func (f FeedConfig) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// BrowserConfig describes the scroll-based sources sharing the exclusive
// browser resource.
type BrowserConfig struct {
	SearchInstance  string `yaml:"searchInstance"`
	QuerySuffix     string `yaml:"querySuffix"`
	TimelineURL     string `yaml:"timelineUrl"`
	UserAgent       string `yaml:"userAgent"`
	Headless        bool   `yaml:"headless"`
	MinItems        int    `yaml:"minItems"`
	MaxScrolls      int    `yaml:"maxScrolls"`
	SettleSeconds   int    `yaml:"settleSeconds"`
	PageWaitSeconds int    `yaml:"pageWaitSeconds"`
}

// Settle is the pause after each scroll step.
func (b BrowserConfig) Settle() time.Duration {
	if b.SettleSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(b.SettleSeconds) * time.Second
}

// PageWait caps how long a page load may take.
func (b BrowserConfig) PageWait() time.Duration {
	if b.PageWaitSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.PageWaitSeconds) * time.Second
}

// TaxonomyConfig locates the published category reference.
type TaxonomyConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the taxonomy request deadline.
func (t TaxonomyConfig) Timeout() time.Duration {
	if t.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// OpenAIConfig defines how the classification model is contacted.
type OpenAIConfig struct {
	Model          string `yaml:"model"`
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	MaxAttempts    int    `yaml:"maxAttempts"`
}

// Timeout caps a single model call; retries each get a fresh deadline.
func (o OpenAIConfig) Timeout() time.Duration {
	if o.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// DatabaseConfig enables the optional run-history store when a DSN is set.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// OutputConfig names the per-run artifacts and export files.
type OutputConfig struct {
	Dir           string `yaml:"dir"`
	AggregateFile string `yaml:"aggregateFile"`
	ResponseFile  string `yaml:"responseFile"`
	ImpactCSV     string `yaml:"impactCsv"`
	CorpusXLSX    string `yaml:"corpusXlsx"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides for secrets.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Feed.SearchURL != "" {
		base.Feed.SearchURL = override.Feed.SearchURL
	}
	if override.Feed.QuerySuffix != "" {
		base.Feed.QuerySuffix = override.Feed.QuerySuffix
	}
	if override.Feed.Workers > 0 {
		base.Feed.Workers = override.Feed.Workers
	}
	if override.Feed.TimeoutSeconds > 0 {
		base.Feed.TimeoutSeconds = override.Feed.TimeoutSeconds
	}

	if override.Browser.SearchInstance != "" {
		base.Browser.SearchInstance = override.Browser.SearchInstance
	}
	if override.Browser.QuerySuffix != "" {
		base.Browser.QuerySuffix = override.Browser.QuerySuffix
	}
	if override.Browser.TimelineURL != "" {
		base.Browser.TimelineURL = override.Browser.TimelineURL
	}
	if override.Browser.UserAgent != "" {
		base.Browser.UserAgent = override.Browser.UserAgent
	}
	if override.Browser.MinItems > 0 {
		base.Browser.MinItems = override.Browser.MinItems
	}
	if override.Browser.MaxScrolls > 0 {
		base.Browser.MaxScrolls = override.Browser.MaxScrolls
	}
	if override.Browser.SettleSeconds > 0 {
		base.Browser.SettleSeconds = override.Browser.SettleSeconds
	}
	if override.Browser.PageWaitSeconds > 0 {
		base.Browser.PageWaitSeconds = override.Browser.PageWaitSeconds
	}

	if override.Taxonomy.URL != "" {
		base.Taxonomy.URL = override.Taxonomy.URL
	}
	if override.Taxonomy.TimeoutSeconds > 0 {
		base.Taxonomy.TimeoutSeconds = override.Taxonomy.TimeoutSeconds
	}

	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.TimeoutSeconds > 0 {
		base.OpenAI.TimeoutSeconds = override.OpenAI.TimeoutSeconds
	}
	if override.OpenAI.MaxAttempts > 0 {
		base.OpenAI.MaxAttempts = override.OpenAI.MaxAttempts
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Output.Dir != "" {
		base.Output.Dir = override.Output.Dir
	}
	if override.Output.AggregateFile != "" {
		base.Output.AggregateFile = override.Output.AggregateFile
	}
	if override.Output.ResponseFile != "" {
		base.Output.ResponseFile = override.Output.ResponseFile
	}
	if override.Output.ImpactCSV != "" {
		base.Output.ImpactCSV = override.Output.ImpactCSV
	}
	if override.Output.CorpusXLSX != "" {
		base.Output.CorpusXLSX = override.Output.CorpusXLSX
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Feed: FeedConfig{
			SearchURL:      "https://news.google.com/rss/search",
			QuerySuffix:    "usa",
			Workers:        5,
			TimeoutSeconds: 20,
		},
		Browser: BrowserConfig{
			SearchInstance: "https://nitter.space",
			QuerySuffix:    "usa",
			TimelineURL:    "https://truthsocial.com/@realDonaldTrump",
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/60.0.3112.50 Safari/537.36",
			Headless:        true,
			MinItems:        10,
			MaxScrolls:      15,
			SettleSeconds:   2,
			PageWaitSeconds: 10,
		},
		Taxonomy: TaxonomyConfig{
			URL:            "https://docs.google.com/spreadsheets/d/e/2PACX-1vRQXdibXus54aUsemw6_jTqf_BgNXoEfDTNv-QCmyvYRUIGca_e_5M-McIr_45z9oey5pjRMvQUsoT3/pub?gid=1988978843&single=true&output=csv",
			TimeoutSeconds: 30,
		},
		OpenAI: OpenAIConfig{
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 120,
			MaxAttempts:    3,
		},
		Output: OutputConfig{
			Dir:           ".",
			AggregateFile: "data.json",
			ResponseFile:  "llm_response.json",
			ImpactCSV:     "scraped_data.csv",
			CorpusXLSX:    "scraped_data.xlsx",
		},
	}
}
