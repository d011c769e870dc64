package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/AnyUserName/swatchcard/internal/profile"
)

// EnvPrefix namespaces environment overrides, e.g. SWATCHCARD_FETCH_TIMEOUT.
const EnvPrefix = "SWATCHCARD"

// Load resolves configuration from defaults, an optional YAML file and the
// environment, in that order of increasing precedence. An empty path looks
// for swatchcard.yaml in ./ and ./configs; a missing file is not an error.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("swatchcard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Hosting platforms hand out the listen port as PORT.
	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"_SERVER_ADDR") == "" {
		cfg.Server.Addr = "0.0.0.0:" + strings.TrimPrefix(port, ":")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.max_body_bytes", 8<<20)

	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.lenient_content_type", false)
	v.SetDefault("fetch.min_image_bytes", 1024)
	v.SetDefault("fetch.max_image_bytes", 20<<20)
	v.SetDefault("fetch.max_image_pixels", 50_000_000)

	v.SetDefault("pipeline.workers", MaxWorkers)

	v.SetDefault("image.jpeg_quality", 85)

	v.SetDefault("report.profile", profile.DefaultName)
	v.SetDefault("report.sheet_name", "Swatch Card")
	v.SetDefault("report.title_prefix", "Swatch Card")
	v.SetDefault("report.author", "Swatch Card Builder")
	v.SetDefault("report.company", "HalfPrice")
	v.SetDefault("report.footer", "320 West 37th Street, 3rd floor, New York, NY 10018 | Tel 212-697-1660")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate clamps bounded values and rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Pipeline.Workers < MinWorkers {
		c.Pipeline.Workers = MinWorkers
	}
	if c.Pipeline.Workers > MaxWorkers {
		c.Pipeline.Workers = MaxWorkers
	}
	if c.Fetch.Timeout < MinFetchTimeout {
		c.Fetch.Timeout = MinFetchTimeout
	}
	if c.Fetch.Timeout > MaxFetchTimeout {
		c.Fetch.Timeout = MaxFetchTimeout
	}
	if c.Image.JPEGQuality < 1 || c.Image.JPEGQuality > 100 {
		return fmt.Errorf("image.jpeg_quality must be in 1-100, got %d", c.Image.JPEGQuality)
	}
	if c.Fetch.MaxImageBytes <= 0 {
		return fmt.Errorf("fetch.max_image_bytes must be positive")
	}
	if c.Fetch.MaxImagePixels <= 0 {
		return fmt.Errorf("fetch.max_image_pixels must be positive")
	}
	if c.Report.SheetName == "" {
		return fmt.Errorf("report.sheet_name is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// loadEnvFile loads .env from the working directory when present.
// Already-set variables win.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	_ = godotenv.Load(".env")
}
