package config

import "time"

// Config is the full runtime configuration for the service and the CLI.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Image    ImageConfig    `mapstructure:"image"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

type FetchConfig struct {
	Timeout            time.Duration `mapstructure:"timeout"`
	UserAgent          string        `mapstructure:"user_agent"`
	LenientContentType bool          `mapstructure:"lenient_content_type"`
	MinImageBytes      int64         `mapstructure:"min_image_bytes"`
	MaxImageBytes      int64         `mapstructure:"max_image_bytes"`
	MaxImagePixels     int64         `mapstructure:"max_image_pixels"`
}

type PipelineConfig struct {
	Workers int `mapstructure:"workers"`
}

type ImageConfig struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

type ReportConfig struct {
	Profile     string `mapstructure:"profile"`
	SheetName   string `mapstructure:"sheet_name"`
	TitlePrefix string `mapstructure:"title_prefix"`
	Author      string `mapstructure:"author"`
	Company     string `mapstructure:"company"`
	Footer      string `mapstructure:"footer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Worker and timeout bounds. Values outside are clamped by Validate.
const (
	MinWorkers      = 5
	MaxWorkers      = 10
	MinFetchTimeout = 10 * time.Second
	MaxFetchTimeout = 15 * time.Second
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
