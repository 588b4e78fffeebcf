package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StoreConfig struct {
	Path string `yaml:"path" validate:"required|unixPath"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type ImporterConfig struct {
	// Interval between scheduled import runs in serve mode. Zero disables
	// the scheduler.
	Interval     time.Duration `yaml:"interval"`
	FetchTimeout time.Duration `yaml:"fetchTimeout"`
	// ArchiveDir holds compressed raw page payloads. Empty disables archiving.
	ArchiveDir string `yaml:"archiveDir"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Store     StoreConfig    `yaml:"store"`
	Importer  ImporterConfig `yaml:"importer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
