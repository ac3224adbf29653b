package config

import (
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, parsed once at startup and injected
// into every component that needs it. Nothing reads the environment after
// Load returns.
type Config struct {
	Addr        string `env:"ADDR" envDefault:":8080"`
	Maintenance bool   `env:"MAINTENANCE_MODE" envDefault:"false"`

	DataDir string `env:"DATA_DIR" envDefault:"data"`

	SearchURL   string `env:"SEARCH_URL" envDefault:"https://api.allcamps.example/v2/search"`
	SupplierURL string `env:"SUPPLIER_URL" envDefault:"https://api.allcamps.example/v2/accommodations"`

	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"48h"`

	// Advisory throttling of the upstream API. Tests override these to zero.
	SupplierAttempts  int           `env:"SUPPLIER_ATTEMPTS" envDefault:"3"`
	SupplierJitterMax time.Duration `env:"SUPPLIER_JITTER_MAX" envDefault:"200ms"`
	SupplierRetryWait time.Duration `env:"SUPPLIER_RETRY_WAIT" envDefault:"1s"`
	DateDelayMin      time.Duration `env:"DATE_DELAY_MIN" envDefault:"1s"`
	DateDelayMax      time.Duration `env:"DATE_DELAY_MAX" envDefault:"2s"`

	JobQueueSize int `env:"JOB_QUEUE_SIZE" envDefault:"32"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) CampsiteFile() string { return filepath.Join(c.DataDir, "campsites.json") }
func (c Config) DateFile() string     { return filepath.Join(c.DataDir, "dates.json") }
func (c Config) ResultFile() string   { return filepath.Join(c.DataDir, "results.json") }
func (c Config) SupplierFile() string { return filepath.Join(c.DataDir, "suppliers.json") }
