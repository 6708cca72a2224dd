package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/boxdancer/go-price-oracle/internal/price"
)

// Config holds all configuration for the oracle.
type Config struct {
	Price PriceConfig `mapstructure:"price"`
	Log   LogConfig   `mapstructure:"log"`
}

type PriceConfig struct {
	Value int64 `mapstructure:"value"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // "json" or "console"
}

// Load собирает конфигурацию только из значений по умолчанию.
// Окружение и файлы не читаются: CLI не принимает настроек снаружи.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("price.value", price.StubPrice)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.encoding", "json")
}

func (c *Config) Validate() error {
	if c.Price.Value < 0 {
		return fmt.Errorf("price value must be non-negative, got %d", c.Price.Value)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log encoding %q", c.Log.Encoding)
	}
	return nil
}
