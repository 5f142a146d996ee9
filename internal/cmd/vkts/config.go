package vkts

import "github.com/smurphik/vkts/internal/platform/config"

// Config holds environment-derived settings.
type Config struct {
	// DataPath is the directory holding the three document files.
	DataPath string `env:"VKTS_DATA_PATH" envDefault:".vkts"`
}

// LoadConfig reads settings from the environment and applies flag
// overrides from args. The --data flag wins over $VKTS_DATA_PATH.
func LoadConfig(args Args) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if args.Data != "" {
		cfg.DataPath = args.Data
	}
	return cfg, nil
}
