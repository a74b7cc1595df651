package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the complete application configuration, loadable from
// environment variables (CORONA_ prefix), flags, or a YAML config file.
type Config struct {
	StatePath  string `default:"corona.json.gz" usage:"Path of the persisted application state" flag:"state-path"`
	Currency   string `default:"EGP" usage:"Currency label used for rendered prices"`
	BcryptCost int    `default:"10" usage:"bcrypt work factor for password hashing" flag:"bcrypt-cost"`
	Admin      AdminConfig
}

// AdminConfig describes the admin account seeded at startup when absent.
type AdminConfig struct {
	Username string `default:"admin" usage:"Admin account username"`
	Password string `default:"admin" usage:"Admin account bootstrap password" flag:"admin-password"`
	Email    string `default:"admin@localhost" usage:"Admin account email"`
}

// LoadConfig loads configuration from environment variables, flags, and the
// optional YAML config file.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "CORONA",
		Files:     []string{"config.yaml", "/etc/corona/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, errors.Errorf("bcrypt cost %d out of range [%d, %d]",
			cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &cfg, nil
}
