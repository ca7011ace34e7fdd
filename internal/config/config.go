package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const envPrefix = "JOBLY_"

type Config struct {
	Port             string        `koanf:"port" validate:"required"`
	Env              string        `koanf:"env" validate:"required"` // either prod or dev, dev switches to console logging
	DatabaseURL      string        `koanf:"database_url" validate:"required"`
	JwtSigningKey    string        `koanf:"jwt_signing_key" validate:"required"`
	BcryptWorkFactor int           `koanf:"bcrypt_work_factor" validate:"min=4,max=31"`
	SentryDSN        string        `koanf:"sentry_dsn"`
	CacheTTL         time.Duration `koanf:"cache_ttl" validate:"gt=0"`
	AuthRateLimit    float64       `koanf:"auth_rate_limit" validate:"gt=0"` // requests per second per client on /auth
	AuthRateBurst    int           `koanf:"auth_rate_burst" validate:"gt=0"`
	TrustProxy       bool          `koanf:"trust_proxy"` // rate limit on the last x-forwarded-for hop instead of the remote address
	AutoMigrate      bool          `koanf:"auto_migrate"`
}

var defaults = map[string]interface{}{
	"bcrypt_work_factor": 12,
	"cache_ttl":          "1m",
	"auth_rate_limit":    5,
	"auth_rate_burst":    10,
	"auto_migrate":       false,
	"trust_proxy":        false,
}

// LoadConfig reads JOBLY_* environment variables, a .env file included.
func LoadConfig() (Config, error) {
	k := koanf.New(".")
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return Config{}, errors.Wrapf(err, "unable to set default %s", key)
		}
	}
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to load env")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "unable to decode config")
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return envPrefix + strings.ToUpper(f.Tag.Get("koanf"))
	})
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "invalid config")
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return errors.Errorf("%s cannot be empty", fe.Field())
	}
	return errors.Errorf("%s is invalid: %v", fe.Field(), fe.Value())
}

func (c Config) IsDev() bool {
	return c.Env == "dev"
}
