// Package config holds the settings of the Rhodium24 adapter and loads
// them from a file or the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. RHODIUM_CLIENTID.
const EnvPrefix = "RHODIUM"

// Config holds the adapter settings. It is read-only once handed to a client.
type Config struct {
	ApiUrl          string `mapstructure:"ApiUrl" json:"ApiUrl" validate:"required,url"`
	SubscriptionKey string `mapstructure:"SubscriptionKey" json:"SubscriptionKey" validate:"required"`
	TokenUrl        string `mapstructure:"TokenUrl" json:"TokenUrl" validate:"required,url"`
	ClientId        string `mapstructure:"ClientId" json:"ClientId" validate:"required"`
	ClientSecret    string `mapstructure:"ClientSecret" json:"ClientSecret" validate:"required"`
	Audience        string `mapstructure:"Audience" json:"Audience" validate:"required"`
}

// String masks the credentials so a Config can be logged safely.
func (c Config) String() string {
	return fmt.Sprintf("{ApiUrl:%s TokenUrl:%s ClientId:%s Audience:%s SubscriptionKey:%s ClientSecret:%s}",
		c.ApiUrl, c.TokenUrl, c.ClientId, c.Audience, mask(c.SubscriptionKey), mask(c.ClientSecret))
}

// Load reads the configuration from the file at path, if given, and from
// RHODIUM_ prefixed environment variables. Environment values win. A missing
// file is not an error; the result is validated before it is returned.
func Load(path string) (Config, error) {
	vip := viper.New()
	if path != "" {
		vip.SetConfigFile(path)
	} else {
		vip.SetConfigName("rhodium")
		vip.SetConfigType("yaml")
		vip.AddConfigPath("./configs")
		vip.AddConfigPath(".")
	}

	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{"ApiUrl", "SubscriptionKey", "TokenUrl", "ClientId", "ClientSecret", "Audience"} {
		if err := vip.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if err := vip.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}

	return "***"
}
