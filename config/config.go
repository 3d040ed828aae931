package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	App struct {
		Name string `mapstructure:"NAME"`
		Port string `mapstructure:"PORT"`
	}

	Room struct {
		// Rooms older than this are deleted by the sweep, regardless of
		// activity.
		ExpireAfter   time.Duration `mapstructure:"EXPIRE_AFTER"`
		SweepInterval time.Duration `mapstructure:"SWEEP_INTERVAL"`
	}
}

var Conf *AppConfig

func LoadConfig() error {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SHOWDOWN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("APP.NAME", "showdown")
	viper.SetDefault("APP.PORT", ":8080")
	viper.SetDefault("ROOM.EXPIRE_AFTER", 12*time.Hour)
	viper.SetDefault("ROOM.SWEEP_INTERVAL", 10*time.Minute)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	Conf = &config
	log.Info().Msg("configuration loaded...")
	return nil
}
