package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Planner  PlannerConfig  `mapstructure:"planner"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// PlannerConfig carries the tunables of the plan generator and the
// double-progression engine. assume_effort_ok decides how progression
// evaluation treats a log entry with neither RIR nor RPE: false keeps the
// conservative default and suppresses weight increases.
type PlannerConfig struct {
	SmallIncrement      float64 `mapstructure:"small_increment"`
	LargeIncrement      float64 `mapstructure:"large_increment"`
	SmallIncrementBelow float64 `mapstructure:"small_increment_below"`
	DeloadPercent       float64 `mapstructure:"deload_percent"`
	AssumeEffortOK      bool    `mapstructure:"assume_effort_ok"`
	RoutineSetBudget    int     `mapstructure:"routine_set_budget"`
	RoutineSetFloor     int     `mapstructure:"routine_set_floor"`
	ProgressionHistory  int     `mapstructure:"progression_history"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variables override the file, e.g. server.address becomes
	// SERVER_ADDRESS and planner.assume_effort_ok becomes
	// PLANNER_ASSUME_EFFORT_OK.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "hypertrophy_toolbox")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "1h")

	viper.SetDefault("planner.small_increment", 2.5)
	viper.SetDefault("planner.large_increment", 5.0)
	viper.SetDefault("planner.small_increment_below", 20.0)
	viper.SetDefault("planner.deload_percent", 10.0)
	viper.SetDefault("planner.assume_effort_ok", false)
	viper.SetDefault("planner.routine_set_budget", 24)
	viper.SetDefault("planner.routine_set_floor", 15)
	viper.SetDefault("planner.progression_history", 6)

	err = viper.ReadInConfig()
	// Missing config file is fine; defaults plus env vars carry the setup.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
