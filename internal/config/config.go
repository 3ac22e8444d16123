package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zkadhem/Quiz-App/internal/opentdb"
	"github.com/zkadhem/Quiz-App/internal/quiz"
)

const (
	envPrefix  = "TRIVIA"
	configName = "trivia-quiz"

	DefaultAmount    = 10
	DefaultTimeLimit = 30
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds settings shared by every trivia-quiz command. Keys match the
// command-line flag names so flags, TRIVIA_* variables and the config file
// all address the same value.
type Config struct {
	Env         string        `mapstructure:"env"`          // local or production; selects the logger preset
	LogLevel    string        `mapstructure:"log-level"`    // overrides the preset level when set
	Lang        string        `mapstructure:"lang"`         // terminal language
	APIURL      string        `mapstructure:"api-url"`      // OpenTriviaDB base URL
	HTTPTimeout time.Duration `mapstructure:"http-timeout"` // timeout for outbound HTTP calls
	HistoryDB   string        `mapstructure:"history-db"`   // sqlite path; empty disables history

	Amount     int    `mapstructure:"amount"`
	Category   int    `mapstructure:"category"`
	Difficulty string `mapstructure:"difficulty"`
	TimeLimit  int    `mapstructure:"time-limit"`
	Player     string `mapstructure:"player"`
	Server     string `mapstructure:"server"` // quiz server URL; empty plays locally

	Addr string `mapstructure:"addr"`
}

// Load merges defaults, the optional config file, TRIVIA_* environment
// variables (a .env file is loaded first when present) and the given flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("error binding flags: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/" + configName)
	}
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log-level", "")
	v.SetDefault("lang", "en")
	v.SetDefault("api-url", opentdb.DefaultBaseURL)
	v.SetDefault("http-timeout", "10s")
	v.SetDefault("history-db", "")
	v.SetDefault("amount", DefaultAmount)
	v.SetDefault("category", opentdb.AnyCategory)
	v.SetDefault("difficulty", "any")
	v.SetDefault("time-limit", DefaultTimeLimit)
	v.SetDefault("player", "")
	v.SetDefault("server", "")
	v.SetDefault("addr", ":8080")
}

func (c *Config) Validate() error {
	if c.Amount < opentdb.MinAmount || c.Amount > opentdb.MaxAmount {
		return fmt.Errorf("%w: amount must be between %d and %d, got %d", ErrInvalidConfig, opentdb.MinAmount, opentdb.MaxAmount, c.Amount)
	}
	if c.Category != opentdb.AnyCategory {
		if _, ok := opentdb.LookupCategory(c.Category); !ok {
			return fmt.Errorf("%w: %v %d", ErrInvalidConfig, opentdb.ErrUnknownCategory, c.Category)
		}
	}
	if _, err := opentdb.ParseDifficulty(c.Difficulty); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("%w: time-limit must not be negative, got %d", ErrInvalidConfig, c.TimeLimit)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http-timeout must be positive, got %s", ErrInvalidConfig, c.HTTPTimeout)
	}
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("%w: api-url is required", ErrInvalidConfig)
	}
	return nil
}

// FetchRequest returns the question filters. Load has already validated the
// difficulty, so the parse error is ignored here.
func (c *Config) FetchRequest() quiz.FetchRequest {
	difficulty, _ := opentdb.ParseDifficulty(c.Difficulty)
	return quiz.FetchRequest{
		Amount:     c.Amount,
		Category:   c.Category,
		Difficulty: difficulty,
	}
}

func (c *Config) SessionConfig() quiz.Config {
	return quiz.Config{TimeLimit: c.TimeLimit}
}
