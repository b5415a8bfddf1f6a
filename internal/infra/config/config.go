package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config -
type Config struct {
	Chart    ChartConfig    `mapstructure:"chart"`
	Data     DataConfig     `mapstructure:"data"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	App      AppConfig      `mapstructure:"app"`
}

type ChartConfig struct {
	TemplatePath string `mapstructure:"template_path"` // pre-drawn empty grid
	OutputDir    string `mapstructure:"output_dir"`    // <name>.png lands here
	FontPath     string `mapstructure:"font_path"`     // title and legend font
}

type DataConfig struct {
	ExpectancyCSV string `mapstructure:"expectancy_csv"`
}

// TelegramConfig - optional delivery of the rendered chart
type TelegramConfig struct {
	BotToken   string `mapstructure:"bot_token"`
	ChatID     string `mapstructure:"chat_id"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type AppConfig struct {
	LogsDir string `mapstructure:"logs_dir"`
}

// DeliveryEnabled reports whether both bot token and chat id are set.
func (c *Config) DeliveryEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Options controls where LoadConfig looks. Zero value uses the working directory.
type Options struct {
	ConfigFile string         // explicit config.yaml path, optional
	EnvFile    string         // .env path, defaults to ".env"
	Flags      *pflag.FlagSet // command flags, bound last so they win
}

// LoadConfig layers
// 1. defaults
// 2. config.yaml
// 3. .env file
// 4. environment
// 5. flags
func LoadConfig(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Missing .env is fine
	_ = godotenv.Load(envFile)

	v := viper.New()

	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config.yaml: %w", err)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("LIFEWEEKS")
	v.AutomaticEnv()

	setupEnvAliases(v)

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Telegram.BotToken = strings.TrimSpace(config.Telegram.BotToken)
	config.Telegram.ChatID = strings.TrimSpace(config.Telegram.ChatID)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	// Short names kept for compatibility with existing shells
	v.BindEnv("chart.template_path", "LIFEWEEKS_TEMPLATE")
	v.BindEnv("chart.output_dir", "LIFEWEEKS_OUTPUT_DIR")
	v.BindEnv("chart.font_path", "LIFEWEEKS_FONT")
	v.BindEnv("data.expectancy_csv", "LIFEWEEKS_EXPECTANCY_CSV")
	v.BindEnv("app.logs_dir", "LIFEWEEKS_LOGS_DIR")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("telegram.max_retries", "TELEGRAM_MAX_RETRIES")
}

// setDefaults by default
func setDefaults(v *viper.Viper) {
	v.SetDefault("chart.template_path", "images/weeks.png")
	v.SetDefault("chart.output_dir", "images")
	v.SetDefault("chart.font_path", "DejaVuSans.ttf")

	v.SetDefault("data.expectancy_csv", "data/life-expectancy.csv")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.max_retries", 3)

	v.SetDefault("app.logs_dir", "logs")
}

// flagKeys maps command flag names to config keys.
var flagKeys = map[string]string{
	"template":       "chart.template_path",
	"output-dir":     "chart.output_dir",
	"font":           "chart.font_path",
	"expectancy-csv": "data.expectancy_csv",
	"logs-dir":       "app.logs_dir",
	"telegram-token": "telegram.bot_token",
	"telegram-chat":  "telegram.chat_id",
}

// RegisterFlags adds the shared config flags to a command's flag set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("template", "", "Template image path (env: LIFEWEEKS_TEMPLATE)")
	fs.String("output-dir", "", "Directory for rendered charts (env: LIFEWEEKS_OUTPUT_DIR)")
	fs.String("font", "", "TrueType font for title and legend (env: LIFEWEEKS_FONT)")
	fs.String("expectancy-csv", "", "Life expectancy dataset (env: LIFEWEEKS_EXPECTANCY_CSV)")
	fs.String("logs-dir", "", "Directory for app.log (env: LIFEWEEKS_LOGS_DIR)")
	fs.String("telegram-token", "", "Telegram bot token for chart delivery (env: TELEGRAM_BOT_TOKEN)")
	fs.String("telegram-chat", "", "Telegram chat id for chart delivery (env: TELEGRAM_CHAT_ID)")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Chart.TemplatePath == "" {
		return fmt.Errorf("chart.template_path is required")
	}
	if cfg.Chart.OutputDir == "" {
		return fmt.Errorf("chart.output_dir is required")
	}
	if cfg.Chart.FontPath == "" {
		return fmt.Errorf("chart.font_path is required")
	}
	if cfg.Data.ExpectancyCSV == "" {
		return fmt.Errorf("data.expectancy_csv is required")
	}

	if (cfg.Telegram.BotToken == "") != (cfg.Telegram.ChatID == "") {
		return fmt.Errorf("telegram delivery needs both telegram.bot_token and telegram.chat_id")
	}
	if cfg.Telegram.MaxRetries < 0 {
		return fmt.Errorf("telegram.max_retries must be >= 0, got %d", cfg.Telegram.MaxRetries)
	}

	return nil
}
