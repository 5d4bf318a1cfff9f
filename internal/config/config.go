package config

import (
	"errors"
	"fmt"
	"strings"

	"hcran-charts/internal/chart"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is everything the chart commands read at startup
type Config struct {
	Output   OutputConfig   `mapstructure:"output"`
	Render   RenderConfig   `mapstructure:"render"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type OutputConfig struct {
	ImagesDir string `mapstructure:"images_dir"`
}

type RenderConfig struct {
	Backend  string `mapstructure:"backend"`   // plot or canvas
	FontPath string `mapstructure:"font_path"` // canvas only
}

type SweepConfig struct {
	SummaryFile string `mapstructure:"summary_file"`
	Column      string `mapstructure:"column"`
	Report      string `mapstructure:"report"` // JSON report path, empty disables
}

type LogConfig struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}

// TelegramConfig enables sending the rendered charts to a chat
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// RegisterFlags adds the config flags to fs. Flag names are the config keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("output.images_dir", "images", "Directory the PNG charts are written to (env: HCRAN_IMAGES_DIR)")
	fs.String("render.backend", chart.BackendPlot, "Chart backend: plot or canvas (env: HCRAN_RENDER_BACKEND)")
	fs.String("render.font_path", "", "TrueType font for the canvas backend (env: HCRAN_FONT_PATH)")
	fs.String("sweep.summary_file", "delay_summary.csv", "Summary file name inside each result directory")
	fs.String("sweep.column", "delay_ms", "Delay column inside the summary file")
	fs.String("sweep.report", "", "Also write the sweep points as JSON to this path")
	fs.String("log.dir", "logs", "Directory for app.log (env: HCRAN_LOG_DIR)")
	fs.String("log.level", "info", "File log level: debug, info, warn, error (env: HCRAN_LOG_LEVEL)")
	fs.Bool("telegram.enabled", false, "Send the charts to Telegram after rendering (env: HCRAN_TELEGRAM_ENABLED)")
	fs.String("telegram.bot_token", "", "Telegram bot token (env: TELEGRAM_BOT_TOKEN)")
	fs.String("telegram.chat_id", "", "Telegram chat id (env: TELEGRAM_CHAT_ID)")
}

// Load resolves the config with precedence flags > env > .env > config.yaml
// > defaults. config.yaml is searched in searchPaths (default ".").
func Load(fs *pflag.FlagSet, searchPaths ...string) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	setupEnvAliases(v)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("output.images_dir", "HCRAN_IMAGES_DIR")
	v.BindEnv("render.backend", "HCRAN_RENDER_BACKEND")
	v.BindEnv("render.font_path", "HCRAN_FONT_PATH")
	v.BindEnv("log.dir", "HCRAN_LOG_DIR")
	v.BindEnv("log.level", "HCRAN_LOG_LEVEL")
	v.BindEnv("telegram.enabled", "HCRAN_TELEGRAM_ENABLED")
	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.images_dir", "images")

	v.SetDefault("render.backend", chart.BackendPlot)
	v.SetDefault("render.font_path", "")

	v.SetDefault("sweep.summary_file", "delay_summary.csv")
	v.SetDefault("sweep.column", "delay_ms")
	v.SetDefault("sweep.report", "")

	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.level", "info")

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Output.ImagesDir) == "" {
		return fmt.Errorf("output.images_dir must not be empty")
	}

	switch strings.ToLower(cfg.Render.Backend) {
	case chart.BackendPlot, chart.BackendCanvas:
	default:
		return fmt.Errorf("render.backend must be %q or %q, got %q", chart.BackendPlot, chart.BackendCanvas, cfg.Render.Backend)
	}

	if cfg.Telegram.Enabled {
		if cfg.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram.enabled is set")
		}
		if cfg.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram.enabled is set")
		}
	}

	return nil
}
