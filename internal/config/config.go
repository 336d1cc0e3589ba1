package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig
	DB       DBConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Session  SessionConfig
}

type TelegramConfig struct {
	Token       string `yaml:"token"`
	OwnerID     int64  `yaml:"owner_id"`
	BotUsername string `yaml:"bot_username"`
	// Mode selects how updates arrive: "poll" (default) or "webhook".
	Mode          string `yaml:"mode"`
	WebhookListen string `yaml:"webhook_listen"`
	WebhookPath   string `yaml:"webhook_path"`
}

type DBConfig struct {
	// Path is the sqlite database file.
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggerConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

type SessionConfig struct {
	// IdleTTL bounds how long an untouched conversation or play session is
	// kept before the registry janitor drops it.
	IdleTTL time.Duration `yaml:"idle_ttl"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetDefault("telegram.mode", "poll")
	viper.SetDefault("telegram.webhook_listen", ":8090")
	viper.SetDefault("telegram.webhook_path", "/telegram/webhook")
	viper.SetDefault("db.path", "quizbot.db")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("session.idle_ttl", 30*time.Minute)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Telegram: TelegramConfig{
			Token:         viper.GetString("telegram.token"),
			OwnerID:       viper.GetInt64("telegram.owner_id"),
			BotUsername:   viper.GetString("telegram.bot_username"),
			Mode:          viper.GetString("telegram.mode"),
			WebhookListen: viper.GetString("telegram.webhook_listen"),
			WebhookPath:   viper.GetString("telegram.webhook_path"),
		},
		DB: DBConfig{
			Path: viper.GetString("db.path"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		Session: SessionConfig{
			IdleTTL: viper.GetDuration("session.idle_ttl"),
		},
	}

	// Override with environment variables if set
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		config.Telegram.Token = token
	}
	if owner := os.Getenv("OWNER_USER_ID"); owner != "" {
		id, err := strconv.ParseInt(owner, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OWNER_USER_ID: %w", err)
		}
		config.Telegram.OwnerID = id
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DB.Path = dbPath
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}

	if config.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram token is missing (telegram.token or BOT_TOKEN)")
	}
	if config.Telegram.OwnerID == 0 {
		return nil, fmt.Errorf("owner id is missing (telegram.owner_id or OWNER_USER_ID)")
	}

	return config, nil
}
