package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"keepsake/internal/config"
	"keepsake/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "keepsake",
	Short: "Keepsake - photo-to-short-film generation service",
	Long: `Keepsake turns a handful of personal photos and a short narrative
into a generated short-form video by chaining image analysis, script
generation and scene-by-scene video synthesis.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.keepsake")
	}

	// 环境变量设置
	viper.SetEnvPrefix("KEEPSAKE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// MongoDB
	viper.SetDefault("mongo.uri", "")
	viper.SetDefault("mongo.database", "keepsake")
	viper.SetDefault("mongo.max_pool_size", 100)
	viper.SetDefault("mongo.min_pool_size", 10)

	// Redis
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)

	// Storage
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local.base_path", "./storage")
	viper.SetDefault("storage.local.base_url", "http://localhost:8080/storage")
	viper.SetDefault("storage.local.presign_expiry", 3600)

	// Vision (图片分析)
	viper.SetDefault("vision.base_url", "https://vision.googleapis.com/v1")
	viper.SetDefault("vision.timeout", "60s")

	// Analysis pacing (上游限流保护)
	viper.SetDefault("analysis.min_interval", "1s")

	// Script LLM
	viper.SetDefault("script.provider", "openai")
	viper.SetDefault("script.model", "llama-3.3-70b-versatile")
	viper.SetDefault("script.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("script.options.temperature", 0.7)
	viper.SetDefault("script.options.max_tokens", 2048)
	viper.SetDefault("script.options.top_p", 1.0)

	// Video generation
	viper.SetDefault("videogen.provider", "replicate")
	viper.SetDefault("videogen.base_url", "https://api.replicate.com/v1")
	viper.SetDefault("videogen.model", "minimax/video-01")
	viper.SetDefault("videogen.poll_interval", "10s")
	viper.SetDefault("videogen.max_wait", "10m")
	viper.SetDefault("videogen.mirror_to_storage", false)

	// Pipeline
	viper.SetDefault("pipeline.timeout", "30m")
	viper.SetDefault("pipeline.max_photos", 10)
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
