package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Vision   VisionConfig   `mapstructure:"vision"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Script   ScriptConfig   `mapstructure:"script"`
	VideoGen VideoGenConfig `mapstructure:"videogen"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
// URI 为空时项目数据保存在进程内存（开发模式，重启即丢失）
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
// Addr 为空时生成锁退化为进程内锁
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath      string `mapstructure:"base_path"`      // 基础路径
	BaseURL       string `mapstructure:"base_url"`       // 基础URL（用于生成访问URL）
	PresignExpiry int    `mapstructure:"presign_expiry"` // 预签名URL过期时间（秒）
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`          // OSS端点
	Bucket          string `mapstructure:"bucket"`            // Bucket名称
	AccessKeyID     string `mapstructure:"access_key_id"`     // AccessKey ID
	AccessKeySecret string `mapstructure:"access_key_secret"` // AccessKey Secret
	PresignExpiry   int    `mapstructure:"presign_expiry"`    // 预签名URL过期时间（秒）
}

// VisionConfig 图片分析能力配置 (Google Cloud Vision)
type VisionConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnalysisConfig 照片分析节奏配置
type AnalysisConfig struct {
	// MinInterval 相邻两次分析调用的最小间隔（上游限流保护）
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// ScriptConfig 脚本生成 LLM 配置
type ScriptConfig struct {
	Provider string              `mapstructure:"provider"` // openai, azure, ark
	APIKey   string              `mapstructure:"api_key"`
	Model    string              `mapstructure:"model"`
	BaseURL  string              `mapstructure:"base_url"`
	Options  ScriptOptionsConfig `mapstructure:"options"`
}

// ScriptOptionsConfig LLM 模型参数
type ScriptOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// VideoGenConfig 视频合成能力配置
type VideoGenConfig struct {
	Provider        string        `mapstructure:"provider"` // replicate, ark
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	Model           string        `mapstructure:"model"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`     // 轮询间隔
	MaxWait         time.Duration `mapstructure:"max_wait"`          // 单个场景最大等待时间
	MirrorToStorage bool          `mapstructure:"mirror_to_storage"` // 完成后把代表视频转存到自有存储
}

// PipelineConfig 生成流水线配置
type PipelineConfig struct {
	// Timeout 整条流水线（脚本+全部场景）的总超时，区别于单场景轮询超时
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxPhotos 单个项目允许上传的照片数量上限
	MaxPhotos int `mapstructure:"max_photos"`
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if c.Pipeline.MaxPhotos <= 0 {
		return errors.New("pipeline.max_photos must be positive")
	}

	if c.VideoGen.PollInterval <= 0 || c.VideoGen.MaxWait <= 0 {
		return errors.New("videogen poll_interval and max_wait must be positive")
	}

	return nil
}
