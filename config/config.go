package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Loader     LoaderConfig     `mapstructure:"loader"`
	Preprocess PreprocessConfig `mapstructure:"preprocess"`
}

type ServerConfig struct {
	Port          string        `mapstructure:"port"`
	Mode          string        `mapstructure:"mode"`
	LogLevel      string        `mapstructure:"log_level"` // 为空时按 mode 决定
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	MaxConcurrent int           `mapstructure:"max_concurrent"` // 0 表示不限制
	QueueTimeout  time.Duration `mapstructure:"queue_timeout"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LoaderConfig 图像获取相关配置
type LoaderConfig struct {
	PlaceholderWidth  int    `mapstructure:"placeholder_width"`
	PlaceholderHeight int    `mapstructure:"placeholder_height"`
	UserAgent         string `mapstructure:"user_agent"`
}

// PreprocessConfig 预处理与编码配置
type PreprocessConfig struct {
	Backend     string `mapstructure:"backend"` // imaging | gocv
	JPEGQuality int    `mapstructure:"jpeg_quality"`
}

// Load 从 YAML 文件加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("XDESIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 设置默认值
	setDefaults(v)

	// 读取配置文件，文件不存在时只使用默认值和环境变量
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// New 使用默认配置路径加载配置
func New() *Config {
	return NewFromPath("config.yaml")
}

// NewFromPath 加载指定路径的配置，配置文件无法解析时返回默认配置
func NewFromPath(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8188")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.log_level", "")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.max_concurrent", 4)
	v.SetDefault("server.queue_timeout", 30*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Hour)

	v.SetDefault("loader.placeholder_width", 512)
	v.SetDefault("loader.placeholder_height", 512)
	v.SetDefault("loader.user_agent", "comfyui-xdesign-nodes")

	v.SetDefault("preprocess.backend", "imaging")
	v.SetDefault("preprocess.jpeg_quality", 75)
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          ":8188",
			Mode:          "debug",
			ReadTimeout:   30 * time.Second,
			WriteTimeout:  90 * time.Second,
			MaxConcurrent: 4,
			QueueTimeout:  30 * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  false,
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
			TTL:      time.Hour,
		},
		Loader: LoaderConfig{
			PlaceholderWidth:  512,
			PlaceholderHeight: 512,
			UserAgent:         "comfyui-xdesign-nodes",
		},
		Preprocess: PreprocessConfig{
			Backend:     "imaging",
			JPEGQuality: 75,
		},
	}
}
