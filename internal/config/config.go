package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/devlegal/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvProduction 生产环境标识
const EnvProduction = "production"

// ErrStoreNotConfigured 存储凭据缺失或无效
var ErrStoreNotConfigured = errors.New("store not configured")

// Config 应用配置结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Store     StoreConfig     `mapstructure:"store"`
	Session   SessionConfig   `mapstructure:"session"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Static    StaticConfig    `mapstructure:"static"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Captcha   CaptchaConfig   `mapstructure:"captcha"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"` // development / production
}

// IsProduction 是否生产环境
func (c ServerConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), EnvProduction)
}

// Addr 监听地址
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions(production bool) logger.Options {
	return logger.Options{
		Level:      c.Level,
		Production: production,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// StoreConfig 托管存储凭据（项目地址 + 访问密钥）
type StoreConfig struct {
	URL string `mapstructure:"url"`
	Key string `mapstructure:"key"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	Secret              string `mapstructure:"secret"`
	CookieName          string `mapstructure:"cookie_name"`
	TTLHours            int    `mapstructure:"ttl_hours"`
	RefreshAfterMinutes int    `mapstructure:"refresh_after_minutes"`
}

// DefaultSessionSecret 公开的占位密钥，启动时不会被用来签发会话
const DefaultSessionSecret = "dev-legal-secret-key-2025"

// ErrWeakSessionSecret 生产环境的会话密钥过弱或未配置
var ErrWeakSessionSecret = errors.New("session secret is weak or unset")

// WeakSecret 密钥过短、为内置值或仍是占位符
func (c SessionConfig) WeakSecret() bool {
	secret := strings.TrimSpace(c.Secret)
	if len(secret) < 32 || secret == DefaultSessionSecret {
		return true
	}
	lower := strings.ToLower(secret)
	for _, placeholder := range []string{"change-me", "changeme", "your-secret"} {
		if strings.Contains(lower, placeholder) {
			return true
		}
	}
	return false
}

// PrepareSessionSecret 生产环境拒绝弱密钥；开发环境未配置时换成进程级随机密钥
func (c *Config) PrepareSessionSecret() (ephemeral bool, err error) {
	if !c.Session.WeakSecret() {
		return false, nil
	}
	if c.Server.IsProduction() {
		return false, ErrWeakSessionSecret
	}
	secret := strings.TrimSpace(c.Session.Secret)
	if secret != "" && secret != DefaultSessionSecret {
		return false, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return false, fmt.Errorf("generate session secret: %w", err)
	}
	c.Session.Secret = hex.EncodeToString(buf)
	return true, nil
}

// DemoAdminPassword 演示库管理员的默认密码，只在演示模式下使用
const DemoAdminPassword = "devlegal2025"

// AdminConfig 演示模式/初始化管理员凭据
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// DemoCredentials 演示模式凭据：未配置的字段使用内置默认值
func (a AdminConfig) DemoCredentials() (username, password string) {
	username, password = strings.TrimSpace(a.Username), a.Password
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = DemoAdminPassword
	}
	return username, password
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// UploadConfig 文件上传配置
type UploadConfig struct {
	Dir       string `mapstructure:"dir"`
	MaxSizeMB int64  `mapstructure:"max_size_mb"`
}

// MaxBytes 上传大小上限（字节）
func (c UploadConfig) MaxBytes() int64 {
	if c.MaxSizeMB <= 0 {
		return 10 << 20
	}
	return c.MaxSizeMB << 20
}

// TemplatesConfig 模板配置
type TemplatesConfig struct {
	Dir string `mapstructure:"dir"`
}

// StaticConfig 静态资源配置
type StaticConfig struct {
	Dir string `mapstructure:"dir"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Login RateLimitRule `mapstructure:"login"`
}

// RateLimitRule 单条限流规则
type RateLimitRule struct {
	Enabled       bool `mapstructure:"enabled"`
	Limit         int  `mapstructure:"limit"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

// CaptchaConfig 图片验证码配置
type CaptchaConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Length        int  `mapstructure:"length"`
	Width         int  `mapstructure:"width"`
	Height        int  `mapstructure:"height"`
	ExpireSeconds int  `mapstructure:"expire_seconds"`
	MaxStore      int  `mapstructure:"max_store"`
}

// envAliases 兼容历史环境变量命名（按优先级排列）
var envAliases = map[string][]string{
	"server.port":       {"SERVER_PORT", "PORT"},
	"server.env":        {"SERVER_ENV", "APP_ENV", "NODE_ENV"},
	"database.dsn":      {"DATABASE_DSN", "DATABASE_URL"},
	"store.url":         {"STORE_URL", "SUPABASE_URL", "VITE_SUPABASE_URL"},
	"store.key":         {"STORE_KEY", "SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY"},
	"session.secret":    {"SESSION_SECRET", "SECRET_KEY"},
	"admin.username":    {"ADMIN_USERNAME"},
	"admin.password":    {"ADMIN_PASSWORD"},
	"upload.dir":        {"UPLOAD_DIR", "UPLOAD_FOLDER"},
	"templates.dir":     {"TEMPLATES_DIR"},
	"redis.enabled":     {"REDIS_ENABLED"},
	"captcha.enabled":   {"CAPTCHA_ENABLED"},
	"database.driver":   {"DATABASE_DRIVER"},
	"log.level":         {"LOG_LEVEL"},
	"server.host":       {"SERVER_HOST", "HOST"},
	"redis.host":        {"REDIS_HOST"},
	"redis.password":    {"REDIS_PASSWORD"},
	"static.dir":        {"STATIC_DIR"},
	"session.ttl_hours": {"SESSION_TTL_HOURS"},
}

// FileEnv 指定配置文件路径的环境变量
const FileEnv = "CONFIG_FILE"

// Load 从 .env / config.yml / 环境变量加载配置
func Load() *Config {
	return LoadFile("")
}

// LoadFile 加载配置；path 为空时依次使用 CONFIG_FILE 与默认目录下的 config.yml
func LoadFile(path string) *Config {
	if strings.TrimSpace(path) == "" {
		path = os.Getenv(FileEnv)
	}
	if err := godotenv.Load(); err == nil {
		logger.Infow("config_dotenv_loaded", "file", ".env")
	}

	v := viper.New()
	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")     // 从当前目录查找
		v.AddConfigPath("../")   // 如果从 cmd/server 运行
		v.AddConfigPath("./etc") // etc 文件夹
	}

	cfg, err := loadFrom(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "devlegal.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.pool.max_open_conns", 10)
	v.SetDefault("database.pool.max_idle_conns", 5)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 1800)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 300)
	v.SetDefault("store.url", "")
	v.SetDefault("store.key", "")
	v.SetDefault("session.secret", DefaultSessionSecret)
	v.SetDefault("session.cookie_name", "devlegal_session")
	v.SetDefault("session.ttl_hours", 24)
	v.SetDefault("session.refresh_after_minutes", 10)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "devlegal")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("templates.dir", "templates")
	v.SetDefault("static.dir", "static")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("rate_limit.login.enabled", true)
	v.SetDefault("rate_limit.login.limit", 10)
	v.SetDefault("rate_limit.login.window_seconds", 300)
	v.SetDefault("captcha.enabled", false)
	v.SetDefault("captcha.length", 5)
	v.SetDefault("captcha.width", 240)
	v.SetDefault("captcha.height", 80)
	v.SetDefault("captcha.expire_seconds", 300)
	v.SetDefault("captcha.max_store", 10240)
}

func loadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// 环境变量支持
	v.AutomaticEnv()                                   // 自动读取环境变量
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // 将 . 替换为 _ (例如 server.port -> SERVER_PORT)
	for key, names := range envAliases {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDatabase 根据显式 DSN 或托管存储凭据解析数据库驱动与连接串
// 返回 ErrStoreNotConfigured 时调用方应进入演示模式
func (c *Config) ResolveDatabase() (string, string, error) {
	driver := strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if dsn := strings.TrimSpace(c.Database.DSN); dsn != "" {
		if driver == "" {
			driver = "postgres"
		}
		return driver, dsn, nil
	}

	rawURL := strings.TrimSpace(c.Store.URL)
	key := strings.TrimSpace(c.Store.Key)
	if rawURL == "" {
		return "", "", ErrStoreNotConfigured
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", "", fmt.Errorf("%w: invalid store url", ErrStoreNotConfigured)
	}

	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		if _, hasPassword := u.User.Password(); !hasPassword && key != "" {
			username := "postgres"
			if u.User != nil && u.User.Username() != "" {
				username = u.User.Username()
			}
			u.User = url.UserPassword(username, key)
		}
		return "postgres", u.String(), nil
	case "http", "https":
		if key == "" {
			return "", "", fmt.Errorf("%w: store key missing", ErrStoreNotConfigured)
		}
		host := u.Hostname()
		ref, domain, found := strings.Cut(host, ".")
		if !found || ref == "" || !strings.HasPrefix(domain, "supabase.") {
			return "", "", fmt.Errorf("%w: unsupported store host %q", ErrStoreNotConfigured, host)
		}
		dsn := &url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword("postgres", key),
			Host:     "db." + ref + "." + domain + ":5432",
			Path:     "/postgres",
			RawQuery: "sslmode=require",
		}
		return "postgres", dsn.String(), nil
	default:
		return "", "", fmt.Errorf("%w: unsupported store scheme %q", ErrStoreNotConfigured, u.Scheme)
	}
}
