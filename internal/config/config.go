package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	Session     SessionConfig     `yaml:"session"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	S3          S3Config          `yaml:"s3"`
	Redis       RedisConf         `yaml:"redis"`
	LoginLimit  LoginLimitConfig  `yaml:"login_limit"`
	Admin       AdminConfig       `yaml:"admin"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host" env:"HTTP_HOST"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"30s"`
}

type SessionConfig struct {
	Secret       string `yaml:"secret" env:"SESSION_SECRET" env-required:"true"`
	CookieSecure bool   `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE"`
	MaxAge       int    `yaml:"max_age" env-default:"604800"`
}

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

type FileStorageConfig struct {
	Driver  string `yaml:"driver" env:"FILE_STORAGE_DRIVER" env-default:"local"`
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"/uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"10485760"`
	Bucket  string `yaml:"bucket" env:"FILE_STORAGE_BUCKET" env-default:"artworks"`
}

type S3Config struct {
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
	UseSSL          bool   `yaml:"use_ssl" env:"S3_USE_SSL"`
	PublicBaseURL   string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

type LoginLimitConfig struct {
	Attempts int           `yaml:"attempts" env-default:"5"`
	Window   time.Duration `yaml:"window" env-default:"1m"`
}

// AdminConfig стартовый администратор. Пустой email ничего не создает.
type AdminConfig struct {
	Email    string `yaml:"email" env:"ADMIN_EMAIL"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
}

func MustLoad() *Config {
	// .env необязателен, переменные окружения важнее файла
	_ = godotenv.Load()

	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	if cfg.FileStorage.Driver != DriverLocal && cfg.FileStorage.Driver != DriverS3 {
		panic("unknown file_storage.driver: " + cfg.FileStorage.Driver)
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
